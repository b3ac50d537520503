package summarizer

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestService(maxWords int) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(Config{MaxWords: maxWords}, logger)
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	svc := newTestService(120)

	cases := []string{
		"",
		"One sentence only.",
		"First sentence. Second sentence!",
		"No terminal punctuation at all",
	}
	for _, text := range cases {
		require.Equal(t, text, svc.Summarize(text), "text %q", text)
	}
}

func TestSummarizeKeepsOriginalSentenceOrder(t *testing.T) {
	svc := newTestService(120)

	text := "Malaria spreads through mosquito bites in tropical regions. " +
		"Yes indeed. " +
		"Symptoms include fever chills and severe headache episodes. " +
		"Quite so. " +
		"Treatment requires prompt antimalarial medication and rest. " +
		"Prevention involves bed nets and insect repellent usage. " +
		"Diagnosis relies on blood smear microscopy examination. " +
		"Patients recover fully with early intervention typically. " +
		"Right."

	summary := svc.Summarize(text)
	got := splitSentences(summary)
	require.Len(t, got, 3)

	// selected sentences must appear in their original relative order
	last := -1
	for _, sentence := range got {
		pos := strings.Index(text, sentence)
		require.Greater(t, pos, last, "sentence out of order: %q", sentence)
		last = pos
	}
}

func TestSummarizeTruncatesToMaxWords(t *testing.T) {
	svc := newTestService(10)

	var parts []string
	for i := 0; i < 9; i++ {
		parts = append(parts, "malaria fever treatment prevention diagnosis symptoms mosquito tropical infection recovery.")
	}
	summary := svc.Summarize(strings.Join(parts, " "))

	require.True(t, strings.HasSuffix(summary, "..."))
	require.LessOrEqual(t, WordCount(summary), 10)
}

func TestSummarizeSelectionFloorIsThree(t *testing.T) {
	svc := newTestService(120)

	text := "Alpha beta gamma delta. Epsilon zeta eta theta. Iota kappa lambda mu. Nu xi omicron pi."
	summary := svc.Summarize(text)
	require.Len(t, splitSentences(summary), 3)
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second one! Third? Last")
	require.Equal(t, []string{"First one.", "Second one!", "Third?", "Last"}, got)

	// punctuation without trailing whitespace is not a boundary
	got = splitSentences("Version 2.5 is out. Done")
	require.Equal(t, []string{"Version 2.5 is out.", "Done"}, got)
}

func TestWordCount(t *testing.T) {
	require.Zero(t, WordCount(""))
	require.Equal(t, 3, WordCount("  one  two three "))
}
