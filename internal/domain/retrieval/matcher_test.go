package retrieval

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMatcher(t *testing.T, cfg Config, entries []Entry) *Matcher {
	t.Helper()
	return NewMatcher(cfg, NewIndex(entries), newTestLogger())
}

func TestMatchEmptyQuery(t *testing.T) {
	m := newTestMatcher(t, Config{}, testCorpus())

	for _, query := range []string{"", "   ", "?!.", "the and of"} {
		res := m.Match(query)
		require.Equal(t, OutcomeNoInput, res.Outcome, "query %q", query)
		require.Empty(t, res.MatchedQuestion)
		require.Zero(t, res.SimilarityScore)
		require.Empty(t, res.TopMatches)
		require.NotEmpty(t, res.Answer)
		require.Equal(t, "Dataset", res.Source)
	}
}

func TestMatchConfident(t *testing.T) {
	corpus := []Entry{{Question: "what is fever", Answer: "A fever is...", Source: "Dataset", Disease: "general"}}
	m := newTestMatcher(t, Config{}, corpus)

	res := m.Match("what is a fever")
	require.Equal(t, OutcomeMatch, res.Outcome)
	require.Equal(t, "A fever is...", res.Answer)
	require.Equal(t, "what is fever", res.MatchedQuestion)
	require.Equal(t, "general", res.Disease)
	require.GreaterOrEqual(t, res.SimilarityScore, 0.15)
	require.Len(t, res.TopMatches, 1)
}

func TestMatchNoCandidateForGibberish(t *testing.T) {
	corpus := []Entry{{Question: "what is fever", Answer: "A fever is...", Source: "Dataset", Disease: "general"}}
	m := newTestMatcher(t, Config{}, corpus)

	res := m.Match("xyz unrelated gibberish")
	require.Equal(t, OutcomeNoCandidate, res.Outcome)
	require.Empty(t, res.MatchedQuestion)
	require.Empty(t, res.TopMatches)
	require.Zero(t, res.SimilarityScore)
}

func TestMatchLowConfidenceExposesTopMatches(t *testing.T) {
	// Raising the threshold forces the decline branch without depending on
	// exact cosine values.
	m := newTestMatcher(t, Config{ConfidenceThreshold: 0.99}, testCorpus())

	res := m.Match("causes fever diabetes")
	require.Equal(t, OutcomeLowConfidence, res.Outcome)
	require.Empty(t, res.MatchedQuestion)
	require.Greater(t, res.SimilarityScore, 0.0)
	require.Less(t, res.SimilarityScore, 0.99)
	// the diagnostic top matches come from the original top-5, not the
	// gate survivors
	require.Len(t, res.TopMatches, 4)
}

func TestMatchThresholdIsExclusive(t *testing.T) {
	// An exact self-match scores 1.0; with the threshold at 1.0 the match
	// must still be confident because only strictly lower scores decline.
	m := newTestMatcher(t, Config{ConfidenceThreshold: 1.0}, testCorpus())

	res := m.Match("what is fever")
	require.Equal(t, OutcomeMatch, res.Outcome)
	require.InDelta(t, 1.0, res.SimilarityScore, 1e-9)
}

func TestMatchTieBreaksOnCorpusOrder(t *testing.T) {
	corpus := []Entry{
		{Question: "what is fever", Answer: "first", Source: "Dataset", Disease: "general"},
		{Question: "what is fever", Answer: "second", Source: "Dataset", Disease: "general"},
	}
	m := newTestMatcher(t, Config{}, corpus)

	res := m.Match("what is fever")
	require.Equal(t, OutcomeMatch, res.Outcome)
	require.Equal(t, "first", res.Answer)
}

func TestMatchEmptyCorpusDegrades(t *testing.T) {
	m := newTestMatcher(t, Config{}, nil)

	res := m.Match("what is fever")
	require.Equal(t, OutcomeNoCandidate, res.Outcome)

	res = m.Match("")
	require.Equal(t, OutcomeNoInput, res.Outcome)
}

func TestMatchGateRequiresSharedToken(t *testing.T) {
	// High vector similarity cannot survive the gate without a literal
	// shared token; sharing a single token is enough to pass it.
	corpus := testCorpus()
	m := newTestMatcher(t, Config{}, corpus)

	res := m.Match("fever")
	require.Equal(t, OutcomeMatch, res.Outcome)
	require.Contains(t, res.MatchedQuestion, "fever")
}
