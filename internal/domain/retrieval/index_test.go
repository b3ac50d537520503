package retrieval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCorpus() []Entry {
	return []Entry{
		{Question: "what is fever", Answer: "A fever is a raised body temperature.", Source: "Dataset", Disease: "general"},
		{Question: "what causes fever", Answer: "Infections commonly cause fever.", Source: "Dataset", Disease: "general"},
		{Question: "what is diabetes", Answer: "Diabetes is a chronic condition.", Source: "Dataset", Disease: "diabetes"},
		{Question: "what causes diabetes", Answer: "Insulin resistance causes diabetes.", Source: "Dataset", Disease: "diabetes"},
	}
}

func TestIndexSelfMatchScoresOne(t *testing.T) {
	idx := NewIndex(testCorpus())

	scores := idx.Scores(idx.Project(Normalize("what is fever")))
	require.Len(t, scores, 4)
	require.InDelta(t, 1.0, scores[0], 1e-9)
	for i, s := range scores {
		require.GreaterOrEqual(t, s, 0.0, "row %d", i)
		require.LessOrEqual(t, s, 1.0+1e-9, "row %d", i)
	}
}

func TestIndexPrunesSingletonTerms(t *testing.T) {
	idx := NewIndex(testCorpus())

	// "insulin" appears in one answer but in no question, and "malaria"
	// nowhere at all: both project to the zero vector.
	require.Empty(t, idx.Project("insulin"))
	require.Empty(t, idx.Project("malaria"))

	// "treat" occurs in a single question of a larger corpus and is pruned.
	entries := append(testCorpus(), Entry{Question: "how to treat burns", Answer: "Cool the burn."})
	larger := NewIndex(entries)
	require.Empty(t, larger.Project("treat"))
}

func TestIndexSingleEntryCorpusKeepsVocabulary(t *testing.T) {
	idx := NewIndex([]Entry{{Question: "what is fever", Answer: "A fever is..."}})

	scores := idx.Scores(idx.Project(Normalize("what is a fever")))
	require.Len(t, scores, 1)
	require.InDelta(t, 1.0, scores[0], 1e-9)
}

func TestIndexEmptyCorpus(t *testing.T) {
	idx := NewIndex(nil)
	require.Equal(t, 0, idx.Len())
	require.Empty(t, idx.Scores(idx.Project("fever")))
}

func TestIndexOutOfVocabularyQueryScoresZero(t *testing.T) {
	idx := NewIndex(testCorpus())
	scores := idx.Scores(idx.Project(Normalize("zzz unrelated gibberish")))
	for i, s := range scores {
		require.Zero(t, s, "row %d", i)
	}
}
