package retrieval

import (
	"math"
	"sort"
	"strings"
)

// minDocFreq prunes vocabulary terms that appear in fewer than this many
// documents; singleton terms carry no discriminative weight.
const minDocFreq = 2

// Index is the TF-IDF vector space fitted once over the corpus questions.
// It is never mutated after construction, so any number of concurrent
// callers may project and score against it without locking.
type Index struct {
	entries    []Entry
	normalized []string
	tokenSets  []map[string]struct{}
	vocabulary map[string]int
	idf        []float64
	rows       []map[int]float64
}

// NewIndex fits the vector space: unigram and bigram terms over the
// normalized questions, document-frequency pruning, smoothed IDF weights
// and L2-normalized rows. An empty corpus yields a usable index that
// scores every query to zero.
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		entries:    entries,
		normalized: make([]string, len(entries)),
		tokenSets:  make([]map[string]struct{}, len(entries)),
		vocabulary: make(map[string]int),
	}

	docTerms := make([][]string, len(entries))
	df := make(map[string]int)
	for i, entry := range entries {
		idx.normalized[i] = Normalize(entry.Question)
		tokens := strings.Fields(idx.normalized[i])
		idx.tokenSets[i] = tokenSet(tokens)
		docTerms[i] = ngrams(tokens)
		seen := make(map[string]struct{}, len(docTerms[i]))
		for _, term := range docTerms[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	// A corpus smaller than the pruning floor keeps its only terms,
	// otherwise a single-entry corpus would have no vocabulary at all.
	minDF := minDocFreq
	if len(entries) < minDF {
		minDF = len(entries)
	}
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if count >= minDF {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	idx.idf = make([]float64, len(terms))
	n := float64(len(entries))
	for i, term := range terms {
		idx.vocabulary[term] = i
		idx.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	idx.rows = make([]map[int]float64, len(entries))
	for i, terms := range docTerms {
		idx.rows[i] = idx.vectorize(terms)
	}
	return idx
}

// Len reports the corpus size.
func (x *Index) Len() int { return len(x.entries) }

// Entry returns the corpus record at position i.
func (x *Index) Entry(i int) Entry { return x.entries[i] }

// Project maps a normalized query into the fitted space. Terms outside
// the corpus vocabulary contribute nothing; unseen terms cannot match.
func (x *Index) Project(normalizedQuery string) map[int]float64 {
	return x.vectorize(ngrams(strings.Fields(normalizedQuery)))
}

// Scores returns the cosine similarity of the query vector against every
// corpus row. All weights are non-negative, so values stay in [0,1].
func (x *Index) Scores(query map[int]float64) []float64 {
	scores := make([]float64, len(x.rows))
	if len(query) == 0 {
		return scores
	}
	for i, row := range x.rows {
		scores[i] = dot(query, row)
	}
	return scores
}

// vectorize builds an L2-normalized sparse TF-IDF vector over the fitted
// vocabulary.
func (x *Index) vectorize(terms []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, term := range terms {
		if col, ok := x.vocabulary[term]; ok {
			vec[col]++
		}
	}
	if len(vec) == 0 {
		return vec
	}
	var norm float64
	for col := range vec {
		vec[col] *= x.idf[col]
		norm += vec[col] * vec[col]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}

// ngrams emits the unigrams followed by space-joined bigrams.
func ngrams(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for col, v := range a {
		sum += v * b[col]
	}
	return sum
}
