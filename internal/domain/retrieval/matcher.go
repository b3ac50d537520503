package retrieval

import (
	"log/slog"
	"sort"
	"strings"
)

// Fallback phrasing for the three decline outcomes. Distinct wording lets
// clients tell "didn't understand" from "nothing close enough" apart.
const (
	answerNoInput       = "I couldn't understand that. Please try asking clearly."
	answerNoCandidate   = "Sorry, I don't have an exact answer for that. Try rephrasing your question."
	answerLowConfidence = "I'm not confident about the answer. Could you provide more details?"

	fallbackDisease = "unknown"
	fallbackSource  = "Dataset"
)

// Matcher turns a raw utterance into a ranked answer or an explicit
// decline. It keeps no per-query state; one instance serves all
// concurrent callers.
type Matcher struct {
	cfg    Config
	index  *Index
	logger *slog.Logger
}

// NewMatcher wires the decision core over a fitted index.
func NewMatcher(cfg Config, index *Index, logger *slog.Logger) *Matcher {
	return &Matcher{
		cfg:    cfg.withDefaults(),
		index:  index,
		logger: logger.With("component", "retrieval.matcher"),
	}
}

// Match runs the full pipeline: normalize, score, select top candidates,
// apply the lexical overlap gate, then the confidence threshold.
func (m *Matcher) Match(rawQuery string) Result {
	normalized := Normalize(rawQuery)
	if normalized == "" {
		return fallback(OutcomeNoInput, answerNoInput, 0, nil)
	}

	scores := m.index.Scores(m.index.Project(normalized))
	top := m.topCandidates(scores)

	// Lexical overlap gate: a candidate must share at least one literal
	// normalized token with the query, whatever its vector score says.
	queryTokens := tokenSet(strings.Fields(normalized))
	survivors := make([]int, 0, len(top))
	for _, i := range top {
		if sharedTokens(queryTokens, m.index.tokenSets[i]) >= m.cfg.MinSharedTokens {
			survivors = append(survivors, i)
		}
	}
	if len(survivors) == 0 {
		m.logger.Debug("no candidate survived overlap gate", "query", normalized)
		return fallback(OutcomeNoCandidate, answerNoCandidate, 0, nil)
	}

	// Stable max: only a strictly greater score displaces an earlier,
	// higher-ranked candidate.
	best := survivors[0]
	for _, i := range survivors[1:] {
		if scores[i] > scores[best] {
			best = i
		}
	}

	topMatches := make([]Candidate, 0, len(top))
	for _, i := range top {
		topMatches = append(topMatches, Candidate{Question: m.index.entries[i].Question, Score: scores[i]})
	}

	if scores[best] < m.cfg.ConfidenceThreshold {
		m.logger.Debug("best score below threshold", "score", scores[best], "threshold", m.cfg.ConfidenceThreshold)
		return fallback(OutcomeLowConfidence, answerLowConfidence, scores[best], topMatches)
	}

	entry := m.index.entries[best]
	return Result{
		Outcome:         OutcomeMatch,
		Answer:          entry.Answer,
		Disease:         entry.Disease,
		Source:          entry.Source,
		MatchedQuestion: entry.Question,
		SimilarityScore: scores[best],
		TopMatches:      topMatches,
	}
}

// topCandidates selects the highest scoring corpus indices, ties broken
// by original corpus order. Stability is explicit: the slice starts in
// index order and the sort is stable on score only.
func (m *Matcher) topCandidates(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if len(order) > m.cfg.TopCandidates {
		order = order[:m.cfg.TopCandidates]
	}
	return order
}

func fallback(outcome Outcome, answer string, score float64, topMatches []Candidate) Result {
	if topMatches == nil {
		topMatches = make([]Candidate, 0)
	}
	return Result{
		Outcome:         outcome,
		Answer:          answer,
		Disease:         fallbackDisease,
		Source:          fallbackSource,
		SimilarityScore: score,
		TopMatches:      topMatches,
	}
}
