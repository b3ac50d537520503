package retrieval

// Entry is one corpus question/answer record. Identity is positional: an
// entry is addressed by its index in the loaded corpus, so duplicate
// question texts remain distinct entries.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
	Disease  string `json:"disease"`
}

// Outcome tags the terminal state of a match decision.
type Outcome string

const (
	// OutcomeNoInput means the query normalized to nothing; no scoring ran.
	OutcomeNoInput Outcome = "no_input"
	// OutcomeNoCandidate means no top candidate shared a token with the query.
	OutcomeNoCandidate Outcome = "no_candidate"
	// OutcomeLowConfidence means the best gated score fell below the threshold.
	OutcomeLowConfidence Outcome = "low_confidence"
	// OutcomeMatch means the matcher committed to a corpus answer.
	OutcomeMatch Outcome = "match"
)

// Candidate pairs a corpus question with its similarity score.
type Candidate struct {
	Question string  `json:"question"`
	Score    float64 `json:"score"`
}

// Result is the fixed-shape outcome of a single match. Consumers branch on
// Outcome; MatchedQuestion is empty unless Outcome is OutcomeMatch.
type Result struct {
	Outcome         Outcome     `json:"outcome"`
	Answer          string      `json:"answer"`
	Disease         string      `json:"disease"`
	Source          string      `json:"source"`
	MatchedQuestion string      `json:"matchedQuestion,omitempty"`
	SimilarityScore float64     `json:"similarityScore"`
	TopMatches      []Candidate `json:"topMatches"`
}
