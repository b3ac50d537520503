package retrieval

// Config tunes candidate selection and the decision policy. The lexical
// overlap gate is deliberately a named knob so the policy can change
// without touching the ranking itself.
type Config struct {
	// TopCandidates is how many highest-scoring corpus rows are considered.
	TopCandidates int
	// ConfidenceThreshold is the minimum score to commit to an answer.
	// Scores strictly below it produce OutcomeLowConfidence.
	ConfidenceThreshold float64
	// MinSharedTokens is the lexical overlap gate: a candidate must share
	// at least this many normalized tokens with the query.
	MinSharedTokens int
}

// DefaultConfig mirrors the tuned production values.
func DefaultConfig() Config {
	return Config{
		TopCandidates:       5,
		ConfidenceThreshold: 0.15,
		MinSharedTokens:     1,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TopCandidates <= 0 {
		c.TopCandidates = def.TopCandidates
	}
	if c.ConfidenceThreshold <= 0 {
		c.ConfidenceThreshold = def.ConfidenceThreshold
	}
	if c.MinSharedTokens <= 0 {
		c.MinSharedTokens = def.MinSharedTokens
	}
	return c
}
