package metrics

import "sync/atomic"

// OutcomeCounters tracks how often each terminal match outcome was served.
type OutcomeCounters struct {
	noInput       atomic.Int64
	noCandidate   atomic.Int64
	lowConfidence atomic.Int64
	matched       atomic.Int64
}

// NewOutcomeCounters constructs a zeroed counter set.
func NewOutcomeCounters() *OutcomeCounters {
	return &OutcomeCounters{}
}

// Record bumps the counter for the given outcome tag. Unknown tags are ignored.
func (c *OutcomeCounters) Record(outcome string) {
	switch outcome {
	case "no_input":
		c.noInput.Add(1)
	case "no_candidate":
		c.noCandidate.Add(1)
	case "low_confidence":
		c.lowConfidence.Add(1)
	case "match":
		c.matched.Add(1)
	}
}

// Snapshot returns the current counter values.
func (c *OutcomeCounters) Snapshot() Snapshot {
	return Snapshot{
		NoInput:       c.noInput.Load(),
		NoCandidate:   c.noCandidate.Load(),
		LowConfidence: c.lowConfidence.Load(),
		Matched:       c.matched.Load(),
	}
}

// Snapshot is a point-in-time view of the outcome counters.
type Snapshot struct {
	NoInput       int64 `json:"noInput"`
	NoCandidate   int64 `json:"noCandidate"`
	LowConfidence int64 `json:"lowConfidence"`
	Matched       int64 `json:"matched"`
}

// Total sums every outcome.
func (s Snapshot) Total() int64 {
	return s.NoInput + s.NoCandidate + s.LowConfidence + s.Matched
}
