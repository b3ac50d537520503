package chat

import (
	"time"

	"github.com/aidassist/healthqa/internal/domain/retrieval"
)

// Request encapsulates one user utterance. Language travels with the
// request; there is no process-wide "current language".
type Request struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Answer          string                `json:"answer"`
	Outcome         retrieval.Outcome     `json:"outcome"`
	Disease         string                `json:"disease"`
	Source          string                `json:"source"`
	MatchedQuestion string                `json:"matchedQuestion,omitempty"`
	SimilarityScore float64               `json:"similarityScore"`
	TopMatches      []retrieval.Candidate `json:"topMatches"`
	Language        string                `json:"language"`
	AudioURL        string                `json:"audio,omitempty"`
	DurationMs      int64                 `json:"durationMs"`
}

// Answered reports whether the response carries a committed corpus answer
// rather than one of the decline fallbacks.
func (r Response) Answered() bool {
	return r.Outcome == retrieval.OutcomeMatch
}

// ChunkType tags a streaming frame.
type ChunkType string

const (
	ChunkReply ChunkType = "reply"
	ChunkMeta  ChunkType = "meta"
	ChunkEnd   ChunkType = "end"
)

// StreamChunk is one NDJSON frame of the word-by-word chat stream.
type StreamChunk struct {
	Type ChunkType `json:"type"`
	Data string    `json:"data,omitempty"`
	Meta *Response `json:"meta,omitempty"`
}

// FAQ is a corpus entry prepared for client display.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Config tunes the orchestration around the matcher.
type Config struct {
	// MaxAnswerWords caps answers before translation or speech; answers
	// above it are summarized first.
	MaxAnswerWords int
	// WordDelay paces the word-by-word stream.
	WordDelay time.Duration
	// AudioEnabled switches speech synthesis of answers on.
	AudioEnabled bool
}
