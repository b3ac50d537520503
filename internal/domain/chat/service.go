package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aidassist/healthqa/internal/domain/language"
	"github.com/aidassist/healthqa/internal/domain/retrieval"
	"github.com/aidassist/healthqa/internal/domain/summarizer"
	apperrors "github.com/aidassist/healthqa/pkg/errors"
	"github.com/aidassist/healthqa/pkg/metrics"
)

// Service exposes the chat surface built around the retrieval core.
type Service interface {
	Ask(ctx context.Context, req Request) (Response, error)
	StreamAsk(ctx context.Context, req Request) (<-chan StreamChunk, error)
	FAQs(ctx context.Context, limit int, lang string) ([]FAQ, error)
	SetLanguage(ctx context.Context, sender, lang string) (string, error)
	LanguageFor(ctx context.Context, sender string) string
	Audio(ctx context.Context, key string) ([]byte, string, error)
	Stats() metrics.Snapshot
}

// Matcher is the retrieval decision core.
type Matcher interface {
	Match(rawQuery string) retrieval.Result
}

// Summarizer caps over-long answers.
type Summarizer interface {
	Summarize(text string) string
}

// Translator converts text into the requested language; implementations
// are expected to fail soft and let the caller keep the original text.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// SpeechSynthesizer renders text to MP3 audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// AudioStore persists synthesized audio for later retrieval.
type AudioStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// LanguageStore keeps per-sender language preferences for messaging
// channels.
type LanguageStore interface {
	Get(ctx context.Context, sender string) (string, error)
	Set(ctx context.Context, sender, lang string) error
}

type service struct {
	cfg        Config
	matcher    Matcher
	summarizer Summarizer
	translator Translator
	speech     SpeechSynthesizer
	audio      AudioStore
	languages  LanguageStore
	corpus     []retrieval.Entry
	counters   *metrics.OutcomeCounters
	logger     *slog.Logger
}

// NewService wires up the chat domain.
func NewService(
	cfg Config,
	matcher Matcher,
	summarySvc Summarizer,
	translator Translator,
	speech SpeechSynthesizer,
	audio AudioStore,
	languages LanguageStore,
	corpus []retrieval.Entry,
	counters *metrics.OutcomeCounters,
	logger *slog.Logger,
) Service {
	if cfg.MaxAnswerWords <= 0 {
		cfg.MaxAnswerWords = summarizer.DefaultMaxWords
	}
	return &service{
		cfg:        cfg,
		matcher:    matcher,
		summarizer: summarySvc,
		translator: translator,
		speech:     speech,
		audio:      audio,
		languages:  languages,
		corpus:     corpus,
		counters:   counters,
		logger:     logger.With("component", "chat.service"),
	}
}

func (s *service) Ask(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	lang := language.NormalizeCode(req.Language)

	result := s.matcher.Match(req.Message)
	s.counters.Record(string(result.Outcome))

	answer := result.Answer
	// Compress before translating or synthesizing, so neither step spends
	// effort on text the client will never receive.
	if summarizer.WordCount(answer) > s.cfg.MaxAnswerWords {
		answer = s.summarizer.Summarize(answer)
	}
	answer = s.translate(ctx, answer, lang)
	matched := s.translate(ctx, result.MatchedQuestion, lang)

	resp := Response{
		Answer:          answer,
		Outcome:         result.Outcome,
		Disease:         result.Disease,
		Source:          result.Source,
		MatchedQuestion: matched,
		SimilarityScore: result.SimilarityScore,
		TopMatches:      result.TopMatches,
		Language:        lang,
	}

	if s.cfg.AudioEnabled && s.speech != nil && s.audio != nil {
		url, err := s.synthesize(ctx, answer, lang)
		if err != nil {
			s.logger.Warn("audio synthesis failed", "lang", lang, "error", err)
		} else {
			resp.AudioURL = url
		}
	}

	resp.DurationMs = time.Since(start).Milliseconds()
	return resp, nil
}

func (s *service) StreamAsk(ctx context.Context, req Request) (<-chan StreamChunk, error) {
	resp, err := s.Ask(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		for _, word := range strings.Fields(resp.Answer) {
			select {
			case <-ctx.Done():
				return
			case out <- StreamChunk{Type: ChunkReply, Data: word + " "}:
			}
			if s.cfg.WordDelay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(s.cfg.WordDelay):
				}
			}
		}
		meta := resp
		select {
		case <-ctx.Done():
			return
		case out <- StreamChunk{Type: ChunkMeta, Meta: &meta}:
		}
		select {
		case <-ctx.Done():
		case out <- StreamChunk{Type: ChunkEnd}:
		}
	}()
	return out, nil
}

func (s *service) FAQs(ctx context.Context, limit int, lang string) ([]FAQ, error) {
	if limit <= 0 || limit > len(s.corpus) {
		limit = len(s.corpus)
	}
	code := language.NormalizeCode(lang)
	faqs := make([]FAQ, 0, limit)
	for _, entry := range s.corpus[:limit] {
		faqs = append(faqs, FAQ{
			Question: s.translate(ctx, entry.Question, code),
			Answer:   s.translate(ctx, entry.Answer, code),
		})
	}
	return faqs, nil
}

func (s *service) SetLanguage(ctx context.Context, sender, lang string) (string, error) {
	code := language.NormalizeCode(lang)
	if s.languages != nil && sender != "" {
		if err := s.languages.Set(ctx, sender, code); err != nil {
			s.logger.Warn("language preference save failed", "sender", sender, "error", err)
		}
	}
	return code, nil
}

func (s *service) LanguageFor(ctx context.Context, sender string) string {
	if s.languages == nil || sender == "" {
		return language.Default
	}
	code, err := s.languages.Get(ctx, sender)
	if err != nil {
		s.logger.Warn("language preference lookup failed", "sender", sender, "error", err)
		return language.Default
	}
	if code == "" {
		return language.Default
	}
	return code
}

func (s *service) Audio(ctx context.Context, key string) ([]byte, string, error) {
	if s.audio == nil {
		return nil, "", apperrors.Wrap("audio_unavailable", "audio storage not configured", nil)
	}
	return s.audio.Get(ctx, key)
}

func (s *service) Stats() metrics.Snapshot {
	return s.counters.Snapshot()
}

func (s *service) translate(ctx context.Context, text, lang string) string {
	if text == "" || lang == language.Default || s.translator == nil {
		return text
	}
	translated, err := s.translator.Translate(ctx, text, lang)
	if err != nil {
		s.logger.Warn("translation failed, keeping original text", "lang", lang, "error", err)
		return text
	}
	return translated
}

func (s *service) synthesize(ctx context.Context, text, lang string) (string, error) {
	audio, err := s.speech.Synthesize(ctx, text, lang)
	if err != nil {
		return "", err
	}
	key := uuid.NewString() + ".mp3"
	return s.audio.Put(ctx, key, audio, "audio/mpeg")
}
