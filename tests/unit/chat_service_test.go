package unit

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aidassist/healthqa/internal/domain/chat"
	"github.com/aidassist/healthqa/internal/domain/retrieval"
	"github.com/aidassist/healthqa/internal/infra/audiostore"
	"github.com/aidassist/healthqa/internal/infra/langstore"
	"github.com/aidassist/healthqa/pkg/metrics"
)

func TestAskTranslatesAnswerAndMatchedQuestion(t *testing.T) {
	matcher := &stubMatcher{
		result: retrieval.Result{
			Outcome:         retrieval.OutcomeMatch,
			Answer:          "Drink fluids and rest.",
			MatchedQuestion: "How do I treat flu?",
			Disease:         "influenza",
			Source:          "Dataset",
			SimilarityScore: 0.82,
		},
	}
	translator := &stubTranslator{prefix: "[hi] "}
	counters := metrics.NewOutcomeCounters()

	svc := newChatService(chat.Config{MaxAnswerWords: 120}, matcher, translator, nil, nil, counters)

	resp, err := svc.Ask(context.Background(), chat.Request{Message: "flu treatment", Language: "hi"})
	require.NoError(t, err)
	require.Equal(t, "[hi] Drink fluids and rest.", resp.Answer)
	require.Equal(t, "[hi] How do I treat flu?", resp.MatchedQuestion)
	require.Equal(t, "hi", resp.Language)
	require.Equal(t, int64(1), counters.Snapshot().Matched)
}

func TestAskSummarizesBeforeTranslating(t *testing.T) {
	longAnswer := strings.Repeat("word ", 200)
	matcher := &stubMatcher{
		result: retrieval.Result{Outcome: retrieval.OutcomeMatch, Answer: longAnswer},
	}
	translator := &stubTranslator{prefix: "[es] "}

	svc := newChatService(chat.Config{MaxAnswerWords: 50}, matcher, translator, nil, nil, metrics.NewOutcomeCounters())

	resp, err := svc.Ask(context.Background(), chat.Request{Message: "anything", Language: "es"})
	require.NoError(t, err)
	require.Equal(t, "[es] summarized", resp.Answer)
	require.Equal(t, []string{"summarized"}, translator.inputs, "translator must see the summarized text, not the original")
}

func TestAskKeepsOriginalTextWhenTranslationFails(t *testing.T) {
	matcher := &stubMatcher{
		result: retrieval.Result{Outcome: retrieval.OutcomeMatch, Answer: "Take paracetamol."},
	}
	translator := &stubTranslator{fail: true}

	svc := newChatService(chat.Config{MaxAnswerWords: 120}, matcher, translator, nil, nil, metrics.NewOutcomeCounters())

	resp, err := svc.Ask(context.Background(), chat.Request{Message: "fever", Language: "ta"})
	require.NoError(t, err)
	require.Equal(t, "Take paracetamol.", resp.Answer)
}

func TestAskSynthesizesAudioWhenEnabled(t *testing.T) {
	matcher := &stubMatcher{
		result: retrieval.Result{Outcome: retrieval.OutcomeMatch, Answer: "Rest well."},
	}
	speech := &stubSpeech{audio: []byte{0x49, 0x44, 0x33}}
	audio := audiostore.NewMemoryStore()

	svc := newChatService(chat.Config{MaxAnswerWords: 120, AudioEnabled: true}, matcher, nil, speech, audio, metrics.NewOutcomeCounters())

	resp, err := svc.Ask(context.Background(), chat.Request{Message: "rest"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.AudioURL, "/api/v1/audio/"))
	require.True(t, strings.HasSuffix(resp.AudioURL, ".mp3"))

	key := strings.TrimPrefix(resp.AudioURL, "/api/v1/audio/")
	data, mimeType, err := svc.Audio(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, speech.audio, data)
	require.Equal(t, "audio/mpeg", mimeType)
}

func TestAskSurvivesSpeechFailure(t *testing.T) {
	matcher := &stubMatcher{
		result: retrieval.Result{Outcome: retrieval.OutcomeMatch, Answer: "Rest well."},
	}
	speech := &stubSpeech{fail: true}

	svc := newChatService(chat.Config{MaxAnswerWords: 120, AudioEnabled: true}, matcher, nil, speech, audiostore.NewMemoryStore(), metrics.NewOutcomeCounters())

	resp, err := svc.Ask(context.Background(), chat.Request{Message: "rest"})
	require.NoError(t, err)
	require.Equal(t, "Rest well.", resp.Answer)
	require.Empty(t, resp.AudioURL)
}

func TestStreamAskEmitsWordsThenMetaThenEnd(t *testing.T) {
	matcher := &stubMatcher{
		result: retrieval.Result{Outcome: retrieval.OutcomeMatch, Answer: "one two three"},
	}
	svc := newChatService(chat.Config{MaxAnswerWords: 120}, matcher, nil, nil, nil, metrics.NewOutcomeCounters())

	stream, err := svc.StreamAsk(context.Background(), chat.Request{Message: "count"})
	require.NoError(t, err)

	var chunks []chat.StreamChunk
	for chunk := range stream {
		chunks = append(chunks, chunk)
	}

	require.Len(t, chunks, 5)
	var rebuilt strings.Builder
	for _, chunk := range chunks[:3] {
		require.Equal(t, chat.ChunkReply, chunk.Type)
		rebuilt.WriteString(chunk.Data)
	}
	require.Equal(t, "one two three", strings.TrimSpace(rebuilt.String()))

	require.Equal(t, chat.ChunkMeta, chunks[3].Type)
	require.NotNil(t, chunks[3].Meta)
	require.Equal(t, "one two three", chunks[3].Meta.Answer)
	require.Equal(t, chat.ChunkEnd, chunks[4].Type)
}

func TestStreamAskStopsOnCancel(t *testing.T) {
	matcher := &stubMatcher{
		result: retrieval.Result{Outcome: retrieval.OutcomeMatch, Answer: strings.Repeat("word ", 50)},
	}
	svc := newChatService(chat.Config{MaxAnswerWords: 120}, matcher, nil, nil, nil, metrics.NewOutcomeCounters())

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := svc.StreamAsk(ctx, chat.Request{Message: "long"})
	require.NoError(t, err)

	<-stream
	cancel()

	count := 1
	for range stream {
		count++
	}
	require.Less(t, count, 52, "stream should stop before draining every frame")
}

func TestLanguagePreferenceRoundTrip(t *testing.T) {
	matcher := &stubMatcher{result: retrieval.Result{Outcome: retrieval.OutcomeMatch}}
	svc := newChatService(chat.Config{MaxAnswerWords: 120}, matcher, nil, nil, nil, metrics.NewOutcomeCounters())

	ctx := context.Background()
	require.Equal(t, "en", svc.LanguageFor(ctx, "whatsapp:+1555"))

	code, err := svc.SetLanguage(ctx, "whatsapp:+1555", "hindi")
	require.NoError(t, err)
	require.Equal(t, "hi", code)
	require.Equal(t, "hi", svc.LanguageFor(ctx, "whatsapp:+1555"))
}

func TestStatsCountsEveryOutcome(t *testing.T) {
	matcher := &stubMatcher{result: retrieval.Result{Outcome: retrieval.OutcomeNoInput}}
	counters := metrics.NewOutcomeCounters()
	svc := newChatService(chat.Config{MaxAnswerWords: 120}, matcher, nil, nil, nil, counters)

	_, err := svc.Ask(context.Background(), chat.Request{Message: "   "})
	require.NoError(t, err)

	matcher.result = retrieval.Result{Outcome: retrieval.OutcomeNoCandidate}
	_, err = svc.Ask(context.Background(), chat.Request{Message: "gibberish"})
	require.NoError(t, err)

	snap := svc.Stats()
	require.Equal(t, int64(1), snap.NoInput)
	require.Equal(t, int64(1), snap.NoCandidate)
	require.Equal(t, int64(2), snap.Total())
}

func newChatService(cfg chat.Config, matcher chat.Matcher, translator chat.Translator, speech chat.SpeechSynthesizer, audio chat.AudioStore, counters *metrics.OutcomeCounters) chat.Service {
	corpus := []retrieval.Entry{
		{Question: "What is diabetes?", Answer: "A chronic condition."},
	}
	return chat.NewService(cfg, matcher, &stubSummarizer{}, translator, speech, audio, langstore.NewMemoryStore(), corpus, counters, newTestLogger())
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubMatcher struct {
	result retrieval.Result
}

func (m *stubMatcher) Match(string) retrieval.Result {
	return m.result
}

type stubSummarizer struct{}

func (s *stubSummarizer) Summarize(string) string {
	return "summarized"
}

type stubTranslator struct {
	prefix string
	fail   bool
	inputs []string
}

func (t *stubTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	t.inputs = append(t.inputs, text)
	if t.fail {
		return "", context.DeadlineExceeded
	}
	return t.prefix + text, nil
}

type stubSpeech struct {
	audio []byte
	fail  bool
}

func (s *stubSpeech) Synthesize(_ context.Context, _, _ string) ([]byte, error) {
	if s.fail {
		return nil, context.DeadlineExceeded
	}
	return s.audio, nil
}
