package summarizer

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode"
)

// DefaultMaxWords is the answer length cap. Transports must summarize any
// answer above this before translation or speech synthesis.
const DefaultMaxWords = 120

// Config drives the extractive summarizer.
type Config struct {
	MaxWords int
}

// Service caps long answers by keeping their highest scoring sentences.
// Each call builds a fresh term-weight model over just the given text;
// nothing is shared with the corpus index.
type Service struct {
	cfg    Config
	logger *slog.Logger
}

// NewService wires up the summarizer domain.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = DefaultMaxWords
	}
	return &Service{cfg: cfg, logger: logger.With("component", "summarizer.service")}
}

// Summarize compresses text to at most the configured word count. Texts of
// two sentences or fewer are returned unchanged; otherwise the top
// max(3, n/3) sentences by summed term weight are kept in their original
// order, and the result is hard-truncated with an ellipsis marker if it
// still exceeds the cap.
func (s *Service) Summarize(text string) string {
	sentences := splitSentences(text)
	if len(sentences) <= 2 {
		return text
	}

	scores := scoreSentences(sentences)
	topN := len(sentences) / 3
	if topN < 3 {
		topN = 3
	}
	selected := pickTop(scores, topN)

	parts := make([]string, 0, len(selected))
	for _, idx := range selected {
		parts = append(parts, sentences[idx])
	}
	return capWords(strings.Join(parts, " "), s.cfg.MaxWords)
}

// WordCount reports the whitespace-separated word count of text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// splitSentences breaks text on ./!/? boundaries followed by whitespace,
// keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, string(runes[start:i+1]))
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// scoreSentences weighs each sentence by its summed TF-IDF term weight, a
// proxy for lexical density.
func scoreSentences(sentences []string) []float64 {
	tokens := make([][]string, len(sentences))
	df := make(map[string]int)
	for i, sentence := range sentences {
		tokens[i] = tokenize(sentence)
		seen := make(map[string]struct{}, len(tokens[i]))
		for _, tok := range tokens[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(sentences))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	scores := make([]float64, len(sentences))
	for i := range sentences {
		tf := make(map[string]float64)
		for _, tok := range tokens[i] {
			tf[tok]++
		}
		var norm float64
		for term := range tf {
			tf[term] *= idf[term]
			norm += tf[term] * tf[term]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		var sum float64
		for _, w := range tf {
			sum += w / norm
		}
		scores[i] = sum
	}
	return scores
}

// pickTop returns the indices of the topN highest scoring sentences,
// re-ordered by original position to preserve narrative order.
func pickTop(scores []float64, topN int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}
	selected := append([]int(nil), order...)
	sort.Ints(selected)
	return selected
}

func capWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	raw := strings.Fields(builder.String())
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := sentenceStopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// sentenceStopwords is the English stopword list used only for sentence
// scoring; it is intentionally independent from the retrieval normalizer.
var sentenceStopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by",
		"with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about",
		"between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same",
		"too", "very", "can", "will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
