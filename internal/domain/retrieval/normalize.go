package retrieval

import (
	"strings"
	"unicode"
)

// stopwords is the fixed set of English function words dropped during
// normalization. Corpus and queries must be cleaned with the same set.
var stopwords = buildStopwords(`a an the and or of in on at to with for from
is are be was were been being do does did doing have has had having
what why how when where which whom whose
can could may might shall should will would must
if then else than not no yes`)

func buildStopwords(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// Normalize lowercases text, folds punctuation into spaces, collapses
// whitespace runs and strips stopwords, preserving token order. It is a
// pure, idempotent function of its input.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		// punctuation and whitespace both collapse to a single space
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	tokens := strings.Fields(builder.String())
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// sharedTokens counts distinct tokens present in both sets.
func sharedTokens(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			count++
		}
	}
	return count
}
