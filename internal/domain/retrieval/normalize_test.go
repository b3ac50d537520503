package retrieval

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{name: "trims and lowercases", in: "  What Is FEVER  ", out: "fever"},
		{name: "punctuation becomes space", in: "fever, chills... headache!", out: "fever chills headache"},
		{name: "collapses whitespace", in: "fever    and \t chills", out: "fever chills"},
		{name: "stopwords removed", in: "what is the cause of fever", out: "cause fever"},
		{name: "stopwords only", in: "the and of", out: ""},
		{name: "empty", in: "", out: ""},
		{name: "digits kept", in: "covid-19 symptoms", out: "covid 19 symptoms"},
		{name: "order preserved", in: "treat fever before chills", out: "treat fever before chills"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.out {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"What is a fever?",
		"  multiple   spaces here ",
		"punctuation!!! galore???",
		"",
		"the and of",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestSharedTokens(t *testing.T) {
	a := tokenSet([]string{"fever", "chills", "headache"})
	b := tokenSet([]string{"fever", "rash"})
	if got := sharedTokens(a, b); got != 1 {
		t.Fatalf("expected 1 shared token, got %d", got)
	}
	if got := sharedTokens(a, tokenSet(nil)); got != 0 {
		t.Fatalf("expected 0 shared tokens, got %d", got)
	}
	// more shared tokens never lowers the count
	c := tokenSet([]string{"fever", "rash", "chills"})
	if got := sharedTokens(a, c); got < sharedTokens(a, b) {
		t.Fatalf("overlap decreased when adding shared tokens")
	}
}
