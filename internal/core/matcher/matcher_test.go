// internal/core/matcher/matcher_test.go
package matcher

import (
	"strings"
	"testing"

	"codemix/internal/core/dictionary"
	"codemix/internal/core/normalize"
)

func defaults(t *testing.T) *dictionary.Set {
	t.Helper()
	s, err := dictionary.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	return s
}

func run(t *testing.T, set *dictionary.Set, text string) Result {
	t.Helper()
	return MatchSet(set, normalize.New().Sample(text))
}

func TestMatch_HindiSentence(t *testing.T) {
	res := run(t, defaults(t), "mai aaj bahut khush hai")

	best, ok := res.Best()
	if !ok || best.ISOCode != "hin" {
		t.Fatalf("best = %+v %v, want hin", best, ok)
	}
	if best.MatchRatio != 1.0 || best.Hits != 5 {
		t.Fatalf("hin ratio=%v hits=%d", best.MatchRatio, best.Hits)
	}
	if best.Hybrid != "मैं आज बहुत खुश है" {
		t.Fatalf("hin hybrid = %q", best.Hybrid)
	}
	if res.Hybrid != "मैं आज बहुत खुश है" {
		t.Fatalf("combined hybrid = %q", res.Hybrid)
	}
}

func TestMatch_OnlyHindiDictionary(t *testing.T) {
	doc := `{"language":"Hindi","script":"Deva","iso_code":"hin","categories":{"common":{
		"mai":"मैं","aaj":"आज","bahut":"बहुत","khush":"खुश","hai":"है"}}}`
	d, err := dictionary.Parse([]byte(doc), dictionary.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	res := run(t, dictionary.NewSet(d), "mai aaj bahut khush hai")
	if res.Ratio("hin") != 1.0 || res.Hybrid != "मैं आज बहुत खुश है" {
		t.Fatalf("ratio=%v hybrid=%q", res.Ratio("hin"), res.Hybrid)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	set := defaults(t)
	in := "yaar aaj ka plan kya hai, movie chalein?"
	a := run(t, set, in)
	for i := 0; i < 10; i++ {
		b := run(t, set, in)
		if a.Hybrid != b.Hybrid || a.Version != b.Version {
			t.Fatalf("non deterministic: %q vs %q", a.Hybrid, b.Hybrid)
		}
		for j := range a.Languages {
			if a.Languages[j] != b.Languages[j] {
				t.Fatalf("language order changed: %+v vs %+v", a.Languages[j], b.Languages[j])
			}
		}
	}
}

func TestMatch_BorrowedAndEnglishArePreservedOrNeutral(t *testing.T) {
	res := run(t, defaults(t), "I need a phone")
	if _, ok := res.Best(); ok {
		t.Fatalf("no Indic hits expected, got %+v", res.Languages[0])
	}
	if res.EnglishTokens != 3 {
		t.Fatalf("english tokens = %d, want 3", res.EnglishTokens)
	}
	last := res.Tokens[3]
	if !last.Borrowed || last.English || last.Indic() {
		t.Fatalf("phone should be borrowed only: %+v", last)
	}
	if res.Hybrid != "I need a phone" {
		t.Fatalf("combined hybrid should be untouched without hits, got %q", res.Hybrid)
	}
	for _, l := range res.Languages {
		if l.ISOCode == "hin" && l.Hybrid != "I need a फ़ोन" {
			t.Fatalf("hin hybrid = %q", l.Hybrid)
		}
	}
}

func TestMatch_SharedTokenGoesToDominantLanguage(t *testing.T) {
	// aaj is in ben, hin and mar; hin has more hits elsewhere
	res := run(t, defaults(t), "aaj bahut kaam hai")
	if !strings.HasPrefix(res.Hybrid, "आज") {
		t.Fatalf("hybrid = %q", res.Hybrid)
	}

	// ami and bhalo make Bengali win the shared token
	res = run(t, defaults(t), "ami aaj bhalo")
	if res.Hybrid != "আমি আজ ভালো" {
		t.Fatalf("hybrid = %q", res.Hybrid)
	}
}

func TestMatch_FunctionWordsFollowTheText(t *testing.T) {
	res := run(t, defaults(t), "so ja")
	if best, ok := res.Best(); !ok || best.ISOCode != "hin" || best.Hits != 2 {
		t.Fatalf("best = %+v %v, want hin with 2 hits", best, ok)
	}
	if res.EnglishTokens != 0 || res.Hybrid != "सो जा" {
		t.Fatalf("english=%d hybrid=%q", res.EnglishTokens, res.Hybrid)
	}

	// other English words keep "to" and "so" English
	res = run(t, defaults(t), "I want to sleep so ja")
	for _, i := range []int{2, 4} {
		if tm := res.Tokens[i]; !tm.English || tm.Indic() || !tm.Preserve {
			t.Fatalf("token %q should stay English: %+v", tm.Text, tm)
		}
	}
	if best, ok := res.Best(); !ok || best.Hits != 1 {
		t.Fatalf("only ja should hit, got %+v", best)
	}
}

func TestAttribute_TieByISO(t *testing.T) {
	tm := TokenMatch{Hits: []dictionary.Hit{{ISOCode: "ben", Native: "x"}, {ISOCode: "hin", Native: "y"}}}
	if got := attribute(tm, map[string]int{"ben": 2, "hin": 2}); got != 0 {
		t.Fatalf("tie should pick ben, got %d", got)
	}
	if got := attribute(tm, map[string]int{"ben": 1, "hin": 3}); got != 1 {
		t.Fatalf("hin has more hits elsewhere, got %d", got)
	}
}

func TestMatch_PreservesDigitsAcronymsAndNative(t *testing.T) {
	res := run(t, defaults(t), "OK bhai 100rs दे दो")
	var hin Language
	for _, l := range res.Languages {
		if l.ISOCode == "hin" {
			hin = l
		}
	}
	if hin.Hybrid != "OK भाई 100rs दे दो" {
		t.Fatalf("hybrid = %q", hin.Hybrid)
	}
	if res.NativeTokens != 2 || res.NativeRatio() != 0.4 {
		t.Fatalf("native = %d ratio %v", res.NativeTokens, res.NativeRatio())
	}
}

func TestMatch_Empty(t *testing.T) {
	res := run(t, defaults(t), "   ")
	if len(res.Tokens) != 0 || res.Hybrid != "" {
		t.Fatalf("empty result = %+v", res)
	}
	if _, ok := res.Best(); ok {
		t.Fatalf("empty text has no best")
	}
	if res.EnglishRatio() != 0 || res.NativeRatio() != 0 {
		t.Fatalf("ratios should be zero")
	}
}

func TestMatcher_UsesCurrentSnapshot(t *testing.T) {
	reg := dictionary.NewRegistry(defaults(t))
	m := New(reg)
	if _, ok := m.Match(normalize.New().Sample("naya")).Best(); ok {
		t.Fatalf("naya unknown before load")
	}
	doc := `{"language":"Hindi","script":"Deva","iso_code":"hin","categories":{"common":{"naya":"नया"}}}`
	if _, err := reg.Load("hin", strings.NewReader(doc), dictionary.FormatJSON); err != nil {
		t.Fatal(err)
	}
	best, ok := m.Match(normalize.New().Sample("naya")).Best()
	if !ok || best.Hybrid != "नया" {
		t.Fatalf("best after load = %+v", best)
	}
}
