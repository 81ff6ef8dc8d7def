package codemix

import (
	"testing"

	"codemix/internal/core/dictionary"
	"codemix/internal/core/matcher"
	"codemix/internal/core/normalize"
	"codemix/internal/core/script"
)

func aggregate(t *testing.T, a *Aggregator, text string) Result {
	t.Helper()
	set, err := dictionary.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	s := normalize.New().Sample(text)
	comp := script.NewAnalyzer().Analyze(s.Text)
	return a.Aggregate(s, comp, matcher.MatchSet(set, s))
}

func TestAggregate_Cases(t *testing.T) {
	a := New()
	tests := []struct {
		name  string
		in    string
		mixed bool
	}{
		{"borrowed word in english", "I need a phone", false},
		{"romanized hindi only", "mai aaj bahut khush hai", false},
		{"hindi spelled like english function words", "so ja", false},
		{"native hindi with loanword", "मैं office जा रहा हूँ", false},
		{"pure english", "the weather is great today", false},
		{"romanized hinglish", "yaar this movie is bahut accha but the ending was boring", true},
		{"script mixed", "मैं आज बहुत happy हूँ because the weather is great", true},
		{"empty", "", false},
		{"digits only", "12345", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := aggregate(t, a, tc.in)
			if r.IsCodeMixed != tc.mixed {
				t.Fatalf("%q: mixed=%v score=%v threshold=%v breakdown=%+v", tc.in, r.IsCodeMixed, r.Score, r.Threshold, r.Breakdown)
			}
			if r.Score < 0 || r.Score > 1 {
				t.Fatalf("score out of range: %v", r.Score)
			}
		})
	}
}

func TestAggregate_Breakdown(t *testing.T) {
	r := aggregate(t, New(), "yaar this movie is bahut accha but the ending was boring")
	b := r.Breakdown
	if b.BestLanguage != "hin" || b.BestRatio != 0.2727 {
		t.Fatalf("best = %s %v", b.BestLanguage, b.BestRatio)
	}
	if b.EnglishOverlap != 0.6364 || b.ScriptBalance != 0 {
		t.Fatalf("english=%v script=%v", b.EnglishOverlap, b.ScriptBalance)
	}
	if b.LexicalBalance != 0.5454 || r.Score != 0.3272 {
		t.Fatalf("lexical=%v score=%v", b.LexicalBalance, r.Score)
	}
	if r.Threshold != 0.30 || r.Bucket != normalize.BucketMedium {
		t.Fatalf("threshold=%v bucket=%s", r.Threshold, r.Bucket)
	}
}

func TestAggregate_ShortTextIsStricter(t *testing.T) {
	// scores 0.4, enough for a medium text but not a short one
	short := aggregate(t, New(), "kya hai bro")
	if short.Threshold != 0.50 {
		t.Fatalf("short threshold = %v", short.Threshold)
	}
	if short.Score != 0.4 || short.IsCodeMixed {
		t.Fatalf("short sparse text should not be mixed: %+v", short)
	}
}

func TestAggregate_CustomCurveAndWeights(t *testing.T) {
	c, err := NewStepCurve(Step{MaxRunes: 0, Threshold: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	a := New(WithCurve(c), WithWeights(Weights{Script: 0, Lexical: 2}))
	r := aggregate(t, a, "kya hai bro")
	if r.Threshold != 0.1 || !r.IsCodeMixed {
		t.Fatalf("lenient curve should flag mixing: %+v", r)
	}
	if r.Score != r.Breakdown.LexicalBalance {
		t.Fatalf("lexical only weights: score %v lexical %v", r.Score, r.Breakdown.LexicalBalance)
	}

	// invalid weights are ignored
	if got := New(WithWeights(Weights{Script: -1, Lexical: 1})).w; got != DefaultWeights() {
		t.Fatalf("weights = %+v", got)
	}
}

func TestStepCurve_Default(t *testing.T) {
	c := DefaultCurve()
	cases := map[int]float64{0: 0.50, 15: 0.50, 16: 0.40, 30: 0.40, 31: 0.30, 5000: 0.30}
	for n, want := range cases {
		if got := c.Threshold(n); got != want {
			t.Fatalf("Threshold(%d) = %v, want %v", n, got, want)
		}
	}
	prev := 1.0
	for n := 0; n < 200; n++ {
		got := c.Threshold(n)
		if got > prev {
			t.Fatalf("curve increases at %d", n)
		}
		prev = got
	}
}

func TestNewStepCurve_Validation(t *testing.T) {
	bad := [][]Step{
		nil,
		{{MaxRunes: 10, Threshold: 0.3}, {MaxRunes: 0, Threshold: 0.5}},
		{{MaxRunes: 10, Threshold: 0.5}},
		{{MaxRunes: 0, Threshold: 0.5}, {MaxRunes: -1, Threshold: 0.4}},
		{{MaxRunes: 0, Threshold: 1.5}},
		{{MaxRunes: 10, Threshold: 0.5}, {MaxRunes: 10, Threshold: 0.4}, {MaxRunes: 0, Threshold: 0.3}},
	}
	for i, steps := range bad {
		if _, err := NewStepCurve(steps...); err == nil {
			t.Fatalf("case %d: expected error for %+v", i, steps)
		}
	}

	c, err := NewStepCurve(Step{0, 0.2}, Step{40, 0.3}, Step{10, 0.6})
	if err != nil {
		t.Fatalf("unsorted valid steps: %v", err)
	}
	if c[0].MaxRunes != 10 || c[2].MaxRunes != 0 {
		t.Fatalf("not sorted: %+v", c)
	}
}
