package script

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		kind Kind
		code Code
	}{
		{'a', KindLatin, Latin},
		{'Z', KindLatin, Latin},
		{'म', KindIndic, Devanagari},
		{'ै', KindIndic, Devanagari}, // vowel sign
		{'ব', KindIndic, Bengali},
		{'த', KindIndic, Tamil},
		{'ਪ', KindIndic, Gurmukhi},
		{'૦', KindDigit, ""},
		{'5', KindDigit, ""},
		{'।', KindPunct, ""},
		{'!', KindPunct, ""},
		{'😀', KindPunct, ""},
		{'Ж', KindOther, Other},
		{' ', KindOther, ""},
	}
	for _, tc := range tests {
		got := Classify(tc.r)
		if got.Kind != tc.kind || got.Script != tc.code {
			t.Fatalf("Classify(%q) = %+v, want kind=%d code=%q", tc.r, got, tc.kind, tc.code)
		}
	}
}

func TestAnalyze_NoScriptable(t *testing.T) {
	a := NewAnalyzer()
	for _, in := range []string{"", "123 456", "!!! ???", "😀 😀", "१२३ ।"} {
		c := a.Analyze(in)
		if c.DominantScript != Undetermined {
			t.Fatalf("%q: dominant = %q, want undetermined", in, c.DominantScript)
		}
		if c.IndicPct != 0 || c.LatinPct != 0 || c.OtherPct != 0 || len(c.Indic) != 0 || c.MixCandidate {
			t.Fatalf("%q: expected zero composition, got %+v", in, c)
		}
	}
}

func TestAnalyze_SumInvariant(t *testing.T) {
	a := NewAnalyzer()
	for _, in := range []string{
		"mai aaj bahut khush hai",
		"मैं आज बहुत खुश हूँ",
		"मैं office जा रहा हूँ",
		"hello Привет नमस्ते வணக்கம்",
		"x",
		"ab१ गग ЖЖЖ 12!",
	} {
		c := a.Analyze(in)
		sum := c.IndicPct + c.LatinPct + c.OtherPct
		if math.Abs(sum-100) > 0.01 {
			t.Fatalf("%q: percentages sum to %v", in, sum)
		}
		var per float64
		for _, p := range c.Indic {
			per += p
		}
		if math.Abs(per-c.IndicPct) > 0.01 {
			t.Fatalf("%q: per-script Indic %v != IndicPct %v", in, per, c.IndicPct)
		}
	}
}

func TestAnalyze_Dominant(t *testing.T) {
	a := NewAnalyzer()
	tests := []struct {
		in   string
		want Code
	}{
		{"hello world", Latin},
		{"नमस्ते दुनिया", Devanagari},
		{"ab गग", Devanagari}, // tie goes to Indic
		{"ЖЖЖ a", Other},
		{"আমি ভালো আছি", Bengali},
	}
	for _, tc := range tests {
		if got := a.Analyze(tc.in).DominantScript; got != tc.want {
			t.Fatalf("Analyze(%q).DominantScript = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAnalyze_MixCandidateFloor(t *testing.T) {
	in := "मैं office जा रहा हूँ"
	if !NewAnalyzer().Analyze(in).MixCandidate {
		t.Fatalf("expected code mixing candidate")
	}
	if NewAnalyzer(WithCandidateFloor(50)).Analyze(in).MixCandidate {
		t.Fatalf("floor 50 should reject candidate")
	}
	if NewAnalyzer().Analyze("hello world").MixCandidate {
		t.Fatalf("pure latin is not a candidate")
	}
}

func TestDominantIndic_TieByCode(t *testing.T) {
	c := Composition{Indic: map[Code]float64{Tamil: 50, Bengali: 50}}
	got, ok := c.DominantIndic()
	if !ok || got != Bengali {
		t.Fatalf("DominantIndic = %q %v, want Beng", got, ok)
	}
}

func TestBlockHelpers(t *testing.T) {
	if lo, ok := BlockStart(Tamil); !ok || lo != 0x0B80 {
		t.Fatalf("BlockStart(Taml) = %x %v", lo, ok)
	}
	if _, ok := BlockStart(Latin); ok {
		t.Fatalf("Latin has no Indic block")
	}
	if !IsIndic(Devanagari) || IsIndic(Latin) {
		t.Fatalf("IsIndic wrong")
	}
	codes := IndicCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("IndicCodes not sorted: %v", codes)
		}
	}
}
