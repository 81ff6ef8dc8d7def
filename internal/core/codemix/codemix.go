// Package codemix fuses script composition, dictionary evidence and English
// overlap into one code mixing score judged against a length aware threshold.
package codemix

import (
	"fmt"
	"math"

	"codemix/internal/core/matcher"
	"codemix/internal/core/normalize"
	"codemix/internal/core/script"
)

// Weights of the two score components
type Weights struct {
	Script  float64 `toml:"script" json:"script"`
	Lexical float64 `toml:"lexical" json:"lexical"`
}

// DefaultWeights leans on lexical evidence, which survives romanization
func DefaultWeights() Weights { return Weights{Script: 0.4, Lexical: 0.6} }

// Validate requires non negative weights with a positive sum
func (w Weights) Validate() error {
	if w.Script < 0 || w.Lexical < 0 || w.Script+w.Lexical <= 0 {
		return fmt.Errorf("codemix: invalid weights %+v", w)
	}
	return nil
}

func (w Weights) normalized() Weights {
	sum := w.Script + w.Lexical
	return Weights{Script: w.Script / sum, Lexical: w.Lexical / sum}
}

// Breakdown shows what fed the score
type Breakdown struct {
	ScriptBalance  float64 `json:"script_balance" msgpack:"script_balance"`
	IndicEvidence  float64 `json:"indic_evidence" msgpack:"indic_evidence"`
	EnglishOverlap float64 `json:"english_overlap" msgpack:"english_overlap"`
	LexicalBalance float64 `json:"lexical_balance" msgpack:"lexical_balance"`
	BestLanguage   string  `json:"best_language,omitempty" msgpack:"best_language,omitempty"`
	BestRatio      float64 `json:"best_ratio" msgpack:"best_ratio"`
	NativeRatio    float64 `json:"native_ratio" msgpack:"native_ratio"`
}

// Result is the aggregator's verdict
type Result struct {
	IsCodeMixed bool             `json:"is_code_mixed" msgpack:"is_code_mixed"`
	Score       float64          `json:"code_mixing_score" msgpack:"code_mixing_score"`
	Threshold   float64          `json:"threshold" msgpack:"threshold"`
	Bucket      normalize.Bucket `json:"bucket" msgpack:"bucket"`
	Breakdown   Breakdown        `json:"breakdown" msgpack:"breakdown"`
}

// Aggregator is immutable and safe for concurrent use
type Aggregator struct {
	curve Curve
	w     Weights
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithCurve replaces the threshold curve
func WithCurve(c Curve) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.curve = c
		}
	}
}

// WithWeights replaces the component weights; invalid weights are ignored
func WithWeights(w Weights) Option {
	return func(a *Aggregator) {
		if w.Validate() == nil {
			a.w = w.normalized()
		}
	}
}

// New constructs an Aggregator with the default curve and weights
func New(opts ...Option) *Aggregator {
	a := &Aggregator{curve: DefaultCurve(), w: DefaultWeights()}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Threshold exposes the curve value for a length
func (a *Aggregator) Threshold(runeLen int) float64 { return a.curve.Threshold(runeLen) }

// Aggregate scores one sample. Text with no tokens or no scriptable runes is
// never mixed.
func (a *Aggregator) Aggregate(s normalize.Sample, comp script.Composition, m matcher.Result) Result {
	res := Result{Bucket: s.Bucket, Threshold: round4(a.curve.Threshold(s.RuneLen))}
	if len(m.Tokens) == 0 || comp.Scriptable == 0 {
		return res
	}

	b := Breakdown{
		ScriptBalance:  clamp01(2 * math.Min(comp.IndicPct, comp.LatinPct) / 100),
		NativeRatio:    m.NativeRatio(),
		EnglishOverlap: m.EnglishRatio(),
	}
	if best, ok := m.Best(); ok {
		b.BestLanguage, b.BestRatio = best.ISOCode, best.MatchRatio
	}
	b.IndicEvidence = math.Max(b.BestRatio, b.NativeRatio)
	b.LexicalBalance = clamp01(2 * math.Min(b.IndicEvidence, b.EnglishOverlap))

	b.ScriptBalance = round4(b.ScriptBalance)
	b.IndicEvidence = round4(b.IndicEvidence)
	b.LexicalBalance = round4(b.LexicalBalance)

	res.Breakdown = b
	res.Score = round4(clamp01(a.w.Script*b.ScriptBalance + a.w.Lexical*b.LexicalBalance))
	res.IsCodeMixed = res.Score > 0 && res.Score >= res.Threshold
	return res
}

func clamp01(v float64) float64 {
	switch {
	case v < 0, math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}

func round4(v float64) float64 { return math.Round(v*1e4) / 1e4 }
