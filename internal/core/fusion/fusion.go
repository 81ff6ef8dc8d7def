// Package fusion turns the script, pattern, code mixing and oracle signals of
// one text into a single decision through a fixed priority chain.
package fusion

import (
	"fmt"
	"math"
	"sort"

	"codemix/internal/core/codemix"
	"codemix/internal/core/matcher"
	"codemix/internal/core/oracle"
	"codemix/internal/core/script"
)

// English is the secondary language of romanized code mixing
const English = "eng"

// Thresholds tune the chain
type Thresholds struct {
	High               float64 `toml:"high_confidence" json:"high_confidence"`
	Low                float64 `toml:"low_confidence" json:"low_confidence"`
	OracleWeight       float64 `toml:"oracle_weight" json:"oracle_weight"`
	PatternWeight      float64 `toml:"pattern_weight" json:"pattern_weight"`
	HeuristicCap       float64 `toml:"heuristic_cap" json:"heuristic_cap"`
	CodeMixedCap       float64 `toml:"code_mixed_cap" json:"code_mixed_cap"`
	OverrideConfidence float64 `toml:"override_confidence" json:"override_confidence"`
}

// DefaultThresholds are the production values
func DefaultThresholds() Thresholds {
	return Thresholds{
		High:               0.8,
		Low:                0.4,
		OracleWeight:       0.7,
		PatternWeight:      0.3,
		HeuristicCap:       0.5,
		CodeMixedCap:       0.92,
		OverrideConfidence: 0.95,
	}
}

// Validate checks ranges and ordering
func (t Thresholds) Validate() error {
	in01 := func(v float64) bool { return v >= 0 && v <= 1 }
	switch {
	case !in01(t.High) || !in01(t.Low) || t.Low >= t.High:
		return fmt.Errorf("fusion: need 0 <= low < high <= 1, got low=%v high=%v", t.Low, t.High)
	case t.OracleWeight < 0 || t.PatternWeight < 0 || t.OracleWeight+t.PatternWeight <= 0:
		return fmt.Errorf("fusion: invalid weights %v/%v", t.OracleWeight, t.PatternWeight)
	case !in01(t.HeuristicCap) || !in01(t.CodeMixedCap) || !in01(t.OverrideConfidence):
		return fmt.Errorf("fusion: caps must lie in [0,1]")
	}
	return nil
}

// Input is everything the chain looks at for one text
type Input struct {
	Composition script.Composition
	Match       matcher.Result
	Mix         codemix.Result
	Guesses     []oracle.Guess // ranked; empty when the oracle was unavailable
	OracleErr   error
}

// Engine is stateless and safe for concurrent use
type Engine struct {
	th Thresholds
}

// New falls back to DefaultThresholds when th is invalid
func New(th Thresholds) *Engine {
	if th.Validate() != nil {
		th = DefaultThresholds()
	}
	sum := th.OracleWeight + th.PatternWeight
	th.OracleWeight, th.PatternWeight = th.OracleWeight/sum, th.PatternWeight/sum
	return &Engine{th: th}
}

// Thresholds returns the effective configuration
func (e *Engine) Thresholds() Thresholds { return e.th }

// Decide runs the priority chain
func (e *Engine) Decide(in Input) Decision {
	d := Decision{
		Script:          in.Composition.DominantScript,
		IsCodeMixed:     in.Mix.IsCodeMixed,
		CodeMixingScore: in.Mix.Score,
		Composition:     in.Composition,
		Signals:         signals(in),
	}

	available := in.OracleErr == nil && len(in.Guesses) > 0
	top := oracle.Top(in.Guesses)

	switch {
	case !available:
		e.heuristic(&d, in)
	case top.Confidence >= e.th.High && !in.Mix.IsCodeMixed:
		d.Language, d.Confidence, d.Method = top.Language, top.Confidence, MethodOracleHigh
	case in.Mix.IsCodeMixed:
		e.codeMixed(&d, in, top.Language)
	case top.Confidence >= e.th.Low:
		d.Language = top.Language
		d.Confidence = e.th.OracleWeight*top.Confidence + e.th.PatternWeight*patternRatio(in.Match, top.Language)
		d.Method = MethodWeighted
	default:
		d.Language, d.Method = Undetermined, MethodLowConfidence
		d.Confidence = maxSignal(d.Signals)
	}

	e.finish(&d, in)
	return d
}

// Override builds the decision for a user supplied language
func (e *Engine) Override(in Input, lang string) Decision {
	d := Decision{
		Language:        oracle.NormalizeCode(lang),
		Script:          in.Composition.DominantScript,
		Confidence:      e.th.OverrideConfidence,
		Method:          MethodUserOverride,
		IsCodeMixed:     in.Mix.IsCodeMixed,
		CodeMixingScore: in.Mix.Score,
		Composition:     in.Composition,
		Signals:         signals(in),
	}
	e.finish(&d, in)
	return d
}

// Invalid is the decision for input with nothing to analyze
func Invalid(comp script.Composition) Decision {
	return Decision{
		Language:    Undetermined,
		Script:      comp.DominantScript,
		Method:      MethodInvalidInput,
		Composition: comp,
	}
}

// Refresh rebinds a cached decision to the text being served: script
// makeup and conversion follow the current text, the verdict stays.
func Refresh(d Decision, comp script.Composition, m matcher.Result) Decision {
	c := d.Clone()
	c.Script = comp.DominantScript
	c.Composition = comp
	c.Converted = ""
	c.NeedsConversion = oracle.IsIndic(c.Language) && comp.DominantScript == script.Latin
	if c.NeedsConversion {
		c.Converted = converted(m, c.Language, c.IsCodeMixed)
	}
	return c
}

func (e *Engine) heuristic(d *Decision, in Input) {
	d.Method = MethodHeuristic
	if in.Mix.IsCodeMixed {
		d.Languages = mixedLanguages(in, "")
		d.Language = d.Languages[0]
		d.Confidence = math.Min(e.th.HeuristicCap, e.mixedConfidence(in.Mix))
		return
	}
	var best Signal
	for _, s := range d.Signals {
		if s.Source == SourceOracle {
			continue
		}
		if s.Confidence > best.Confidence {
			best = s
		}
	}
	if best.Language == "" {
		d.Language = Undetermined
		return
	}
	d.Language = best.Language
	d.Confidence = math.Min(e.th.HeuristicCap, best.Confidence)
}

func (e *Engine) codeMixed(d *Decision, in Input, oracleTop string) {
	d.Method = MethodCodeMixed
	d.Languages = mixedLanguages(in, oracleTop)
	d.Language = d.Languages[0]
	d.Confidence = e.mixedConfidence(in.Mix)
}

// mixedConfidence grows from 0.6 with the score, capped
func (e *Engine) mixedConfidence(m codemix.Result) float64 {
	return math.Min(e.th.CodeMixedCap, 0.6+0.4*m.Score)
}

// mixedLanguages orders the two languages of a code mixed text. The primary
// comes from the dominant script: romanized text takes the best pattern
// match, native text the best dictionary language of that script or the
// script's default language. The oracle top is the last resort.
func mixedLanguages(in Input, oracleTop string) []string {
	comp := in.Composition
	primary := ""
	switch {
	case comp.DominantScript == script.Latin:
		if best, ok := in.Match.Best(); ok {
			primary = best.ISOCode
		} else if dom, ok := comp.DominantIndic(); ok {
			primary, _ = oracle.LanguageForScript(dom)
		}
	case script.IsIndic(comp.DominantScript):
		for _, l := range in.Match.Languages {
			if l.Script == comp.DominantScript && l.Hits > 0 {
				primary = l.ISOCode
				break
			}
		}
		if primary == "" {
			primary, _ = oracle.LanguageForScript(comp.DominantScript)
		}
	}
	if primary == "" && oracleTop != "" {
		primary = oracleTop
	}
	if primary == "" {
		primary = Undetermined
	}
	if primary == English {
		return []string{English}
	}
	return []string{primary, English}
}

func patternRatio(m matcher.Result, lang string) float64 {
	if lang == English {
		return m.EnglishRatio()
	}
	return m.Ratio(lang)
}

// finish applies conversion flags and rounding
func (e *Engine) finish(d *Decision, in Input) {
	if d.Language == "" {
		d.Language = Undetermined
	}
	if len(d.Languages) == 0 && d.Determined() {
		d.Languages = []string{d.Language}
	}
	d.NeedsConversion = oracle.IsIndic(d.Language) && d.Composition.DominantScript == script.Latin
	if d.NeedsConversion {
		d.Converted = converted(in.Match, d.Language, d.IsCodeMixed)
	}
	d.Confidence = round4(clamp01(d.Confidence))
}

func converted(m matcher.Result, lang string, mixed bool) string {
	if best, ok := m.Best(); mixed && ok && best.ISOCode == lang {
		return m.Hybrid
	}
	for _, l := range m.Languages {
		if l.ISOCode == lang {
			return l.Hybrid
		}
	}
	return ""
}

// signals lists every hypothesis, strongest first, ties by language then source
func signals(in Input) []Signal {
	var out []Signal
	for i, g := range in.Guesses {
		if i == 3 {
			break
		}
		out = append(out, Signal{Language: g.Language, Script: g.Script, Confidence: round4(g.Confidence), Source: SourceOracle})
	}
	if best, ok := in.Match.Best(); ok {
		out = append(out, Signal{Language: best.ISOCode, Script: best.Script, Confidence: best.MatchRatio, Source: SourcePattern})
	}
	if r := in.Match.EnglishRatio(); r > 0 {
		out = append(out, Signal{Language: English, Script: script.Latin, Confidence: r, Source: SourcePattern})
	}
	if dom, ok := in.Composition.DominantIndic(); ok {
		lang := ""
		for _, l := range in.Match.Languages {
			if l.Script == dom && l.Hits > 0 {
				lang = l.ISOCode
				break
			}
		}
		if lang == "" {
			lang, _ = oracle.LanguageForScript(dom)
		}
		if lang != "" {
			out = append(out, Signal{Language: lang, Script: dom, Confidence: round4(in.Composition.Indic[dom] / 100), Source: SourceScript})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		return a.Source < b.Source
	})
	return out
}

func maxSignal(s []Signal) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0].Confidence
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
