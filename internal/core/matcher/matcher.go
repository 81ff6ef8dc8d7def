// Package matcher scores romanized tokens against every loaded dictionary and
// builds per language hybrid conversions.
package matcher

import (
	"math"
	"sort"
	"strings"

	"codemix/internal/core/dictionary"
	"codemix/internal/core/normalize"
	"codemix/internal/core/script"
	"codemix/internal/core/translit"
)

// TokenMatch is the per token view the aggregator consumes
type TokenMatch struct {
	Text     string
	Fold     string
	Hits     []dictionary.Hit // non borrowed hits, ordered by ISO code
	Borrowed bool
	Native   script.Code // Indic script of a token already written natively
	English  bool
	Preserve bool // never converted: English, digits or acronym

	shared bool // English function word with dictionary hits, settled per text
}

// Indic reports whether the token is Indic evidence
func (t TokenMatch) Indic() bool { return t.Native != "" || len(t.Hits) > 0 }

// Language is the outcome for one dictionary
type Language struct {
	ISOCode    string      `json:"iso_code"`
	Language   string      `json:"language"`
	Script     script.Code `json:"script"`
	Hits       int         `json:"hits"`
	MatchRatio float64     `json:"match_ratio"`
	Hybrid     string      `json:"hybrid"`
}

// Result is the outcome of one Match
type Result struct {
	Tokens    []TokenMatch
	Languages []Language // most hits first, then ISO code
	Hybrid    string     // combined conversion across languages
	Version   string     // dictionary snapshot version

	NativeTokens  int
	EnglishTokens int
}

// Best is the language with the most hits, ties by ISO code. ok is false when
// nothing matched.
func (r Result) Best() (Language, bool) {
	if len(r.Languages) == 0 || r.Languages[0].Hits == 0 {
		return Language{}, false
	}
	return r.Languages[0], true
}

// Ratio returns the match ratio for iso, zero when absent
func (r Result) Ratio(iso string) float64 {
	for _, l := range r.Languages {
		if l.ISOCode == iso {
			return l.MatchRatio
		}
	}
	return 0
}

// NativeRatio is the share of tokens already in an Indic script
func (r Result) NativeRatio() float64 { return ratio(r.NativeTokens, len(r.Tokens)) }

// EnglishRatio is the share of tokens in the English vocabulary
func (r Result) EnglishRatio() float64 { return ratio(r.EnglishTokens, len(r.Tokens)) }

// Matcher reads the registry's current snapshot once per call
type Matcher struct {
	reg *dictionary.Registry
}

// New constructs a Matcher over reg
func New(reg *dictionary.Registry) *Matcher { return &Matcher{reg: reg} }

// Match runs s against the current dictionary snapshot
func (m *Matcher) Match(s normalize.Sample) Result {
	return MatchSet(m.reg.Current(), s)
}

// MatchSet runs s against a fixed snapshot
func MatchSet(set *dictionary.Set, s normalize.Sample) Result {
	res := Result{Version: set.Version(), Tokens: make([]TokenMatch, len(s.Tokens))}

	english := false
	for i, tk := range s.Tokens {
		res.Tokens[i] = classify(set, tk)
		english = english || (res.Tokens[i].English && !res.Tokens[i].shared)
	}

	hits := map[string]int{}
	for i, tk := range s.Tokens {
		tm := resolveShared(res.Tokens[i], tk, english)
		res.Tokens[i] = tm
		if tm.Native != "" {
			res.NativeTokens++
		}
		if tm.English {
			res.EnglishTokens++
		}
		for _, h := range tm.Hits {
			hits[h.ISOCode]++
		}
	}

	for _, code := range set.Codes() {
		d, _ := set.Get(code)
		res.Languages = append(res.Languages, Language{
			ISOCode:    code,
			Language:   d.Language,
			Script:     d.Script,
			Hits:       hits[code],
			MatchRatio: ratio(hits[code], len(s.Tokens)),
			Hybrid:     hybrid(s, func(i int) string { return convert(d, res.Tokens[i]) }),
		})
	}
	sort.SliceStable(res.Languages, func(i, j int) bool {
		a, b := res.Languages[i], res.Languages[j]
		if a.Hits != b.Hits {
			return a.Hits > b.Hits
		}
		return a.ISOCode < b.ISOCode
	})

	res.Hybrid = s.Text
	if best, ok := res.Best(); ok {
		bestDict, _ := set.Get(best.ISOCode)
		res.Hybrid = hybrid(s, func(i int) string {
			tm := res.Tokens[i]
			if len(tm.Hits) == 0 {
				return convert(bestDict, tm)
			}
			return tm.Hits[attribute(tm, hits)].Native
		})
	}
	return res
}

func classify(set *dictionary.Set, tk normalize.Token) TokenMatch {
	tm := TokenMatch{Text: tk.Text, Fold: tk.Fold}
	if code, ok := nativeScript(tk.Text); ok {
		tm.Native = code
		return tm
	}

	all := set.Lookup(tk.Fold)
	for _, h := range all {
		if h.Category == dictionary.CategoryBorrowed {
			continue
		}
		tm.Hits = append(tm.Hits, h)
	}
	tm.Borrowed = len(all) > 0 && len(tm.Hits) == 0

	switch {
	case dictionary.IsEnglishCore(tk.Fold):
		tm.English = true
		tm.shared = len(tm.Hits) > 0
	case len(tm.Hits) == 0:
		tm.English = set.English(tk.Fold)
	}
	tm.Preserve = tm.English || tk.HasDigit() || tk.IsAllCaps()
	return tm
}

// resolveShared settles a function word that is also a dictionary entry
// ("so", "to", "me"): English when the text has other English words, the
// dictionary hit otherwise
func resolveShared(tm TokenMatch, tk normalize.Token, english bool) TokenMatch {
	if !tm.shared {
		return tm
	}
	tm.shared = false
	if english {
		tm.Hits = nil
	} else {
		tm.English = false
	}
	tm.Preserve = tm.English || tk.HasDigit() || tk.IsAllCaps()
	return tm
}

// attribute picks which hit a multi language token takes: the language with
// the most hits elsewhere in the text, then the lowest ISO code
func attribute(tm TokenMatch, totals map[string]int) int {
	best := 0
	bestOther := -1
	for i, h := range tm.Hits {
		other := totals[h.ISOCode] - 1
		if other > bestOther {
			best, bestOther = i, other
		}
	}
	return best
}

// convert renders one token for a single language
func convert(d *dictionary.Dictionary, tm TokenMatch) string {
	if tm.Native != "" || tm.Preserve {
		return tm.Text
	}
	if e, ok := d.Lookup(tm.Fold); ok {
		return e.Native
	}
	if out, ok := translit.ToScript(tm.Fold, d.Script); ok {
		return out
	}
	return tm.Text
}

// hybrid rebuilds text with each token replaced, keeping separators as is
func hybrid(s normalize.Sample, render func(i int) string) string {
	var b strings.Builder
	b.Grow(len(s.Text) * 2)
	prev := 0
	for i, tk := range s.Tokens {
		b.WriteString(s.Text[prev:tk.Start])
		b.WriteString(render(i))
		prev = tk.End
	}
	b.WriteString(s.Text[prev:])
	return b.String()
}

func nativeScript(s string) (script.Code, bool) {
	for _, r := range s {
		if cl := script.Classify(r); cl.Kind == script.KindIndic {
			return cl.Script, true
		}
	}
	return "", false
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*1e4) / 1e4
}
