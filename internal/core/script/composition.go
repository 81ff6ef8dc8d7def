package script

import (
	"math"
	"sort"
)

// Composition is the script makeup of one text
type Composition struct {
	Indic          map[Code]float64 `json:"indic,omitempty" msgpack:"indic,omitempty"`
	IndicPct       float64          `json:"indic_pct" msgpack:"indic_pct"`
	LatinPct       float64          `json:"latin_pct" msgpack:"latin_pct"`
	OtherPct       float64          `json:"other_pct" msgpack:"other_pct"`
	Scriptable     int              `json:"scriptable" msgpack:"scriptable"`
	Digits         int              `json:"digits" msgpack:"digits"`
	Punct          int              `json:"punct" msgpack:"punct"`
	Others         int              `json:"others" msgpack:"others"`
	DominantScript Code             `json:"dominant_script" msgpack:"dominant_script"`
	MixCandidate   bool             `json:"is_code_mixed_candidate" msgpack:"is_code_mixed_candidate"`
}

// DominantIndic returns the Indic script with the highest share, ties by code
func (c Composition) DominantIndic() (Code, bool) {
	var best Code
	bestPct := -1.0
	for _, code := range sortedCodes(c.Indic) {
		if p := c.Indic[code]; p > bestPct {
			best, bestPct = code, p
		}
	}
	return best, bestPct > 0
}

// Analyzer computes compositions, safe for concurrent use
type Analyzer struct {
	floor float64
}

// Option tunes an Analyzer
type Option func(*Analyzer)

// WithCandidateFloor sets the percent both Indic and Latin must exceed
func WithCandidateFloor(pct float64) Option {
	return func(a *Analyzer) {
		if pct >= 0 && pct <= 100 {
			a.floor = pct
		}
	}
}

// NewAnalyzer constructs an Analyzer
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{floor: DefaultCandidateFloor}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze returns the composition of s. Text without scriptable runes gets a
// zeroed composition with DominantScript Undetermined.
func (a *Analyzer) Analyze(s string) Composition {
	counts := map[Code]int{}
	var comp Composition
	latin, other := 0, 0

	for _, r := range s {
		cl := Classify(r)
		switch cl.Kind {
		case KindIndic:
			counts[cl.Script]++
		case KindLatin:
			latin++
		case KindDigit:
			comp.Digits++
		case KindPunct:
			comp.Punct++
		default:
			if cl.Script == Other {
				other++
			} else {
				comp.Others++
			}
		}
	}

	indic := 0
	for _, n := range counts {
		indic += n
	}
	comp.Scriptable = indic + latin + other
	if comp.Scriptable == 0 {
		comp.DominantScript = Undetermined
		return comp
	}

	total := float64(comp.Scriptable)
	comp.Indic = make(map[Code]float64, len(counts))
	for code, n := range counts {
		comp.Indic[code] = pct(n, total)
	}
	comp.IndicPct = pct(indic, total)
	comp.LatinPct = pct(latin, total)
	comp.OtherPct = pct(other, total)
	comp.DominantScript = dominant(comp)
	comp.MixCandidate = comp.IndicPct > a.floor && comp.LatinPct > a.floor
	return comp
}

// dominant picks the max share; an Indic script wins any tie
func dominant(c Composition) Code {
	best := Undetermined
	bestPct := 0.0
	if code, ok := c.DominantIndic(); ok {
		best, bestPct = code, c.Indic[code]
	}
	if c.LatinPct > bestPct {
		best, bestPct = Latin, c.LatinPct
	}
	if c.OtherPct > bestPct {
		best = Other
	}
	return best
}

// pct rounds to 4 decimals so persisted compositions stay byte stable
func pct(n int, total float64) float64 {
	return math.Round(float64(n)/total*100*1e4) / 1e4
}

func sortedCodes(m map[Code]float64) []Code {
	out := make([]Code, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
