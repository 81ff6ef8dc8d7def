package codemix

import (
	"fmt"
	"sort"
)

// Curve maps a text length in runes to the score needed to call it mixed
type Curve interface {
	Threshold(runeLen int) float64
}

// Step is one segment of a StepCurve. MaxRunes <= 0 marks the open ended
// last segment.
type Step struct {
	MaxRunes  int     `toml:"max_runes" json:"max_runes"`
	Threshold float64 `toml:"threshold" json:"threshold"`
}

// StepCurve is a piecewise constant curve, stricter for short texts
type StepCurve []Step

// DefaultCurve is 0.50 up to 15 runes, 0.40 up to 30, then 0.30
func DefaultCurve() StepCurve {
	return StepCurve{
		{MaxRunes: 15, Threshold: 0.50},
		{MaxRunes: 30, Threshold: 0.40},
		{MaxRunes: 0, Threshold: 0.30},
	}
}

// NewStepCurve sorts and validates steps. Thresholds must lie in [0,1] and
// never increase with length; exactly one open ended step is required.
func NewStepCurve(steps ...Step) (StepCurve, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("codemix: step curve needs at least one step")
	}
	c := append(StepCurve(nil), steps...)
	sort.SliceStable(c, func(i, j int) bool {
		a, b := c[i].MaxRunes, c[j].MaxRunes
		if a <= 0 {
			return false
		}
		if b <= 0 {
			return true
		}
		return a < b
	})

	open := 0
	for i, s := range c {
		if s.Threshold < 0 || s.Threshold > 1 {
			return nil, fmt.Errorf("codemix: threshold %v out of [0,1]", s.Threshold)
		}
		if s.MaxRunes <= 0 {
			open++
		}
		if i > 0 {
			if s.MaxRunes > 0 && s.MaxRunes == c[i-1].MaxRunes {
				return nil, fmt.Errorf("codemix: duplicate step at %d runes", s.MaxRunes)
			}
			if s.Threshold > c[i-1].Threshold {
				return nil, fmt.Errorf("codemix: threshold rises from %v to %v; curve must be non-increasing", c[i-1].Threshold, s.Threshold)
			}
		}
	}
	if open != 1 {
		return nil, fmt.Errorf("codemix: need exactly one open ended step, got %d", open)
	}
	return c, nil
}

// Threshold implements Curve
func (c StepCurve) Threshold(runeLen int) float64 {
	for _, s := range c {
		if s.MaxRunes <= 0 || runeLen <= s.MaxRunes {
			return s.Threshold
		}
	}
	if len(c) == 0 {
		return DefaultCurve().Threshold(runeLen)
	}
	return c[len(c)-1].Threshold
}
