package fusion

import (
	"codemix/internal/core/script"
)

// Detection methods, stable on the wire and in persisted caches
const (
	MethodOracleHigh    = "oracle_high_confidence"
	MethodCodeMixed     = "ensemble_code_mixed"
	MethodWeighted      = "ensemble_weighted"
	MethodLowConfidence = "low_confidence"
	MethodHeuristic     = "heuristic_fallback"
	MethodUserOverride  = "user_override"
	MethodInvalidInput  = "invalid_input"
)

// Undetermined is the language reported when no signal is trustworthy
const Undetermined = "undetermined"

// Source names where a signal came from
type Source string

const (
	SourceOracle  Source = "oracle"
	SourcePattern Source = "pattern"
	SourceScript  Source = "script"
)

// Signal is one language hypothesis from one detection method
type Signal struct {
	Language   string      `json:"language" msgpack:"language"`
	Script     script.Code `json:"script,omitempty" msgpack:"script,omitempty"`
	Confidence float64     `json:"confidence" msgpack:"confidence"`
	Source     Source      `json:"source" msgpack:"source"`
}

// Decision is the final verdict for one text. It carries no per call data so
// equal inputs produce equal decisions.
type Decision struct {
	Language        string             `json:"language" msgpack:"language"`
	Languages       []string           `json:"languages,omitempty" msgpack:"languages,omitempty"`
	Script          script.Code        `json:"script" msgpack:"script"`
	Confidence      float64            `json:"confidence" msgpack:"confidence"`
	Method          string             `json:"method" msgpack:"method"`
	IsCodeMixed     bool               `json:"is_code_mixed" msgpack:"is_code_mixed"`
	CodeMixingScore float64            `json:"code_mixing_score" msgpack:"code_mixing_score"`
	NeedsConversion bool               `json:"needs_conversion" msgpack:"needs_conversion"`
	Converted       string             `json:"converted,omitempty" msgpack:"converted,omitempty"`
	Composition     script.Composition `json:"composition" msgpack:"composition"`
	Signals         []Signal           `json:"signals,omitempty" msgpack:"signals,omitempty"`
}

// Determined reports whether a language was chosen
func (d Decision) Determined() bool { return d.Language != "" && d.Language != Undetermined }

// Clone deep copies slices and maps so cached decisions stay immutable
func (d Decision) Clone() Decision {
	c := d
	c.Languages = append([]string(nil), d.Languages...)
	c.Signals = append([]Signal(nil), d.Signals...)
	if d.Composition.Indic != nil {
		c.Composition.Indic = make(map[script.Code]float64, len(d.Composition.Indic))
		for k, v := range d.Composition.Indic {
			c.Composition.Indic[k] = v
		}
	}
	return c
}
