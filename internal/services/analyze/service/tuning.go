package service

import (
	"codemix/internal/core/codemix"
	"codemix/internal/core/fusion"
	"codemix/internal/core/script"
	perr "codemix/internal/platform/errors"
	"codemix/internal/platform/logger"
	lservice "codemix/internal/services/learning/service"

	"github.com/BurntSushi/toml"
)

const opTuning = "tuning.load"

// Tuning is the file backed knob set of the engine
type Tuning struct {
	CandidateFloor float64           `toml:"candidate_floor"`
	Codemix        CodemixTuning     `toml:"codemix"`
	Fusion         fusion.Thresholds `toml:"fusion"`
	Learning       lservice.Config   `toml:"learning"`

	// HasLearning is set when the file carried a [learning] table
	HasLearning bool `toml:"-"`
}

// CodemixTuning configures the aggregator
type CodemixTuning struct {
	Weights codemix.Weights `toml:"weights"`
	Curve   []codemix.Step  `toml:"curve"`
}

// DefaultTuning mirrors the compiled in defaults
func DefaultTuning() Tuning {
	return Tuning{
		CandidateFloor: script.DefaultCandidateFloor,
		Codemix: CodemixTuning{
			Weights: codemix.DefaultWeights(),
			Curve:   codemix.DefaultCurve(),
		},
		Fusion:   fusion.DefaultThresholds(),
		Learning: lservice.DefaultConfig(),
	}
}

// Validate checks every section
func (t Tuning) Validate() error {
	if t.CandidateFloor < 0 || t.CandidateFloor > 100 {
		return tuningErr(perr.Newf(perr.ErrorCodeInvalidArgument, "candidate_floor %v outside [0,100]", t.CandidateFloor), "candidate_floor")
	}
	if err := t.Codemix.Weights.Validate(); err != nil {
		return tuningErr(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "codemix weights"), "codemix.weights")
	}
	if _, err := codemix.NewStepCurve(t.Codemix.Curve...); err != nil {
		return tuningErr(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "codemix curve"), "codemix.curve")
	}
	if err := t.Fusion.Validate(); err != nil {
		return tuningErr(perr.Wrap(err, perr.ErrorCodeInvalidArgument, "fusion thresholds"), "fusion")
	}
	return nil
}

// LoadTuning overlays the TOML file at path on DefaultTuning. Keys the file
// omits keep their defaults; unknown keys are logged.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	t.Codemix.Curve = nil // a file curve replaces the default, never merges into it
	meta, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, tuningErr(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse %q", path), "path")
	}
	if len(t.Codemix.Curve) == 0 {
		t.Codemix.Curve = codemix.DefaultCurve()
	}
	t.HasLearning = meta.IsDefined("learning")
	if u := meta.Undecoded(); len(u) > 0 {
		keys := make([]string, 0, len(u))
		for _, k := range u {
			keys = append(keys, k.String())
		}
		logger.Named("analyze").Warn().Str("path", path).Strs("keys", keys).Msg("unknown tuning keys ignored")
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func tuningErr(err error, field string) error {
	return perr.WithOp(perr.WithField(err, field), opTuning)
}

// LearningConfig is the [learning] table, nil when the file had none
func (t Tuning) LearningConfig() *lservice.Config {
	if !t.HasLearning {
		return nil
	}
	c := t.Learning
	return &c
}
