package module

import (
	"codemix/internal/platform/config"
	"codemix/internal/services/learning/repo"
	"codemix/internal/services/learning/service"
)

// Options holds configuration settings for the learning module
type Options struct {
	Backend string
	Path    string
	Name    string
	Cache   service.Config
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	lf := cfg.Prefix("CORE_LEARNING_")
	d := service.DefaultConfig()
	return Options{
		Backend: lf.MayEnum("BACKEND", repo.BackendFile,
			repo.BackendFile, repo.BackendSQLite, repo.BackendPG, repo.BackendMemory),
		Path: lf.MayString("PATH", "data/codemix-cache.json"),
		Name: lf.MayString("NAME", "default"),
		Cache: service.Config{
			PromoteUses:       lf.MayInt("PROMOTE_USES", d.PromoteUses),
			PromoteConfidence: lf.MayFloat64("PROMOTE_CONFIDENCE", d.PromoteConfidence),
			FailureFloor:      lf.MayFloat64("FAILURE_FLOOR", d.FailureFloor),
			MaxFailures:       lf.MayInt("MAX_FAILURES", d.MaxFailures),
			MaxPatterns:       lf.MayInt("MAX_PATTERNS", d.MaxPatterns),
			TrimTo:            lf.MayInt("TRIM_TO", d.TrimTo),
			AutosaveEvery:     lf.MayInt("AUTOSAVE_EVERY", d.AutosaveEvery),
			ExampleRunes:      d.ExampleRunes,
		},
	}
}
