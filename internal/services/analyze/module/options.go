package module

import (
	"time"

	"codemix/internal/core/oracle"
	"codemix/internal/platform/config"
	"codemix/internal/services/analyze/repo"
	"codemix/internal/services/analyze/service"
)

// Options holds configuration settings for the analyze module
type Options struct {
	TuningFile    string
	DictionaryDir string

	OracleKind    string
	OracleTimeout time.Duration

	Events      bool
	EventsTable string
	EventBuffer int
	EventBatch  int
	EventFlush  time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_ANALYZE_")
	of := cfg.Prefix("CORE_ORACLE_")
	d := service.DefaultConfig()
	return Options{
		TuningFile:    af.MayString("TUNING_FILE", ""),
		DictionaryDir: af.MayString("DICTIONARY_DIR", ""),
		OracleKind:    of.MayEnum("KIND", oracle.KindWhatlang, oracle.Kinds()...),
		OracleTimeout: of.MayDuration("TIMEOUT", d.OracleTimeout),
		Events:        af.MayBool("EVENTS", true),
		EventsTable:   af.MayString("EVENTS_TABLE", repo.DefaultTable),
		EventBuffer:   af.MayInt("EVENT_BUFFER", d.EventBuffer),
		EventBatch:    af.MayInt("EVENT_BATCH", d.EventBatch),
		EventFlush:    af.MayDuration("EVENT_FLUSH", d.EventFlush),
	}
}

// LoadTuning reads TuningFile, or returns the defaults when unset
func (o Options) LoadTuning() (service.Tuning, error) {
	if o.TuningFile == "" {
		return service.DefaultTuning(), nil
	}
	return service.LoadTuning(o.TuningFile)
}
