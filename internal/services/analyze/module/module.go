// Package module implements the analyze module
package module

import (
	"context"
	"errors"

	"codemix/internal/core/dictionary"
	"codemix/internal/core/oracle"
	"codemix/internal/modkit"
	"codemix/internal/platform/logger"
	"codemix/internal/services/analyze/domain"
	"codemix/internal/services/analyze/repo"
	"codemix/internal/services/analyze/service"
)

// Ports exposed by the analyze module
type Ports struct {
	Analyzer     domain.AnalyzerPort
	Feedback     domain.FeedbackPort
	Stats        domain.StatsPort
	Dictionaries domain.DictionaryPort
}

// Module implements modkit.Module
type Module struct {
	modkit.Routes
	deps  modkit.Deps
	opts  Options
	sink  *repo.CH
	svc   *service.Service
	ports Ports
}

// New constructs the analyze module. tuning may be nil, then the module
// reads Options.TuningFile itself.
func New(deps modkit.Deps, overrides Options, tuning *service.Tuning, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analyze"),
	}, opts...)...)

	dm, ok := b.Ports.(DepsModules)
	if !ok || dm.Learning == nil {
		panic("analyze module: expected WithLearning(learning module)")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.TuningFile != "" {
		cfg.TuningFile = overrides.TuningFile
	}
	if overrides.DictionaryDir != "" {
		cfg.DictionaryDir = overrides.DictionaryDir
	}
	if overrides.OracleKind != "" {
		cfg.OracleKind = overrides.OracleKind
	}
	if overrides.OracleTimeout != 0 {
		cfg.OracleTimeout = overrides.OracleTimeout
	}

	var tun service.Tuning
	if tuning != nil {
		tun = *tuning
	} else {
		t, err := cfg.LoadTuning()
		if err != nil {
			return nil, err
		}
		tun = t
	}

	set, err := dictionary.Defaults()
	if err != nil {
		return nil, err
	}
	reg := dictionary.NewRegistry(set)
	if cfg.DictionaryDir != "" {
		if _, err := reg.Reload(cfg.DictionaryDir); err != nil {
			return nil, err
		}
	}

	orc, err := oracle.Build(cfg.OracleKind)
	if err != nil {
		return nil, err
	}

	m := &Module{Routes: b.Routes(nil), deps: deps, opts: cfg}
	d := service.Deps{Registry: reg, Oracle: orc, Learning: learningOf(dm.Learning)}
	if cfg.Events && deps.CH != nil {
		m.sink = repo.NewCH(deps.CH, cfg.EventsTable)
		d.Sink = m.sink
	}

	sc := service.DefaultConfig()
	sc.OracleName = cfg.OracleKind
	sc.OracleTimeout = cfg.OracleTimeout
	sc.Tuning = tun
	sc.EventBuffer, sc.EventBatch, sc.EventFlush = cfg.EventBuffer, cfg.EventBatch, cfg.EventFlush

	svc, err := service.New(d, sc)
	if err != nil {
		return nil, err
	}
	m.svc = svc
	m.ports = Ports{
		Analyzer:     svc,
		Feedback:     svc,
		Stats:        svc,
		Dictionaries: svc,
	}
	return m, nil
}

// Start creates the event table when events go to ClickHouse. A failure
// disables nothing; inserts will log their own errors.
func (m *Module) Start(ctx context.Context) error {
	if m.sink == nil {
		return nil
	}
	if err := m.sink.Migrate(ctx); err != nil {
		logger.Named("analyze").Warn().Err(err).Str("table", m.sink.Table()).Msg("event table migrate failed")
		return err
	}
	return nil
}

// Close drains events and flushes the learning cache
func (m *Module) Close(ctx context.Context) error {
	if m.svc == nil {
		return errors.New("analyze module: not constructed")
	}
	return m.svc.Close(ctx)
}

// Service exposes the engine for binaries
func (m *Module) Service() *service.Service { return m.svc }

// Options returns the effective settings
func (m *Module) Options() Options { return m.opts }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
