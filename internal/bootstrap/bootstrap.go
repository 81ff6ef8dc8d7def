// Package bootstrap opens the stores and modules a codemix binary runs on
package bootstrap

import (
	"context"
	"errors"
	"time"

	"codemix/internal/modkit"
	"codemix/internal/platform/config"
	"codemix/internal/platform/logger"
	"codemix/internal/platform/store"

	analyzemod "codemix/internal/services/analyze/module"
	"codemix/internal/services/analyze/service"
	learnmod "codemix/internal/services/learning/module"
	lrepo "codemix/internal/services/learning/repo"
)

// Overrides are flag level settings that win over the environment
type Overrides struct {
	Analyze analyzemod.Options

	// NoEvents keeps short lived tools from opening ClickHouse
	NoEvents bool
}

// Engine is a started analyze module over its learning cache and stores
type Engine struct {
	Store    *store.Store
	Learning *learnmod.Module
	Analyze  *analyzemod.Module
	Deps     modkit.Deps
}

// StoreConfig derives which backends to open. Postgres opens when the
// learning cache lives there or a DBURL is set, ClickHouse when events
// are on and a DBURL is set, SQLite when the learning cache lives there.
func StoreConfig(root config.Conf, lo learnmod.Options, events bool) store.Config {
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	liteCfg := root.Prefix("SERVICE_SQLITE_")

	cfg := store.Config{AppName: "codemix"}

	pgURL := pgCfg.MayString("DBURL", "")
	if lo.Backend == lrepo.BackendPG {
		pgURL = pgCfg.MustString("DBURL")
	}
	if pgURL != "" {
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	}

	if chURL := chCfg.MayString("DBURL", ""); events && chURL != "" {
		cfg.CH = store.CHConfig{
			Enabled:     true,
			URL:         chURL,
			DialTimeout: chCfg.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		}
	}

	if lo.Backend == lrepo.BackendSQLite {
		cfg.Lite = store.LiteConfig{
			Enabled:     true,
			Path:        liteCfg.MayString("PATH", "data/codemix.db"),
			BusyTimeout: liteCfg.MayDuration("BUSY_TIMEOUT", 5*time.Second),
		}
	}
	return cfg
}

// Open loads tuning, opens stores, builds and starts the learning and
// analyze modules. Close releases everything in reverse order.
func Open(ctx context.Context, root config.Conf, o Overrides) (*Engine, error) {
	log := logger.Named("bootstrap")

	ao := analyzemod.FromConfig(root)
	if o.Analyze.TuningFile != "" {
		ao.TuningFile = o.Analyze.TuningFile
	}
	tuning, err := ao.LoadTuning()
	if err != nil {
		return nil, err
	}

	lo := learnmod.FromConfig(root)
	st, err := store.Open(ctx, StoreConfig(root, lo, ao.Events && !o.NoEvents), store.WithLogger(*logger.Get()))
	if err != nil {
		return nil, err
	}

	e := &Engine{Store: st}
	e.Deps = modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Lite: st.Lite}

	if e.Learning, err = learnmod.New(e.Deps, tuning.LearningConfig()); err != nil {
		return nil, e.abort(ctx, err)
	}
	if err := e.Learning.Start(ctx); err != nil {
		return nil, e.abort(ctx, err)
	}

	if e.Analyze, err = analyzemod.New(e.Deps, o.Analyze, &tuning, analyzemod.WithLearning(e.Learning)); err != nil {
		return nil, e.abort(ctx, err)
	}
	// a missing event table only costs analytics
	_ = e.Analyze.Start(ctx)

	log.Info().
		Str("learning", lo.Backend).
		Str("oracle", e.Analyze.Options().OracleKind).
		Bool("pg", st.PG != nil).
		Bool("ch", st.CH != nil).
		Bool("sqlite", st.Lite != nil).
		Msg("engine ready")
	return e, nil
}

// Service is the running engine
func (e *Engine) Service() *service.Service { return e.Analyze.Service() }

// Close drains events, saves the cache and closes the stores
func (e *Engine) Close(ctx context.Context) error {
	var errs []error
	if e.Analyze != nil {
		errs = append(errs, e.Analyze.Close(ctx))
	}
	if e.Store != nil {
		errs = append(errs, e.Store.Close(ctx))
	}
	return errors.Join(errs...)
}

func (e *Engine) abort(ctx context.Context, err error) error {
	return errors.Join(err, e.Store.Close(ctx))
}
