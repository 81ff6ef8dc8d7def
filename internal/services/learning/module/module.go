// Package module implements the learning service module
package module

import (
	"context"

	"codemix/internal/modkit"
	"codemix/internal/services/learning/domain"
	"codemix/internal/services/learning/repo"
	"codemix/internal/services/learning/service"
)

// Ports exposed by the learning module
type Ports struct {
	Cache       domain.CachePort
	Corrections domain.CorrectionPort
	Stats       domain.StatsPort
	Lifecycle   domain.LifecyclePort
}

// Module implements the learning service module
type Module struct {
	modkit.Routes
	deps  modkit.Deps
	opts  Options
	store repo.Storage
	svc   *service.Service
	ports Ports
}

// New constructs the learning module. Tuning overrides the env derived
// cache settings when non nil.
func New(deps modkit.Deps, tuning *service.Config) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	if tuning != nil {
		opts.Cache = *tuning
	}

	st, err := repo.Open(opts.Backend, opts.Path, opts.Name, repo.Seams{PG: deps.PG, Lite: deps.Lite})
	if err != nil {
		return nil, err
	}
	svc := service.New(st, opts.Cache)

	m := &Module{
		Routes: modkit.Build(modkit.WithName("learning")).Routes(nil),
		deps:   deps,
		opts:   opts,
		store:  st,
		svc:    svc,
	}
	m.ports = Ports{
		Cache:       svc,
		Corrections: svc,
		Stats:       svc,
		Lifecycle:   svc,
	}
	return m, nil
}

// Start prepares the backend and restores the persisted snapshot
func (m *Module) Start(ctx context.Context) error {
	if sq, ok := m.store.(*repo.SQL); ok {
		if err := sq.Migrate(ctx); err != nil {
			return err
		}
	}
	return m.svc.Load(ctx)
}

// Options returns the effective settings
func (m *Module) Options() Options { return m.opts }

// Service exposes the concrete cache for callers needing more than the ports
func (m *Module) Service() *service.Service { return m.svc }

// Ports returns the cache ports; the module itself mounts no routes
func (m *Module) Ports() any { return m.ports }
