// Package module mounts the meta endpoints: health, readiness, version and engine info
package module

import (
	"time"

	modkit "codemix/internal/modkit"
	"codemix/internal/modkit/httpkit"
	adomain "codemix/internal/services/analyze/domain"
	metahttp "codemix/internal/services/api/meta/http"
)

// Module implements modkit.Module
type Module struct {
	modkit.Routes
}

// New builds the meta module. WithPorts(analyze StatsPort) enables /meta/engine.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	engine, _ := b.Ports.(adomain.StatsPort)
	started := time.Now()

	return &Module{Routes: b.Routes(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "codemix-api",
			StartedAt:   started,
			PG:          deps.PG,
			CH:          deps.CH,
			Lite:        deps.Lite,
			Engine:      engine,
		})
	})}
}

// Ports implements modkit.Module; meta exposes none
func (m *Module) Ports() any { return nil }
