// Package http serves liveness, readiness, build and engine information
package http

import (
	"context"
	"net/http"
	"time"

	"codemix/internal/core/version"
	"codemix/internal/modkit/httpkit"
	adomain "codemix/internal/services/analyze/domain"
)

// Pinger is any backend that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies. Nil backends were not configured.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Lite        any

	// Engine backs /engine, optional
	Engine adomain.StatsPort

	// ProbeTimeout bounds one readiness ping, 0 means 2s
	ProbeTimeout time.Duration
}

type handlers struct {
	Deps
	now func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ProbeTimeout <= 0 {
		d.ProbeTimeout = 2 * time.Second
	}
	h := &handlers{Deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/engine", h.engine)
}

// Health is the liveness payload
type Health struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"codemix-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// Probe is one backend readiness result
type Probe struct {
	Backend string `json:"backend" example:"sqlite"`
	State   string `json:"state"   example:"ok"` // ok fail off unknown
	Error   string `json:"error,omitempty"`
}

// Readiness aggregates the probes; State is ok, degraded or fail
type Readiness struct {
	State  string  `json:"state" example:"ok"`
	Probes []Probe `json:"probes"`
}

// Engine reports what the analyzer runs with
type Engine struct {
	Oracle            string            `json:"oracle"             example:"whatlang"`
	DictionaryVersion string            `json:"dictionary_version" example:"3f2a9c01"`
	Dictionaries      []string          `json:"dictionaries"       example:"hin,ben,tam"`
	Build             version.BuildInfo `json:"build"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} Health
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return Health{
		OK:      true,
		Service: h.ServiceName,
		Started: h.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(h.now().Sub(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness of the configured stores
// @Description Unconfigured stores report "off" and do not degrade readiness.
// @Tags Meta
// @Produce json
// @Success 200 {object} Readiness
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	out := Readiness{State: "ok"}
	for _, b := range []struct {
		name string
		v    any
	}{{"pg", h.PG}, {"ch", h.CH}, {"sqlite", h.Lite}} {
		p := h.probe(r.Context(), b.name, b.v)
		switch {
		case p.State == "fail":
			out.State = "fail"
		case p.State == "unknown" && out.State == "ok":
			out.State = "degraded"
		}
		out.Probes = append(out.Probes, p)
	}
	return out, nil
}

func (h *handlers) probe(ctx context.Context, name string, v any) Probe {
	if v == nil {
		return Probe{Backend: name, State: "off"}
	}
	p, ok := v.(Pinger)
	if !ok {
		return Probe{Backend: name, State: "unknown"}
	}
	ctx, cancel := context.WithTimeout(ctx, h.ProbeTimeout)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		return Probe{Backend: name, State: "fail", Error: err.Error()}
	}
	return Probe{Backend: name, State: "ok"}
}

// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// @Summary Oracle and dictionaries the engine runs with
// @Tags Meta
// @Produce json
// @Success 200 {object} Engine
// @Router /meta/engine [get]
func (h *handlers) engine(r *http.Request) (any, error) {
	out := Engine{Dictionaries: []string{}, Build: version.Info(h.ServiceName)}
	if h.Engine == nil {
		return out, nil
	}
	st := h.Engine.Statistics(r.Context())
	out.Oracle, out.DictionaryVersion = st.Oracle, st.DictionaryVersion
	if len(st.Dictionaries) > 0 {
		out.Dictionaries = st.Dictionaries
	}
	return out, nil
}
