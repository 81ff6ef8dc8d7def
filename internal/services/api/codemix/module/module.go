// Package module wires the codemix engine into the API using modkit
package module

import (
	modkit "codemix/internal/modkit"
	"codemix/internal/modkit/httpkit"
	adomain "codemix/internal/services/analyze/domain"
	cmhttp "codemix/internal/services/api/codemix/http"
)

// Ports are the engine ports this module serves, passed with modkit.WithPorts
type Ports struct {
	Analyzer     adomain.AnalyzerPort
	Feedback     adomain.FeedbackPort
	Stats        adomain.StatsPort
	Dictionaries adomain.DictionaryPort
}

// Options tune the transport
type Options struct {
	DictionaryDir string
	BatchJobs     int

	// AdminToken protects write routes with a shared bearer token when set
	AdminToken string
}

// Module implements the codemix API module
type Module struct {
	modkit.Routes
	ports Ports
}

// New constructs the codemix API module
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("codemix"), modkit.WithPrefix("/codemix")}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Analyzer == nil || ports.Feedback == nil || ports.Stats == nil || ports.Dictionaries == nil {
		panic("codemix api module: expected WithPorts(codemix/module.Ports) with every port set")
	}

	var auth httpkit.AuthPort
	if o.AdminToken != "" {
		auth = httpkit.StaticToken(o.AdminToken, "admin")
	}

	return &Module{
		ports: ports,
		Routes: b.Routes(func(r httpkit.Router) {
			cmhttp.Register(r, cmhttp.Deps{
				Auth:          auth,
				Analyzer:      ports.Analyzer,
				Feedback:      ports.Feedback,
				Stats:         ports.Stats,
				Dictionaries:  ports.Dictionaries,
				DictionaryDir: o.DictionaryDir,
				BatchJobs:     o.BatchJobs,
			})
		}),
	}
}

// Ports returns the engine ports the module serves
func (m *Module) Ports() any { return m.ports }
