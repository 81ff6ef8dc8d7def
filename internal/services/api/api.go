// Package api provides the HTTP API for the application
package api

import (
	"codemix/internal/platform/config"
	"codemix/internal/platform/logger"
	phttp "codemix/internal/platform/net/http"
	"codemix/internal/platform/store"

	"codemix/internal/modkit"
	"codemix/internal/modkit/httpkit"
	"codemix/internal/modkit/module"
	"codemix/internal/modkit/swaggerkit"

	analyzemod "codemix/internal/services/analyze/module"
	codemixmod "codemix/internal/services/api/codemix/module"
	metamod "codemix/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Analyze is the engine module; its ports back the codemix routes
	Analyze module.Module
	// BatchJobs caps concurrency of one batch request, 0 means GOMAXPROCS
	BatchJobs int
	// AdminToken guards corrections and dictionary changes when set
	AdminToken string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG, deps.CH, deps.Lite = opt.Store.PG, opt.Store.CH, opt.Store.Lite
	}

	engine := module.MustPortsOf[analyzemod.Ports](opt.Analyze)

	dictDir := ""
	if am, ok := opt.Analyze.(*analyzemod.Module); ok {
		dictDir = am.Options().DictionaryDir
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(engine.Stats)),
		opt.Analyze,
		codemixmod.New(deps,
			codemixmod.Options{DictionaryDir: dictDir, BatchJobs: opt.BatchJobs, AdminToken: opt.AdminToken},
			modkit.WithPorts(codemixmod.Ports{
				Analyzer:     engine.Analyzer,
				Feedback:     engine.Feedback,
				Stats:        engine.Stats,
				Dictionaries: engine.Dictionaries,
			}),
		),
	}

	// docs and profiler sit outside the versioned stack
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			// each module mounts under its own Prefix()
			m.MountRoutes(api)
			if opt.Logger != nil {
				opt.Logger.Debug().Str("module", m.Name()).Msg("mounted")
			}
		}
	})
}
