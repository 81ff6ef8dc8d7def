// @title         Codemix API
// @version       0.1.0
// @description   Language identification for code mixed and romanized Indic text

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"codemix/internal/bootstrap"
	"codemix/internal/platform/config"
	"codemix/internal/platform/logger"
	phttp "codemix/internal/platform/net/http"

	"codemix/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// stores, learning cache and engine (SERVICE_*, CORE_LEARNING_*, CORE_ANALYZE_*, CORE_ORACLE_*)
	eng, err := bootstrap.Open(ctx, root, bootstrap.Overrides{})
	if err != nil {
		l.Panic().Err(err).Msg("engine bootstrap failed")
	}

	// http server (reads CORE_API_PORT and the *_TIMEOUT keys)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          eng.Store,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			Analyze:        eng.Analyze,
			BatchJobs:      apiCfg.MayInt("BATCH_JOBS", 0),
			AdminToken:     apiCfg.MayString("ADMIN_TOKEN", ""),
		},
	)

	// run until signalled; the server drains in-flight requests itself
	runErr := srv.Run(ctx)

	// drain events and persist the learning cache before exit
	cctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := eng.Close(cctx); err != nil {
		l.Error().Err(err).Msg("engine close")
	}
	if runErr != nil {
		l.Panic().Err(runErr).Msg("http server stopped")
	}
}
