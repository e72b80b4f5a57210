// @title         ReviewHarvest API
// @version       0.1.0
// @description   Starts and tracks JD review crawls and runs the daily schedule
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewharvest/internal/core/version"
	"reviewharvest/internal/platform/config"
	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/platform/metrics"
	phttp "reviewharvest/internal/platform/net/http"

	"reviewharvest/internal/services/api"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// service-scoped config for HTTP etc (CORE_API_*); modules read their own prefixes from root
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()
	l.Info().Interface("build", version.Info()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	app := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			Metrics:        metrics.New(),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	app.Start()

	runErr := srv.Run(ctx)

	// the server is down, stop the schedule and drain running tasks
	shutCtx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second))
	defer cancel()
	if err := app.Shutdown(shutCtx); err != nil {
		l.Error().Err(err).Msg("shutdown incomplete")
	}
	if runErr != nil {
		l.Panic().Err(runErr).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
