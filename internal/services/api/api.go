// Package api provides the HTTP API for the application
package api

import (
	"context"
	"errors"

	"reviewharvest/internal/platform/config"
	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/platform/metrics"
	phttp "reviewharvest/internal/platform/net/http"

	"reviewharvest/internal/modkit"
	"reviewharvest/internal/modkit/httpkit"
	"reviewharvest/internal/modkit/module"
	"reviewharvest/internal/modkit/swaggerkit"

	crawlsmod "reviewharvest/internal/services/api/crawls/module"
	metamod "reviewharvest/internal/services/api/meta/module"
	schedmod "reviewharvest/internal/services/api/schedule/module"
	harvestmod "reviewharvest/internal/services/harvest/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
}

// App holds the long lived parts of the API that need starting and stopping
type App struct {
	crawls   *crawlsmod.Module
	schedule *schedmod.Module
}

// Mount mounts the API service onto the given router and returns the app lifecycle handle
func Mount(r phttp.Router, opt Options) *App {
	if opt.Metrics == nil {
		opt.Metrics = metrics.New()
	}
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}

	// harvest owns the runner; crawls consumes it, schedule consumes crawls
	harvest := harvestmod.New(deps)
	crawls := crawlsmod.New(deps, modkit.WithPorts(crawlsmod.RunnerPorts{
		Runner: harvest.Runner(),
	}))
	cs := module.MustPortsOf[crawlsmod.Ports](crawls).Service
	sched := schedmod.New(deps, modkit.WithPorts(schedmod.CrawlPorts{Crawls: cs}))
	app := &App{crawls: crawls.(*crawlsmod.Module), schedule: sched.(*schedmod.Module)}

	meta := metamod.New(deps, modkit.WithPorts(metamod.SchedulePorts{NextRun: app.schedule.NextRun}))

	mods := []module.Module{
		meta,
		harvest,
		crawls,
		sched,
	}

	r.Handle("/metrics", opt.Metrics.Handler())

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.Config.Prefix("CORE_API_").MayCSV("CORS_ORIGINS", nil),
		Observe:     opt.Metrics.ObserveHTTP,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return app
}

// Start begins the daily schedule when it is enabled
func (a *App) Start() { a.schedule.Start() }

// Shutdown stops the schedule first so no new task starts, then cancels and drains running tasks
func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(
		a.schedule.Stop(ctx),
		a.crawls.Service().Shutdown(ctx),
	)
}
