// Package module wires the daily schedule into the API via modkit
package module

import (
	"context"
	"net/http"
	"time"

	"reviewharvest/internal/modkit"
	"reviewharvest/internal/modkit/httpkit"
	"reviewharvest/internal/platform/net/middleware"
	str "reviewharvest/internal/platform/strings"
	crawls "reviewharvest/internal/services/api/crawls/domain"

	schedhttp "reviewharvest/internal/services/api/schedule/http"
	"reviewharvest/internal/services/api/schedule/service"
)

// CrawlPorts is what this module needs from the crawls module
type CrawlPorts struct {
	Crawls crawls.ServicePort
}

// Module implements the schedule module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	opts   Options

	register func(httpkit.Router)

	svc *service.Service
}

// New constructs the schedule module; it panics on a bad cron spec like other startup misconfig
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("schedule"), modkit.WithPrefix("/schedule")}, opts...)...)

	in, ok := b.Ports.(CrawlPorts)
	if !ok || in.Crawls == nil {
		panic("schedule module requires modkit.WithPorts(CrawlPorts{Crawls: ...})")
	}

	o := FromConfig(deps.Cfg)
	svc, err := service.New(in.Crawls, o.Service, deps.Metrics)
	if err != nil {
		panic(err)
	}

	// an unset token leaves run locked: BearerToken rejects everything when Token is empty
	auth := middleware.BearerToken{Token: o.Token, Caller: "scheduler"}

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		opts:   o,
		svc:    svc,
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		schedhttp.Register(r, m.svc, auth)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "schedule") }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns nil, nothing consumes the schedule
func (m *Module) Ports() any { return nil }

// Start begins the cron ticker when enabled
func (m *Module) Start() {
	if m.opts.Enabled {
		m.svc.Start()
	}
}

// Stop halts the ticker
func (m *Module) Stop(ctx context.Context) error { return m.svc.Stop(ctx) }

// NextRun is the next scheduled run, zero while stopped or disabled
func (m *Module) NextRun() time.Time { return m.svc.Next() }
