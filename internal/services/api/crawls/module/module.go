// Package module wires crawl tasks into the API via modkit
package module

import (
	"net/http"

	"reviewharvest/internal/modkit"
	"reviewharvest/internal/modkit/httpkit"
	str "reviewharvest/internal/platform/strings"
	"reviewharvest/internal/services/api/crawls/domain"
	harvest "reviewharvest/internal/services/harvest/domain"

	crawlshttp "reviewharvest/internal/services/api/crawls/http"
	"reviewharvest/internal/services/api/crawls/service"
)

// Ports exposes the crawl service for cross module lookups
type Ports struct {
	Service domain.ServicePort
}

// RunnerPorts is what this module needs from the harvest module
type RunnerPorts struct {
	Runner harvest.RunnerPort
}

// Module implements the crawls module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports

	register func(httpkit.Router)

	svc *service.Service
}

// New constructs the crawls module; the harvest runner arrives through modkit.WithPorts(RunnerPorts{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("crawls"), modkit.WithPrefix("/crawls")}, opts...)...)

	in, ok := b.Ports.(RunnerPorts)
	if !ok || in.Runner == nil {
		panic("crawls module requires modkit.WithPorts(RunnerPorts{Runner: ...})")
	}

	svc := service.New(in.Runner, FromConfig(deps.Cfg), deps.Metrics)
	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		crawlshttp.Register(r, m.svc)
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
func (m *Module) Name() string { return str.MustString(m.name, "crawls") }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Service returns the concrete service for lifecycle hooks such as Shutdown
func (m *Module) Service() *service.Service { return m.svc }
