// Package module provides the harvest module implementation
package module

import (
	"reviewharvest/internal/adapters/ingest/jd"
	"reviewharvest/internal/modkit"
	phttp "reviewharvest/internal/platform/net/http"
	"reviewharvest/internal/services/harvest/domain"
	"reviewharvest/internal/services/harvest/report"
	"reviewharvest/internal/services/harvest/service"
)

// Ports defines the harvest module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the harvest module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New wires a jd client factory, the reporter and the service from deps.Cfg
// It does not mount any routes
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	jdOpts := opts.JD

	svc := service.New(
		func() domain.PageSource { return jd.NewClient(jdOpts) },
		report.New(deps.Metrics),
		service.Config{MinDelay: opts.MinDelay, MaxDelay: opts.MaxDelay},
	)
	return &Module{deps: deps, opts: opts, ports: Ports{Runner: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return "harvest" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Runner returns the typed runner port
func (m *Module) Runner() domain.RunnerPort { return m.ports.Runner }

// MountRoutes is a no-op as harvest has no routes
func (m *Module) MountRoutes(_ phttp.Router) {}
