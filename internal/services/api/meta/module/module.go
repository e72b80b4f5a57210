// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"reviewharvest/internal/core/version"
	modkit "reviewharvest/internal/modkit"
	"reviewharvest/internal/modkit/httpkit"
	"reviewharvest/internal/modkit/module"
	str "reviewharvest/internal/platform/strings"

	metahttp "reviewharvest/internal/services/api/meta/http"
)

// SchedulePorts optionally lets meta report the next scheduled crawl
type SchedulePorts struct {
	NextRun func() time.Time
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	sched, _ := b.Ports.(SchedulePorts)
	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			NextRun:     sched.NextRun,
			Modules:     module.Names,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
