// Package modkit provides module wiring and core deps
package modkit

import (
	"reviewharvest/internal/platform/config"
	"reviewharvest/internal/platform/logger"
	"reviewharvest/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     *logger.Logger
	Cfg     config.Conf
	Metrics *metrics.Metrics
}

// Logger returns Log or a component logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}
