package module

import (
	"time"

	"reviewharvest/internal/adapters/ingest/jd"
	"reviewharvest/internal/platform/config"
)

// Options holds configuration for the harvest pipeline and its jd client
type Options struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	JD       jd.Options
}

// FromConfig reads CORE_HARVEST_ and CORE_JD_ settings
func FromConfig(cfg config.Conf) Options {
	h := cfg.Prefix("CORE_HARVEST_")
	return Options{
		MinDelay: h.MayDuration("MIN_DELAY", time.Second),
		MaxDelay: h.MayDuration("MAX_DELAY", 3*time.Second),
		JD:       jd.OptionsFromConfig(cfg.Prefix("CORE_JD_")),
	}
}
