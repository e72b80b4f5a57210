package module

import (
	"reviewharvest/internal/platform/config"
	"reviewharvest/internal/services/api/schedule/service"
)

// Options holds schedule settings read with the CORE_SCHEDULE_ prefix
type Options struct {
	Enabled bool
	Token   string
	Service service.Config
}

// FromConfig reads CORE_SCHEDULE_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_SCHEDULE_")
	def := service.DefaultConfig()
	return Options{
		Enabled: c.MayBool("ENABLED", true),
		Token:   c.MayString("TOKEN", ""),
		Service: service.Config{
			Spec:      c.MayString("SPEC", def.Spec),
			Products:  c.MayCSV("PRODUCTS", def.Products),
			MaxPages:  c.MayInt("MAX_PAGES", def.MaxPages),
			DaysLimit: c.MayInt("DAYS_LIMIT", def.DaysLimit),
		},
	}
}
