package module

import (
	"time"

	"reviewharvest/internal/platform/config"
	"reviewharvest/internal/services/api/crawls/service"
)

// FromConfig reads crawl registry options with the CORE_CRAWLS_ prefix
func FromConfig(cfg config.Conf) service.Config {
	c := cfg.Prefix("CORE_CRAWLS_")
	return service.Config{
		MaxTasks:   c.MayInt("MAX_TASKS", 500),
		StartRate:  float64(c.MayInt("STARTS_PER_MINUTE", 6)) / 60,
		StartBurst: c.MayInt("START_BURST", 3),
		JobTimeout: c.MayDuration("JOB_TIMEOUT", 30*time.Minute),
		ListLimit:  20,
		MaxDays:    c.MayInt("HISTORY_MAX_DAYS", 90),
	}
}
