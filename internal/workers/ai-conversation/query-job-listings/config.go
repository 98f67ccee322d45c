// internal/workers/ai-conversation/query-job-listings/config.go
package queryjoblistings

import (
	"time"

	"job-assistant/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	MaxJobsActive int
	Provider      string
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:       config.GetDuration(wc.Timeout),
		MaxJobsActive: wc.MaxJobsActive,
		Provider:      cfg.JobSource.Provider,
	}
}
