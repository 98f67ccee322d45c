// internal/workers/ai-conversation/parse-user-intent/config.go
package parseuserintent

import (
	"time"

	"job-assistant/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	MaxJobsActive int
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:       config.GetDuration(wc.Timeout),
		MaxJobsActive: wc.MaxJobsActive,
	}
}
