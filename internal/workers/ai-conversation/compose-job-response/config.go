// internal/workers/ai-conversation/compose-job-response/config.go
package composejobresponse

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
