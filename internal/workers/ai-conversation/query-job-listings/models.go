// internal/workers/ai-conversation/query-job-listings/models.go
package queryjoblistings

import "job-assistant/internal/models"

type Input struct {
	Intent string `json:"intent"`
}

type Output struct {
	Jobs     []models.JobRecord `json:"jobs"`
	JobCount int                `json:"jobCount"`
	Source   string             `json:"source"`
}
