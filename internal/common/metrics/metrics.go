// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	AssistantResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_responses_total",
			Help: "Responses produced by the assistant, by classified intent and response kind",
		},
		[]string{"intent", "kind"},
	)

	JobSourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_source_fetches_total",
			Help: "Job source fetches by provider and outcome (ok, empty, error)",
		},
		[]string{"provider", "outcome"},
	)

	JobSourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_source_fetch_duration_seconds",
			Help:    "Duration of job source fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	HTTPRequestsLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_requests_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)
