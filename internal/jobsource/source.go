// Package jobsource fetches live job listings. Every Source swallows its
// own failures: callers only ever see a (possibly empty) list.
package jobsource

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/database"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/common/metrics"
	"job-assistant/internal/models"
)

// Source yields the current job listings. It never returns nil and never
// fails; transport or parse errors produce an empty list.
type Source interface {
	FetchJobs(ctx context.Context) []models.JobRecord
}

// fetchFunc is the error-returning core each provider implements.
type fetchFunc func(ctx context.Context) ([]models.JobRecord, error)

// guard bounds a fetch by timeout, records metrics and converts failures
// into an empty list.
func guard(ctx context.Context, provider string, timeout time.Duration, log logger.Logger, fetch fetchFunc) []models.JobRecord {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	jobs, err := fetch(ctx)
	metrics.JobSourceFetchDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = errors.NewJobSourceTimeoutError(provider)
		}
		stdErr := errors.Normalize(err)
		metrics.JobSourceFetches.WithLabelValues(provider, "error").Inc()
		log.Warn("job source fetch failed", map[string]interface{}{
			"provider":  provider,
			"errorCode": string(stdErr.Code),
			"error":     err,
		})
		return []models.JobRecord{}
	}

	if len(jobs) == 0 {
		metrics.JobSourceFetches.WithLabelValues(provider, "empty").Inc()
		return []models.JobRecord{}
	}

	metrics.JobSourceFetches.WithLabelValues(provider, "ok").Inc()
	log.Debug("job source fetched", map[string]interface{}{
		"provider": provider,
		"jobCount": len(jobs),
		"duration": time.Since(start).String(),
	})
	return jobs
}

// fillPlaceholders substitutes the placeholder text for missing required fields.
func fillPlaceholders(j models.JobRecord) models.JobRecord {
	if j.Title == "" {
		j.Title = models.PlaceholderTitle
	}
	if j.Company == "" {
		j.Company = models.PlaceholderCompany
	}
	if j.Date == "" {
		j.Date = models.PlaceholderDate
	}
	return j
}

// New builds the Source selected by job_source.provider. The returned close
// function releases any backing connection.
func New(cfg *config.Config, log logger.Logger) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.JobSource.Provider {
	case config.ProviderInfopark:
		return NewInfoparkSource(cfg.JobSource, log), noop, nil

	case config.ProviderPostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, noop, errors.NewDatabaseConnectionFailedError(err)
		}
		return NewPostgresSource(pg.DB, cfg.JobSource, log), pg.Close, nil

	case config.ProviderElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, noop, errors.NewElasticsearchConnectionFailedError(err)
		}
		return NewElasticsearchSource(es.Client, cfg.JobSource, log), noop, nil
	}

	return nil, noop, errors.NewConfigurationError(fmt.Sprintf("unknown job source provider %q", cfg.JobSource.Provider))
}

// Static serves a fixed list. Used by the classify command and in tests.
type Static []models.JobRecord

func (s Static) FetchJobs(context.Context) []models.JobRecord {
	out := make([]models.JobRecord, len(s))
	copy(out, s)
	return out
}
