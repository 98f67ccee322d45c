package jobsource

import (
	"context"
	"database/sql"
	"fmt"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/models"
)

const providerPostgres = config.ProviderPostgres

// PostgresSource reads listings from a table with the columns
// title, company, posted_on, link, location and posted_at.
type PostgresSource struct {
	db     *sql.DB
	query  string
	config config.JobSourceConfig
	logger logger.Logger
}

// NewPostgresSource expects cfg.Table to have passed config validation;
// it is interpolated into the query.
func NewPostgresSource(db *sql.DB, cfg config.JobSourceConfig, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db: db,
		query: fmt.Sprintf(`SELECT COALESCE(title, ''), COALESCE(company, ''), COALESCE(posted_on, ''),
       COALESCE(link, ''), COALESCE(location, '')
FROM %s
ORDER BY posted_at DESC NULLS LAST
LIMIT $1`, cfg.Table),
		config: cfg,
		logger: log.With(map[string]interface{}{"provider": providerPostgres}),
	}
}

func (s *PostgresSource) FetchJobs(ctx context.Context) []models.JobRecord {
	return guard(ctx, providerPostgres, config.GetDuration(s.config.Timeout), s.logger, s.Fetch)
}

func (s *PostgresSource) Fetch(ctx context.Context) ([]models.JobRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.query, s.config.MaxResults)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("job_listings", err)
	}
	defer rows.Close()

	var jobs []models.JobRecord
	for rows.Next() {
		var j models.JobRecord
		if err := rows.Scan(&j.Title, &j.Company, &j.Date, &j.Link, &j.Location); err != nil {
			return nil, errors.NewQueryExecutionFailedError("job_listings", err)
		}
		jobs = append(jobs, fillPlaceholders(j))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("job_listings", err)
	}
	return jobs, nil
}
