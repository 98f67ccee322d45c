package jobsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
)

const providerElasticsearch = config.ProviderElasticsearch

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.JobRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ElasticsearchSource reads the newest documents of a listings index. Each
// document is expected to carry the JobRecord JSON fields.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	config config.JobSourceConfig
	logger logger.Logger
}

func NewElasticsearchSource(client *elasticsearch.Client, cfg config.JobSourceConfig, log logger.Logger) *ElasticsearchSource {
	return &ElasticsearchSource{
		client: client,
		config: cfg,
		logger: log.With(map[string]interface{}{"provider": providerElasticsearch, "index": cfg.Index}),
	}
}

func (s *ElasticsearchSource) FetchJobs(ctx context.Context) []models.JobRecord {
	return guard(ctx, providerElasticsearch, config.GetDuration(s.config.Timeout), s.logger, s.Fetch)
}

func (s *ElasticsearchSource) buildQuery() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"size":  s.config.MaxResults,
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort": []interface{}{
			map[string]interface{}{
				"posted_at": map[string]interface{}{"order": "desc", "unmapped_type": "date"},
			},
		},
	})
}

func (s *ElasticsearchSource) Fetch(ctx context.Context) ([]models.JobRecord, error) {
	body, err := s.buildQuery()
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(s.config.Index, err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.config.Index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, errors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(s.config.Index, fmt.Errorf("status %s", res.Status()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewSearchQueryFailedError(s.config.Index, err)
	}

	jobs := make([]models.JobRecord, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		jobs = append(jobs, fillPlaceholders(hit.Source))
	}
	return jobs, nil
}
