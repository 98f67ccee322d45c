package jobsource

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeElasticsearch(t *testing.T, status int, body string, gotQuery *map[string]interface{}) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil && r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, gotQuery)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func esConfig() config.JobSourceConfig {
	return config.JobSourceConfig{
		Provider:   config.ProviderElasticsearch,
		Index:      "jobs",
		Timeout:    1000,
		MaxResults: 25,
	}
}

func TestElasticsearchSource_FetchJobs(t *testing.T) {
	var query map[string]interface{}
	client := fakeElasticsearch(t, http.StatusOK, `{
	  "took": 3,
	  "hits": {
	    "total": {"value": 2, "relation": "eq"},
	    "hits": [
	      {"_source": {"title": "Flutter Developer", "company": "Acme", "date": "1 Oct", "link": "https://x/1", "location": "Kakkanad"}},
	      {"_source": {"title": "QA Engineer"}}
	    ]
	  }
	}`, &query)

	src := NewElasticsearchSource(client, esConfig(), logger.NewTestLogger(t))
	jobs := src.FetchJobs(context.Background())

	require.Len(t, jobs, 2)
	assert.Equal(t, "Flutter Developer", jobs[0].Title)
	assert.Equal(t, "Kakkanad", jobs[0].Location)
	assert.Equal(t, "QA Engineer", jobs[1].Title)
	assert.Equal(t, "No company", jobs[1].Company)
	assert.Equal(t, "No date", jobs[1].Date)

	assert.Equal(t, float64(25), query["size"])
	assert.Contains(t, query["query"], "match_all")
}

func TestElasticsearchSource_ErrorStatusIsEmpty(t *testing.T) {
	client := fakeElasticsearch(t, http.StatusNotFound, `{"error": {"type": "index_not_found_exception"}, "status": 404}`, nil)
	src := NewElasticsearchSource(client, esConfig(), logger.NewTestLogger(t))

	assert.Empty(t, src.FetchJobs(context.Background()))

	_, err := src.Fetch(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSearchQueryFailed))
}

func TestElasticsearchSource_BadJSONIsEmpty(t *testing.T) {
	client := fakeElasticsearch(t, http.StatusOK, `{"hits": [`, nil)
	src := NewElasticsearchSource(client, esConfig(), logger.NewTestLogger(t))
	assert.Empty(t, src.FetchJobs(context.Background()))
}
