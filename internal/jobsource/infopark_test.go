package jobsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infoparkFixture(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("testdata/infopark.html")
	require.NoError(t, err)
	return body
}

func infoparkConfig(url string) config.JobSourceConfig {
	return config.JobSourceConfig{
		Provider:  config.ProviderInfopark,
		URL:       url,
		Timeout:   2000,
		UserAgent: "job-assistant/test",
	}
}

func TestParseListings(t *testing.T) {
	jobs, err := ParseListings(strings.NewReader(string(infoparkFixture(t))), "https://infopark.in/companies/job-search")
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, models.JobRecord{
		Title:   "Senior Python Engineer",
		Company: "Acme Softworks",
		Date:    "12 Oct 2026",
		Link:    "https://infopark.in/companies/job-detail/101",
	}, jobs[0])

	assert.Equal(t, models.JobRecord{
		Title:   "Java Developer - Kochi",
		Company: "Backwater Labs",
		Date:    models.PlaceholderDate,
		Link:    "https://jobs.example.com/202",
	}, jobs[1])

	assert.Equal(t, models.JobRecord{
		Title:   models.PlaceholderTitle,
		Company: models.PlaceholderCompany,
		Date:    models.PlaceholderDate,
		Link:    models.PlaceholderLink,
	}, jobs[2])
	assert.False(t, jobs[2].HasLink())
}

func TestParseListings_NoCards(t *testing.T) {
	jobs, err := ParseListings(strings.NewReader("<html><body><p>maintenance</p></body></html>"), "")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestInfoparkSource_FetchJobs(t *testing.T) {
	body := infoparkFixture(t)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	src := NewInfoparkSource(infoparkConfig(srv.URL+"/companies/job-search"), logger.NewTestLogger(t))
	jobs := src.FetchJobs(context.Background())

	require.Len(t, jobs, 3)
	assert.Equal(t, srv.URL+"/companies/job-detail/101", jobs[0].Link)
	assert.Equal(t, "job-assistant/test", gotUA)
}

func TestInfoparkSource_Non200IsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewInfoparkSource(infoparkConfig(srv.URL), logger.NewTestLogger(t))

	jobs := src.FetchJobs(context.Background())
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)

	_, err := src.Fetch(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeJobSourceFetchFailed))
}

func TestInfoparkSource_TLSVerification(t *testing.T) {
	body := infoparkFixture(t)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	strict := NewInfoparkSource(infoparkConfig(srv.URL), logger.NewTestLogger(t))
	assert.Empty(t, strict.FetchJobs(context.Background()))

	cfg := infoparkConfig(srv.URL)
	cfg.InsecureSkipVerify = true
	lax := NewInfoparkSource(cfg, logger.NewTestLogger(t))
	assert.Len(t, lax.FetchJobs(context.Background()), 3)
}

func TestInfoparkSource_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := infoparkConfig(srv.URL)
	cfg.Timeout = 50
	src := NewInfoparkSource(cfg, logger.NewTestLogger(t))

	start := time.Now()
	assert.Empty(t, src.FetchJobs(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}
