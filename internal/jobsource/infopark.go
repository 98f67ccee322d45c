package jobsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"job-assistant/internal/common/config"
	"job-assistant/internal/common/errors"
	httpclient "job-assistant/internal/common/http"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const providerInfopark = config.ProviderInfopark

// Selectors of the Infopark job search page.
const (
	cardSelector    = "div.row.company-list.joblist"
	companySelector = "div.jobs-comp-name a"
	dateSelector    = "div.job-date"
)

// InfoparkSource scrapes the public Infopark job board.
type InfoparkSource struct {
	url    string
	client *httpclient.Client
	logger logger.Logger
}

func NewInfoparkSource(cfg config.JobSourceConfig, log logger.Logger) *InfoparkSource {
	return &InfoparkSource{
		url: cfg.URL,
		client: httpclient.NewClient(
			config.GetDuration(cfg.Timeout),
			httpclient.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
			httpclient.WithUserAgent(cfg.UserAgent),
		),
		logger: log.With(map[string]interface{}{"provider": providerInfopark}),
	}
}

func (s *InfoparkSource) FetchJobs(ctx context.Context) []models.JobRecord {
	return guard(ctx, providerInfopark, 0, s.logger, s.Fetch)
}

// Fetch downloads and parses the listing page. Any status but 200 is an error.
func (s *InfoparkSource) Fetch(ctx context.Context) ([]models.JobRecord, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, errors.NewJobSourceFetchFailedError(providerInfopark, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.NewJobSourceFetchFailedError(providerInfopark, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	jobs, err := ParseListings(resp.Body, s.url)
	if err != nil {
		return nil, errors.NewJobSourceFetchFailedError(providerInfopark, err)
	}
	return jobs, nil
}

// ParseListings extracts one JobRecord per listing card. Relative links are
// resolved against base when it parses as a URL.
func ParseListings(r io.Reader, base string) ([]models.JobRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	baseURL, _ := url.Parse(base)

	var jobs []models.JobRecord
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		job := models.JobRecord{Link: models.PlaceholderLink}

		if a := card.Find("a").First(); a.Length() > 0 {
			job.Title = strings.TrimSpace(a.Text())
			if href, ok := a.Attr("href"); ok {
				job.Link = resolveLink(baseURL, strings.TrimSpace(href))
			}
		}
		if company := card.Find(companySelector).First(); company.Length() > 0 {
			job.Company = strings.TrimSpace(company.Text())
		}
		if date := card.Find(dateSelector).First(); date.Length() > 0 {
			job.Date = strings.TrimSpace(date.Text())
		}

		jobs = append(jobs, fillPlaceholders(job))
	})
	return jobs, nil
}

func resolveLink(base *url.URL, href string) string {
	if base == nil || href == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
