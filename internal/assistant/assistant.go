// Package assistant wires normalization, intent classification, entity
// extraction, job fetching and response composition into one call.
package assistant

import (
	"context"
	"time"

	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/common/metrics"
	"job-assistant/internal/common/observability"
	"job-assistant/internal/jobsource"
	"job-assistant/internal/models"
	"job-assistant/internal/nlp/entity"
	"job-assistant/internal/nlp/intent"
	"job-assistant/internal/responder"
)

// Understanding is the language half of the pipeline: what the user wants
// and what they mentioned.
type Understanding struct {
	Intent     intent.Label `json:"intent"`
	Confidence float64      `json:"confidence"`
	Entities   entity.Bag   `json:"entities"`
}

// Assistant is safe for concurrent use as long as its Source is.
type Assistant struct {
	model     *intent.Model
	extractor *entity.Extractor
	source    jobsource.Source
	logger    logger.Logger
	obs       *observability.Observability
}

type Option func(*Assistant)

// WithObservability records answer counts and latency through OpenTelemetry.
func WithObservability(o *observability.Observability) Option {
	return func(a *Assistant) { a.obs = o }
}

func New(model *intent.Model, extractor *entity.Extractor, source jobsource.Source, log logger.Logger, opts ...Option) *Assistant {
	a := &Assistant{
		model:     model,
		extractor: extractor,
		source:    source,
		logger:    log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Understand classifies text and extracts its entities. The classifier
// sees the normalized text, the recognizer the raw text.
func (a *Assistant) Understand(text string) Understanding {
	p := a.model.Predict(text)
	return Understanding{
		Intent:     p.Label,
		Confidence: p.Confidence,
		Entities:   a.extractor.Extract(text),
	}
}

// Fetch asks the job source for fresh listings.
func (a *Assistant) Fetch(ctx context.Context) []models.JobRecord {
	return a.source.FetchJobs(ctx)
}

// Answer runs the whole pipeline. It never fails: every problem ends up as
// a message in the Response.
func (a *Assistant) Answer(ctx context.Context, userInput string) responder.Response {
	start := time.Now()
	u := a.Understand(userInput)

	log := a.logger.With(map[string]interface{}{
		"intent":     string(u.Intent),
		"confidence": u.Confidence,
	})

	var jobs []models.JobRecord
	switch u.Intent {
	case intent.JobSearch, intent.Location, intent.Skills:
		jobs = a.Fetch(ctx)
		if len(jobs) == 0 {
			e := errors.NewDataUnavailableError("job source")
			log.Warn("no job listings available", map[string]interface{}{"errorCode": string(e.Code)})
		}
	default:
		e := errors.NewUnrecognizedIntentError(string(u.Intent))
		log.Warn("intent has no response handler", map[string]interface{}{"errorCode": string(e.Code)})
	}

	resp := responder.Compose(u.Intent, userInput, u.Entities, jobs)

	metrics.AssistantResponses.WithLabelValues(string(u.Intent), string(resp.Kind)).Inc()
	a.obs.RecordAnswer(ctx, string(u.Intent), string(resp.Kind), time.Since(start))

	log.Info("answered query", map[string]interface{}{
		"kind":      string(resp.Kind),
		"jobCount":  len(resp.Jobs),
		"locations": len(u.Entities.Location),
		"skills":    len(u.Entities.Skills),
		"duration":  time.Since(start).String(),
	})
	return resp
}
