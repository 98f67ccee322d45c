package queryjoblistings

import (
	"context"
	"encoding/json"
	"fmt"

	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/jobsource"
	"job-assistant/internal/models"
	"job-assistant/internal/nlp/intent"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "query-job-listings"
)

type Handler struct {
	config     *Config
	source     jobsource.Source
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, source jobsource.Source, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:     config,
		source:     source,
		errHandler: errors.NewErrorHandler(log),
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		stdErr := errors.NewInvalidRequestError(fmt.Sprintf("parse input: %v", err))
		h.errHandler.HandleJobError(ctx, client, job, stdErr)
		return stdErr
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return err
	}
	return nil
}

// Execute fetches listings for the three job intents. Any other label
// completes with an empty list so the composer can answer it.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	out := &Output{Jobs: []models.JobRecord{}, Source: h.config.Provider}

	switch intent.Label(input.Intent) {
	case intent.JobSearch, intent.Location, intent.Skills:
	default:
		h.logger.Warn("skipping fetch for unrecognized intent", map[string]interface{}{
			"intent":    input.Intent,
			"errorCode": string(errors.ErrCodeUnrecognizedIntent),
		})
		return out, nil
	}

	out.Jobs = h.source.FetchJobs(ctx)
	out.JobCount = len(out.Jobs)

	if out.JobCount == 0 {
		h.logger.Warn("no job listings available", map[string]interface{}{
			"intent":    input.Intent,
			"errorCode": string(errors.ErrCodeDataUnavailable),
		})
	} else {
		h.logger.Info("job listings fetched", map[string]interface{}{
			"intent":   input.Intent,
			"jobCount": out.JobCount,
		})
	}
	return out, nil
}
