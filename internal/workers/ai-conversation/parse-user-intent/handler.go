package parseuserintent

import (
	"context"
	"encoding/json"
	"fmt"

	"job-assistant/internal/assistant"
	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "parse-user-intent"
)

// Understander classifies a query and pulls out its entities.
type Understander interface {
	Understand(text string) assistant.Understanding
}

type Handler struct {
	config       *Config
	understander Understander
	errHandler   *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, understander Understander, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:       config,
		understander: understander,
		errHandler:   errors.NewErrorHandler(log),
		logger:       log,
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

	return h.completeJob(ctx, client, job, output)
}

// Execute never rejects text. Empty input still gets a label.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewIntentParsingFailedError(err)
	}

	u := h.understander.Understand(input.UserInput)
	output := &Output{
		Intent:     string(u.Intent),
		Confidence: u.Confidence,
		Entities: Entities{
			Location: u.Entities.Location,
			Skills:   u.Entities.Skills,
		},
	}

	h.logger.Info("intent parsed successfully", map[string]interface{}{
		"intent":     output.Intent,
		"confidence": output.Confidence,
		"locations":  len(output.Entities.Location),
		"skills":     len(output.Entities.Skills),
	})
	return output, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
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
