package composejobresponse

import (
	"context"
	"encoding/json"
	"fmt"

	"job-assistant/internal/common/errors"
	"job-assistant/internal/common/logger"
	"job-assistant/internal/common/metrics"
	"job-assistant/internal/nlp/entity"
	"job-assistant/internal/nlp/intent"
	"job-assistant/internal/responder"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compose-job-response"
)

type Handler struct {
	config     *Config
	errHandler *errors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:     config,
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Intent == "" {
		return nil, errors.NewInvalidRequestError("intent is required")
	}

	bag := entity.Bag{Location: input.Entities.Location, Skills: input.Entities.Skills}
	resp := responder.Compose(intent.Label(input.Intent), input.UserInput, bag, input.Jobs)

	metrics.AssistantResponses.WithLabelValues(input.Intent, string(resp.Kind)).Inc()
	h.logger.Info("response composed", map[string]interface{}{
		"intent":   input.Intent,
		"kind":     string(resp.Kind),
		"jobCount": len(resp.Jobs),
	})

	return &Output{
		Reply:     resp,
		ReplyKind: string(resp.Kind),
		ReplyText: responder.Render(resp),
	}, nil
}
