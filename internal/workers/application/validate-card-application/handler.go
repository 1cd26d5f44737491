package validatecardapplication

import (
	"context"
	"encoding/json"
	"time"

	"card-application-workers/internal/cardapplication"
	apperrors "card-application-workers/internal/common/errors"
	"card-application-workers/internal/common/logger"
	"card-application-workers/internal/common/metrics"
	"card-application-workers/internal/common/observability"
	"card-application-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "validate-card-application"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	validator    *cardapplication.Validator
	errorHandler *apperrors.ErrorHandler
	obs          *observability.Observability
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) (*Handler, error) {
	v, err := cardapplication.NewValidator(config.Validation)
	if err != nil {
		return nil, err
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		validator:    v,
		errorHandler: apperrors.NewErrorHandler(log),
		obs:          obs,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	timeout := h.config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, start, apperrors.NewPayloadParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, start, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.fail(ctx, client, job, start, apperrors.NewJobCompletionFailedError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		h.obs.RecordJobProcessed(ctx, TaskType, "complete_failed")
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	stdErr := apperrors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	opts := h.validator.Options()

	start := time.Now()
	res := h.validator.Validate(cardapplication.Payload(input.Application))
	metrics.ObserveValidation(res.Violations, time.Since(start))
	h.obs.RecordValidation(ctx, res.Valid(), string(opts.Aggregation))

	validationID := uuid.New().String()
	h.logger.Info("validation completed", map[string]interface{}{
		"validationId":      validationID,
		"isValid":           res.Valid(),
		"violationCount":    len(res.Violations),
		"embossOptionCount": len(res.EmbossOptions),
	})

	if !res.Valid() {
		return nil, rejection(res, opts.Aggregation).
			WithMetadata("validationId", validationID).
			WithMetadata("violations", res.Violations).
			WithMetadata("embossOptions", res.EmbossOptions)
	}

	return &Output{
		IsValid:       true,
		ValidationID:  validationID,
		EmbossOptions: res.EmbossOptions,
		Application:   res.Application,
		ValidatedAt:   opts.Now().UTC().Format(time.RFC3339),
	}, nil
}

// rejection picks the BPMN error from the violation the policy surfaces.
func rejection(res cardapplication.Result, policy validation.Policy) *apperrors.StandardError {
	if v, ok := res.Violations.Surfaced(policy); ok && isEmbossCode(v.Code) {
		return apperrors.NewEmbossInvalidError(res.Error, res.EmbossOptions)
	}
	return apperrors.NewApplicationValidationFailedError(res.Error, len(res.Violations))
}

func isEmbossCode(c validation.Code) bool {
	return c == validation.CodeEmbossEmpty || c == validation.CodeEmbossMismatch
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
