package errors

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler reports job errors back to the engine.
type ErrorHandler struct {
	logger Logger
}

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError throws a BPMN error for business failures and fails the job with retries
// for retryable technical ones.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := AsStandardError(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	h.logError(job, stdErr, bpmnErr)

	if bpmnErr.Retries > 0 && job.Retries > 0 {
		h.failJobWithRetries(ctx, client, job, bpmnErr)
		return
	}
	h.throwBPMNError(ctx, client, job, bpmnErr)
}

// remainingRetries never raises the engine's remaining count.
func remainingRetries(job entities.Job, max int) int32 {
	if job.Retries > 0 && int(job.Retries) <= max {
		return job.Retries - 1
	}
	return int32(max)
}

func (h *ErrorHandler) failJobWithRetries(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(remainingRetries(job, bpmnErr.Retries)).
		ErrorMessage(bpmnErr.Message)

	withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		h.sendFailed(job, err)
		if _, err := cmd.Send(ctx); err != nil {
			h.sendFailed(job, err)
		}
		return
	}
	if _, err := withVars.Send(ctx); err != nil {
		h.sendFailed(job, err)
	}
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		h.sendFailed(job, err)
		if _, err := cmd.Send(ctx); err != nil {
			h.sendFailed(job, err)
		}
		return
	}
	if _, err := withVars.Send(ctx); err != nil {
		h.sendFailed(job, err)
	}
}

func (h *ErrorHandler) sendFailed(job entities.Job, err error) {
	h.logger.Error("failed to report job error", map[string]interface{}{
		"jobKey": job.Key,
		"error":  err,
	})
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"bpmnErrorCode":    bpmnErr.Code,
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"retries":          bpmnErr.Retries,
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}
