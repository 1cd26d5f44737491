// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Business errors: thrown to the process, never retried.
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeEmbossInvalid               ErrorCode = "EMBOSS_INVALID"
	ErrCodePayloadParse                ErrorCode = "PARSE_ERROR"

	// Technical errors.
	ErrCodeJobCompletionFailed ErrorCode = "JOB_COMPLETION_FAILED"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a value that travels with the error into the BPMN error variables.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job error variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewApplicationValidationFailedError creates a non-retryable validation error. message is the
// aggregated validation message shown to the applicant.
func NewApplicationValidationFailedError(message string, violationCount int) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationValidationFailed,
		Message:   message,
		Details:   fmt.Sprintf("%d validation errors", violationCount),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbossInvalidError creates a non-retryable error for a rejected emboss line.
func NewEmbossInvalidError(message string, options []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbossInvalid,
		Message:   message,
		Details:   fmt.Sprintf("allowed: %s", strings.Join(options, ",")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadParseError creates a non-retryable error for job variables that cannot be decoded.
func NewPayloadParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadParse,
		Message:   "Job variables could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewJobCompletionFailedError creates a retryable error for a job that could not be completed.
func NewJobCompletionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobCompletionFailed,
		Message:   "Job completion failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeApplicationValidationFailed: "APPLICATION_VALIDATION_FAILED",
	ErrCodeEmbossInvalid:               "EMBOSS_INVALID",
	ErrCodePayloadParse:                "PARSE_ERROR",
	ErrCodeJobCompletionFailed:         "JOB_COMPLETION_FAILED",
	ErrCodeInternal:                    "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeJobCompletionFailed:
		return 3
	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda. Metadata entries
// become error variables.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err to a StandardError, wrapping anything else as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "EMBOSS"):
		return "VALIDATION"
	case strings.Contains(codeStr, "PARSE"):
		return "INPUT"
	case strings.Contains(codeStr, "JOB"):
		return "ENGINE"
	default:
		return "OTHER"
	}
}
