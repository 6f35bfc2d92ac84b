// Package errors provides standardized error handling for the experiment harness.
package errors

import (
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
	// Planning errors: always fatal, raised before any external call.
	ErrCodeUnknownVariant   ErrorCode = "UNKNOWN_VARIANT"
	ErrCodeUnknownParameter ErrorCode = "UNKNOWN_PARAMETER"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeCatalogInvalid   ErrorCode = "CATALOG_INVALID"
	ErrCodeEmptyPlan        ErrorCode = "EMPTY_PLAN"

	// Trial errors: recorded on the trial's row, never escalated.
	ErrCodeTransportFailed   ErrorCode = "TRANSPORT_FAILED"
	ErrCodeCompletionTimeout ErrorCode = "COMPLETION_TIMEOUT"
	ErrCodeRateLimited       ErrorCode = "RATE_LIMITED"

	// Batch-level errors: fatal, surfaced to the operator.
	ErrCodeOutputWriteFailed  ErrorCode = "OUTPUT_WRITE_FAILED"
	ErrCodeSinkUnavailable    ErrorCode = "SINK_UNAVAILABLE"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_FAILED"
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

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: isRetryableCode(code),
		Timestamp: time.Now(),
	}
}

// Wrap creates a StandardError that records the underlying error as details.
func Wrap(code ErrorCode, message string, err error) *StandardError {
	se := New(code, message)
	if err != nil {
		se.Details = err.Error()
	}
	return se
}

// WithMetadata attaches metadata to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func isRetryableCode(code ErrorCode) bool {
	switch code {
	case ErrCodeTransportFailed, ErrCodeCompletionTimeout, ErrCodeRateLimited:
		return true
	}
	return false
}

// ==========================
// 2. Transport Classification
// ==========================

// ClassifyTransport maps a raw completion-service error onto an ErrorCode.
// Rate limits and timeouts get their own codes so metrics can separate them;
// everything else from the wire is TRANSPORT_FAILED.
func ClassifyTransport(err error) ErrorCode {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return ErrCodeRateLimited
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return ErrCodeCompletionTimeout
	}
	return ErrCodeTransportFailed
}

// IsRetryable reports whether the error should be retried by the trial
// executor. Unknown (non-StandardError) errors from the transport are
// retryable; planning errors never are.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return true
}

// CodeOf extracts the ErrorCode from an error, or empty string.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}
