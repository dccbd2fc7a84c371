// Package exception defines the framework's error type and helpers.
// BatchError carries the originating module, a retryability hint and the
// stack trace captured at creation time.
package exception

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// BatchError represents an error that occurred inside the framework.
// It wraps an underlying cause and records which module raised it.
type BatchError struct {
	Module      string // Module where the error occurred (e.g., "config", "step", "scope")
	Message     string
	OriginalErr error
	StackTrace  string
	isRetryable bool
}

// Error returns the string representation of the error.
func (e *BatchError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the wrapped original error, enabling errors.Is / errors.As.
func (e *BatchError) Unwrap() error {
	return e.OriginalErr
}

// IsRetryable indicates whether the error is considered transient.
func (e *BatchError) IsRetryable() bool {
	return e.isRetryable
}

// SetRetryable marks the error as transient and returns the receiver for chaining.
func (e *BatchError) SetRetryable(retryable bool) *BatchError {
	e.isRetryable = retryable
	return e
}

// NewBatchError creates a new BatchError wrapping originalErr.
// The stack trace is captured at the call site.
func NewBatchError(module, message string, originalErr error) *BatchError {
	return &BatchError{
		Module:      module,
		Message:     message,
		OriginalErr: originalErr,
		StackTrace:  string(debug.Stack()),
	}
}

// NewBatchErrorf creates a new BatchError with a formatted message and no cause.
func NewBatchErrorf(module, format string, args ...interface{}) *BatchError {
	return &BatchError{
		Module:     module,
		Message:    fmt.Sprintf(format, args...),
		StackTrace: string(debug.Stack()),
	}
}

// IsBatchError reports whether err (or any error in its chain) is a *BatchError.
func IsBatchError(err error) bool {
	var be *BatchError
	return errors.As(err, &be)
}

// ExtractErrorMessage returns a human-readable message for err, flattening a
// BatchError chain down to its root cause.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var be *BatchError
	if errors.As(err, &be) {
		return be.Error()
	}
	return err.Error()
}
