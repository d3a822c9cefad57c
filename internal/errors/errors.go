// Package errors provides the structured error type for grounder.
// Every failure mode in the engine maps to a coded error with a
// documented degradation path; nothing here should abort the process.
package errors

import (
	"fmt"
)

// GroundError is the structured error type for grounder.
// It provides rich context for error handling, logging, and user presentation.
type GroundError struct {
	// Code is the unique error code (e.g., "ERR_301_BACKEND_UNAVAILABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Embedding, Cache, ...).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *GroundError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GroundError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
func (e *GroundError) Is(target error) bool {
	if t, ok := target.(*GroundError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *GroundError) WithDetail(key, value string) *GroundError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *GroundError) WithSuggestion(suggestion string) *GroundError {
	e.Suggestion = suggestion
	return e
}

// New creates a new GroundError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *GroundError {
	return &GroundError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a GroundError from an existing error.
// The error's message becomes the GroundError message.
func Wrap(code string, err error) *GroundError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *GroundError {
	return New(ErrCodeConfigLoad, message, cause)
}

// BackendError creates an embedding-backend error.
// Backend errors are retryable: the encoder may come back.
func BackendError(message string, cause error) *GroundError {
	return New(ErrCodeBackendUnavailable, message, cause)
}

// CacheError creates an embedding-cache error.
func CacheError(message string, cause error) *GroundError {
	return New(ErrCodeCacheCorrupt, message, cause)
}

// ValidationError creates an invalid-input error.
func ValidationError(message string, cause error) *GroundError {
	return New(ErrCodeInvalidInput, message, cause)
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if ge, ok := err.(*GroundError); ok {
		return ge.Retryable
	}
	return false
}

// GetCode extracts the error code from a GroundError.
// Returns empty string if not a GroundError.
func GetCode(err error) string {
	if ge, ok := err.(*GroundError); ok {
		return ge.Code
	}
	return ""
}

// GetCategory extracts the category from a GroundError.
func GetCategory(err error) Category {
	if ge, ok := err.(*GroundError); ok {
		return ge.Category
	}
	return ""
}
