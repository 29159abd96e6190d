// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for source failures and API responses

package errors

import (
	"errors"
	"fmt"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// SourceFetchError represents a failed fetch from an external source. Body
// captures a snippet of the response for diagnostics; it ends up in the
// per-source error detail of the run.
type SourceFetchError struct {
	Source     string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *SourceFetchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("source %s returned status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("source %s returned status %d: %s", e.Source, e.StatusCode, e.Body)
}

// UnauthorizedError represents a rejected trigger credential.
type UnauthorizedError struct {
	Reason string
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsSourceFetch checks if an error is a SourceFetchError
func IsSourceFetch(err error) bool {
	var fetchErr *SourceFetchError
	return errors.As(err, &fetchErr)
}

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool {
	var authErr *UnauthorizedError
	return errors.As(err, &authErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
