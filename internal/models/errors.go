// ABOUTME: Error taxonomy for the document QA pipeline
// ABOUTME: Separates caller mistakes from external provider failures
package models

import (
	"errors"
	"fmt"
)

// ValidationError reports rejected input: unsupported file type, oversized
// upload, empty query. Terminal and non-retryable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ProviderError wraps a failed or timed-out call to an external service
// (embedding provider, completion provider, vector index).
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a ProviderError for the named provider
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsProvider reports whether err is a ProviderError
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
