package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// itinerary does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, end date before start date).
// Concrete failures are reported as *ValidationError, which unwraps to this.
var ErrValidation = errors.New("validation error")

// ErrIndex is returned when a regeneration request references a day number or
// time-block index that does not exist in the current itinerary version.
var ErrIndex = errors.New("index out of range")

// ErrSynthesis is returned when the itinerary synthesizer fails or produces
// content that cannot be parsed into a valid day list.
var ErrSynthesis = errors.New("synthesis failed")

// ErrProvider marks a failed supply lookup. It never reaches the caller:
// the supply gatherer logs it and degrades to an empty list.
var ErrProvider = errors.New("supply provider failed")

// ValidationKind classifies a ValidationError.
type ValidationKind string

const (
	KindMissingField    ValidationKind = "missing-field"
	KindInvalidEnum     ValidationKind = "invalid-enum"
	KindEmptyCollection ValidationKind = "empty-collection"
	KindInvalidFormat   ValidationKind = "invalid-format"
	KindInvalidRange    ValidationKind = "invalid-range"
)

// ValidationError names the offending field of a rejected request.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for field with a formatted message.
func NewValidationError(kind ValidationKind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}
