package types

import (
	"errors"
	"fmt"
)

// Parameter errors surfaced by the query pipeline. Handlers map these to
// 400 responses; they never partially mutate the store.
var (
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidPagination = errors.New("page and limit must be positive integers")
)

// ValidationError reports a missing or malformed field on an inbound
// submission or query parameter.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
