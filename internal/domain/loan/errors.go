package loan

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("loan not found")
	ErrUnauthorized = errors.New("caller is not authorized for this loan")
	// ErrStoreUnavailable wraps transient persistence faults. Nothing
	// partial is ever committed, so callers may retry the whole operation.
	ErrStoreUnavailable = errors.New("loan store unavailable")
)

// ValidationError reports malformed input. It is returned before any
// mutation is applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
