package trend

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a trend identity or ordinal does not resolve.
var ErrNotFound = errors.New("trend not found")

// ValidationError reports a manual entry submission missing a required field.
// It is the only failure kind surfaced to callers from the write path.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
