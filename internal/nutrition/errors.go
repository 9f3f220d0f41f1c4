// ABOUTME: Error values shared by the nutrition services.
// ABOUTME: Validation failures are detected before any storage call.
package nutrition

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected by a service before reaching storage.
var ErrValidation = errors.New("validation failed")

// ErrMissingID is returned when an update is attempted on a record without an ID.
var ErrMissingID = fmt.Errorf("%w: record has no id", ErrValidation)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
