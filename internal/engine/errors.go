package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-corrected-age/internal/config"
)

// ErrInvalidInput is the only error kind originating from the engine.
// Every *InvalidInputError matches it with errors.Is.
var ErrInvalidInput = errors.New(config.ErrInvalidInput)

// InvalidInputError reports a violation of the input contract on a single field.
type InvalidInputError struct {
	Field   string // One of the config.Field* identifiers
	Message string // Human-readable reason
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s", config.ErrInvalidInput, e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalidInput) hold for any InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: fmt.Sprintf(format, args...)}
}
