package problemgen

import (
	"errors"
	"fmt"
)

// ErrUntagged reports a reply that carries none of the problem tags.
var ErrUntagged = errors.New("reply has no <title>, <description> or <examples> tags")

// Validator checks generated problem text.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error messages
	// and logging), e.g. "structural", "tags".
	Name() string

	// Validate checks the text and returns nil if it passes.
	Validate(text string, level Level) *ValidationError
}

// ValidationError describes why a problem failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
	Err       error  // Underlying sentinel, if any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }
