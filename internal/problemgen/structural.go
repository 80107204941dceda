package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/codecoach/internal/problem"
)

// StructuralValidator checks that the reply is non-empty and within length
// limits.
type StructuralValidator struct {
	// MaxLength caps the reply size in bytes. Zero means no cap.
	MaxLength int
}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(text string, _ Level) *ValidationError {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "problem text is empty",
			Retryable: true,
		}
	}
	if v.MaxLength > 0 && len(text) > v.MaxLength {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("problem text exceeds %d characters", v.MaxLength),
			Retryable: true,
		}
	}
	return nil
}

// TagValidator rejects replies the problem view could only show as
// placeholders.
type TagValidator struct{}

func (v *TagValidator) Name() string { return "tags" }

func (v *TagValidator) Validate(text string, _ Level) *ValidationError {
	if !problem.HasAnyTag(text) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   ErrUntagged.Error(),
			Retryable: true,
			Err:       ErrUntagged,
		}
	}
	return nil
}
