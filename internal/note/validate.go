package note

import (
	"errors"
	"fmt"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrMissingField is matched by every MissingFieldError.
var ErrMissingField = errors.New("missing required field")

// MissingFieldError names the field a note lacks.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Is lets errors.Is(err, ErrMissingField) match.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// Validate checks that all four fields of the note are present. A string
// field is absent when empty, a list field when nil; an empty list is
// present. Content is not judged.
func Validate(n *types.ResearchNote) error {
	if n == nil {
		return &MissingFieldError{Field: "title"}
	}
	switch {
	case n.Title == "":
		return &MissingFieldError{Field: "title"}
	case n.Summary == "":
		return &MissingFieldError{Field: "summary"}
	case n.KeyPoints == nil:
		return &MissingFieldError{Field: "key_points"}
	case n.Sources == nil:
		return &MissingFieldError{Field: "sources"}
	}
	return nil
}
