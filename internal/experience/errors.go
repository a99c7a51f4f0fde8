// Package experience edits and aggregates a profile's structured work history.
package experience

import (
	"errors"
	"fmt"
)

// ErrEditorClosed is returned by editor operations that need an open form.
var ErrEditorClosed = errors.New("experience editor is closed")

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FieldError is returned by Editor.Set for an unknown field or a value of the
// wrong type.
type FieldError struct {
	Field   Field
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}
