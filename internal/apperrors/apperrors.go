// Package apperrors defines the error kinds shared by the job board components
// and maps them onto transport status codes.
package apperrors

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies an error for callers that need to decide how to surface it.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindStore      Kind = "STORE"
	KindInternal   Kind = "INTERNAL"
)

// Error is the error contract across packages.
type Error struct {
	Kind    Kind
	Op      string            // operation name, ex: "applications.Submit"
	Message string            // safe to show to a user
	Fields  map[string]string // field-level messages for validation errors
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Op != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Op)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+e.Fields[k])
		}
		sb.WriteString(" [")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("]")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack captured when the error was created.
func (e *Error) StackTrace() []byte {
	return e.Stack
}

// New creates an Error of the given kind, capturing a stack trace.
func New(kind Kind, op, message string, err error) *Error {
	var stack []byte
	if err != nil {
		var ge *goerrors.Error
		if errors.As(err, &ge) {
			stack = ge.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

// Validation creates a validation error carrying per-field messages.
func Validation(op string, fields map[string]string) *Error {
	e := New(KindValidation, op, "validation failed", nil)
	e.Fields = fields
	return e
}

func NotFound(op, message string, err error) *Error {
	return New(KindNotFound, op, message, err)
}

func Conflict(op, message string, err error) *Error {
	return New(KindConflict, op, message, err)
}

func Store(op, message string, err error) *Error {
	return New(KindStore, op, message, err)
}

func Internal(op, message string, err error) *Error {
	return New(KindInternal, op, message, err)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether any *Error in the chain has the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var ae *Error
		if !errors.As(err, &ae) {
			return false
		}
		if ae.Kind == kind {
			return true
		}
		err = ae.Err
	}
	return false
}

// FieldsOf returns the field messages of the first validation error in the chain.
func FieldsOf(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

