package store

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/apperrors"
)

// notFound wraps ErrNotFound with the collection and id.
func notFound(op, collection, id string) error {
	return apperrors.NotFound(op, fmt.Sprintf("%s record %s not found", collection, id), ErrNotFound)
}

// conflict wraps ErrConflict with the collection and id.
func conflict(op, collection, id string) error {
	return apperrors.Conflict(op, fmt.Sprintf("%s record %s already exists", collection, id), ErrConflict)
}

// ioError wraps a backend failure.
func ioError(op, collection string, err error) error {
	return apperrors.Store(op, "store failure on "+collection, err)
}
