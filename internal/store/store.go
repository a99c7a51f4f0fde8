// Package store provides the keyed-collection record store consumed by the
// job board components, with in-memory, PostgreSQL and Redis backends.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names used by the core components.
const (
	CollectionUsers        = "users"
	CollectionVacancies    = "vacancies"
	CollectionResumes      = "resumes"
	CollectionApplications = "applications"
	CollectionSkills       = "skills"
)

var (
	// ErrNotFound is returned by Update when no record has the given id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned by Create when the id is already taken.
	ErrConflict = errors.New("record id already exists")
)

// Record is a single stored document. The caller supplies the id.
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Store is the abstract keyed-collection store. Collections keep insertion
// order. No operation is serialized against another; read-modify-write
// sequencing is the caller's responsibility.
type Store interface {
	// FetchAll returns every record in the collection, or an empty slice if
	// the collection does not exist.
	FetchAll(ctx context.Context, collection string) ([]Record, error)
	// Create appends a record.
	Create(ctx context.Context, collection string, rec Record) (Record, error)
	// Update replaces the record with the given id in place.
	Update(ctx context.Context, collection, id string, rec Record) (Record, error)
	// Delete removes the record with the given id. Deleting a missing id is a no-op.
	Delete(ctx context.Context, collection, id string) error
	Close() error
}
