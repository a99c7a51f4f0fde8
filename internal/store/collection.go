package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/jobboard/internal/apperrors"
)

// Identifiable is implemented by record types that carry their own id.
type Identifiable interface {
	RecordID() string
}

// Collection is a typed view over one store collection.
type Collection[T Identifiable] struct {
	store Store
	name  string
}

// NewCollection returns a typed view of the named collection.
func NewCollection[T Identifiable](s Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// All decodes every record in the collection, in store order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	recs, err := c.store.FetchAll(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		var v T
		if err := json.Unmarshal(r.Data, &v); err != nil {
			return nil, apperrors.Store("store.Collection.All",
				fmt.Sprintf("decode %s record %s", c.name, r.ID), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Find returns the record with the given id. The boolean is false when absent.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	all, err := c.All(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, v := range all {
		if v.RecordID() == id {
			return v, true, nil
		}
	}
	return zero, false, nil
}

// Create encodes and appends v.
func (c *Collection[T]) Create(ctx context.Context, v T) (T, error) {
	rec, err := c.encode(v)
	if err != nil {
		return v, err
	}
	if _, err := c.store.Create(ctx, c.name, rec); err != nil {
		return v, err
	}
	return v, nil
}

// Update encodes v and replaces the record with the same id.
func (c *Collection[T]) Update(ctx context.Context, v T) (T, error) {
	rec, err := c.encode(v)
	if err != nil {
		return v, err
	}
	if _, err := c.store.Update(ctx, c.name, v.RecordID(), rec); err != nil {
		return v, err
	}
	return v, nil
}

// Delete removes the record with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func (c *Collection[T]) encode(v T) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Record{}, apperrors.Internal("store.Collection.encode",
			fmt.Sprintf("encode %s record %s", c.name, v.RecordID()), err)
	}
	return Record{ID: v.RecordID(), Data: data}, nil
}
