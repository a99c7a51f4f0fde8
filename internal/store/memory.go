package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store. Records are copied on the way in and out.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]Record)}
}

func (m *Memory) FetchAll(_ context.Context, collection string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.collections[collection]
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = cloneRecord(r)
	}
	return out, nil
}

func (m *Memory) Create(_ context.Context, collection string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.collections[collection] {
		if r.ID == rec.ID {
			return Record{}, conflict("store.Memory.Create", collection, rec.ID)
		}
	}
	m.collections[collection] = append(m.collections[collection], cloneRecord(rec))
	return cloneRecord(rec), nil
}

func (m *Memory) Update(_ context.Context, collection, id string, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.collections[collection]
	for i, r := range recs {
		if r.ID == id {
			rec.ID = id
			recs[i] = cloneRecord(rec)
			return cloneRecord(rec), nil
		}
	}
	return Record{}, notFound("store.Memory.Update", collection, id)
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.collections[collection]
	kept := recs[:0]
	for _, r := range recs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.collections[collection] = kept
	return nil
}

func (m *Memory) Close() error { return nil }

func cloneRecord(r Record) Record {
	data := make(json.RawMessage, len(r.Data))
	copy(data, r.Data)
	return Record{ID: r.ID, Data: data}
}
