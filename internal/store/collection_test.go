package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (w widget) RecordID() string { return w.ID }

func TestCollection_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[widget](NewMemory(), "widgets")

	_, err := c.Create(ctx, widget{ID: "w1", Name: "first"})
	require.NoError(t, err)
	_, err = c.Create(ctx, widget{ID: "w2", Name: "second"})
	require.NoError(t, err)

	_, err = c.Update(ctx, widget{ID: "w1", Name: "renamed"})
	require.NoError(t, err)

	all, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []widget{{ID: "w1", Name: "renamed"}, {ID: "w2", Name: "second"}}, all)

	got, ok, err := c.Find(ctx, "w2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", got.Name)

	_, ok, err = c.Find(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Delete(ctx, "w1"))
	all, err = c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCollection_UpdateMissingIsNotFound(t *testing.T) {
	c := NewCollection[widget](NewMemory(), "widgets")
	_, err := c.Update(context.Background(), widget{ID: "ghost"})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestCollection_CorruptRecordIsStoreError(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Create(ctx, "widgets", Record{ID: "bad", Data: json.RawMessage(`not json`)})
	require.NoError(t, err)

	_, err = NewCollection[widget](m, "widgets").All(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindStore))
}
