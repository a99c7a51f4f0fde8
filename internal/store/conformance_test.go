package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runConformance exercises the Store contract against any backend. The
// collection name must be unused in that backend.
func runConformance(t *testing.T, s Store, collection string) {
	t.Helper()
	ctx := context.Background()

	t.Run("FetchAll on absent collection is empty", func(t *testing.T) {
		recs, err := s.FetchAll(ctx, collection+"_absent")
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("Create keeps insertion order", func(t *testing.T) {
		for _, id := range []string{"b", "a", "c"} {
			_, err := s.Create(ctx, collection, Record{ID: id, Data: json.RawMessage(`{"id":"` + id + `"}`)})
			require.NoError(t, err)
		}
		recs, err := s.FetchAll(ctx, collection)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "b", recs[0].ID)
		assert.Equal(t, "a", recs[1].ID)
		assert.Equal(t, "c", recs[2].ID)
	})

	t.Run("Create rejects duplicate id", func(t *testing.T) {
		_, err := s.Create(ctx, collection, Record{ID: "a", Data: json.RawMessage(`{}`)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConflict)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("Update replaces in place", func(t *testing.T) {
		_, err := s.Update(ctx, collection, "a", Record{ID: "a", Data: json.RawMessage(`{"id":"a","v":2}`)})
		require.NoError(t, err)

		recs, err := s.FetchAll(ctx, collection)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "a", recs[1].ID)
		assert.JSONEq(t, `{"id":"a","v":2}`, string(recs[1].Data))
	})

	t.Run("Update missing id is not found", func(t *testing.T) {
		_, err := s.Update(ctx, collection, "zzz", Record{ID: "zzz", Data: json.RawMessage(`{}`)})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})

	t.Run("Delete removes and tolerates missing ids", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, collection, "b"))
		require.NoError(t, s.Delete(ctx, collection, "b"))

		recs, err := s.FetchAll(ctx, collection)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "a", recs[0].ID)
		assert.Equal(t, "c", recs[1].ID)
	})
}
