package skills

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/jobboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore accepts reads but rejects every write.
type failingStore struct {
	*store.Memory
}

func (f failingStore) Create(context.Context, string, store.Record) (store.Record, error) {
	return store.Record{}, errors.New("quota exceeded")
}

func TestVocabulary_LoadSeedsEmptyCollection(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	v := NewVocabulary(mem, nil)
	require.NoError(t, v.Load(ctx))
	assert.Equal(t, DefaultSkills, v.All())

	recs, err := mem.FetchAll(ctx, store.CollectionSkills)
	require.NoError(t, err)
	assert.Len(t, recs, len(DefaultSkills))

	// a second vocabulary over the same store reads instead of reseeding
	again := NewVocabulary(mem, nil)
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, DefaultSkills, again.All())
}

func TestVocabulary_AppendDedupesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	v := NewStaticVocabulary("React", "Go")

	added, err := v.Append(ctx, "  react ")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = v.Append(ctx, "Rust")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = v.Append(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"React", "Go", "Rust"}, v.All())
}

func TestVocabulary_AppendPersists(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	v := NewVocabulary(mem, nil)
	require.NoError(t, v.Load(ctx))

	added, err := v.Append(ctx, "Kotlin")
	require.NoError(t, err)
	assert.True(t, added)

	reloaded := NewVocabulary(mem, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.Contains("kotlin"))
	assert.Equal(t, len(DefaultSkills)+1, reloaded.Len())
}

func TestVocabulary_AppendKeepsMemoryOnStoreFailure(t *testing.T) {
	v := NewVocabulary(failingStore{store.NewMemory()}, nil)

	added, err := v.Append(context.Background(), "Elixir")
	assert.True(t, added)
	assert.Error(t, err)
	assert.True(t, v.Contains("Elixir"))
}

func TestVocabulary_Search(t *testing.T) {
	v := NewStaticVocabulary("React", "Redux", "Redux Toolkit", "Node.js", "CSS", "SCSS")

	tests := []struct {
		name    string
		query   string
		exclude []string
		want    []string
	}{
		{"substring keeps vocabulary order", "re", nil, []string{"React", "Redux", "Redux Toolkit"}},
		{"case-insensitive", "CSS", nil, []string{"CSS", "SCSS"}},
		{"excludes selected verbatim", "redux", []string{"Redux"}, []string{"Redux Toolkit"}},
		{"exclude is case-sensitive", "redux", []string{"redux"}, []string{"Redux", "Redux Toolkit"}},
		{"blank query", "  ", nil, nil},
		{"no match", "haskell", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Search(tt.query, tt.exclude))
		})
	}
}
