package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/tfidf"
)

func buildIndex(t *testing.T) *domain.Index {
	t.Helper()
	idx, err := tfidf.Build([]domain.Document{
		{Path: "a.txt", Content: "the cat sat"},
		{Path: "b.txt", Content: "the dog ran"},
	})
	require.NoError(t, err)
	idx.BuildID = "build-1"
	idx.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return idx
}

func TestIndexStore_LoadMissing(t *testing.T) {
	store := NewIndexStore()

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrIndexNotFound))

	ok, err := store.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIndexStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewIndexStore()
	idx := buildIndex(t)

	require.NoError(t, store.Save(ctx, idx))
	got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, idx, got)
	assert.Equal(t, 1, store.Saves())

	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIndexStore_CopiesOnSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewIndexStore()
	idx := buildIndex(t)
	require.NoError(t, store.Save(ctx, idx))

	idx.Metadata[0].Path = "mutated"
	idx.Vectors[0].Values[0] = 42

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Metadata[0].Path)
	assert.NotEqual(t, 42.0, got.Vectors[0].Values[0])
}

func TestIndexStore_RejectsCorruptIndex(t *testing.T) {
	store := NewIndexStore()
	idx := buildIndex(t)
	idx.Metadata = idx.Metadata[:1]

	err := store.Save(context.Background(), idx)
	assert.True(t, errors.Is(err, domain.ErrIndexCorrupt))
	assert.Equal(t, 0, store.Saves())
}

func TestIndexStore_ReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	store := NewIndexStore()
	first := buildIndex(t)
	require.NoError(t, store.Save(ctx, first))

	second := buildIndex(t)
	second.BuildID = "build-2"
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "build-2", got.BuildID)
}
