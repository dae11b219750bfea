package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItems() []Item {
	return []Item{
		{ID: "cats", Content: "cats are mammals", Vector: []float64{1, 0.75, 0}},
		{ID: "dogs", Content: "dogs are mammals", Vector: []float64{0.75, 1, 0}},
		{ID: "stocks", Content: "stock market rallied", Vector: []float64{0, 0, 1}},
	}
}

func TestMemoryStore_UpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Upsert(ctx, "ns", seedItems()))

	matches, err := s.Search(ctx, "ns", []float64{1, 0.75, 0}, 2, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "cats", matches[0].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "dogs", matches[1].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestMemoryStore_Search_MinScoreFilters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Upsert(ctx, "ns", seedItems()))

	matches, err := s.Search(ctx, "ns", []float64{0, 0, 1}, 10, 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "stocks", matches[0].ID)
}

func TestMemoryStore_Search_UnknownNamespace(t *testing.T) {
	s := NewMemoryStore()
	matches, err := s.Search(context.Background(), "nope", []float64{1}, 5, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMemoryStore_Upsert_Invalid(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Upsert(ctx, "ns", []Item{{ID: "", Vector: []float64{1}}})
	assert.ErrorIs(t, err, ErrInvalidItem)

	err = s.Upsert(ctx, "ns", []Item{{ID: "x"}})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestMemoryStore_Upsert_Replaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Upsert(ctx, "ns", []Item{{ID: "a", Content: "v1", Vector: []float64{1}}}))
	require.NoError(t, s.Upsert(ctx, "ns", []Item{{ID: "a", Content: "v2", Vector: []float64{1}}}))

	item, err := s.GetByID(ctx, "ns", "a")
	require.NoError(t, err)
	assert.Equal(t, "v2", item.Content)
}

func TestMemoryStore_GetByID_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Upsert(ctx, "ns", seedItems()))

	item, err := s.GetByID(ctx, "ns", "cats")
	require.NoError(t, err)
	assert.Equal(t, "cats are mammals", item.Content)

	_, err = s.GetByID(ctx, "ns", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "ns", "cats"))
	_, err = s.GetByID(ctx, "ns", "cats")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "ns", "cats"), ErrNotFound)
}
