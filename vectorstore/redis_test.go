package vectorstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisStore creates a miniredis instance and returns a connected RedisStore.
func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestRedisStore_UpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	s := setupRedisStore(t)
	require.NoError(t, s.Upsert(ctx, "ns", seedItems()))

	matches, err := s.Search(ctx, "ns", []float64{1, 0.75, 0}, 3, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "cats", matches[0].ID)
	assert.Equal(t, "dogs", matches[1].ID)
}

func TestRedisStore_Search_TopK(t *testing.T) {
	ctx := context.Background()
	s := setupRedisStore(t)
	require.NoError(t, s.Upsert(ctx, "ns", seedItems()))

	matches, err := s.Search(ctx, "ns", []float64{1, 0.75, 0}, 1, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "cats", matches[0].ID)
}

func TestRedisStore_Search_EmptyNamespace(t *testing.T) {
	s := setupRedisStore(t)
	matches, err := s.Search(context.Background(), "nope", []float64{1}, 5, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRedisStore_GetByID_Delete(t *testing.T) {
	ctx := context.Background()
	s := setupRedisStore(t)
	require.NoError(t, s.Upsert(ctx, "ns", seedItems()))

	item, err := s.GetByID(ctx, "ns", "dogs")
	require.NoError(t, err)
	assert.Equal(t, "dogs are mammals", item.Content)
	assert.Equal(t, []float64{0.75, 1, 0}, item.Vector)

	_, err = s.GetByID(ctx, "ns", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "ns", "dogs"))
	assert.ErrorIs(t, s.Delete(ctx, "ns", "dogs"), ErrNotFound)
}

func TestRedisStore_Upsert_Invalid(t *testing.T) {
	s := setupRedisStore(t)

	err := s.Upsert(context.Background(), "ns", []Item{{ID: "", Vector: []float64{1}}})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestRedisStore_NamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	s := setupRedisStore(t)
	require.NoError(t, s.Upsert(ctx, "a", seedItems()[:1]))

	matches, err := s.Search(ctx, "b", []float64{1, 0.75, 0}, 5, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
