package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"showtimes/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "@favorites")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("set and overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "review:1", []byte(`{"rating":3}`)))
		require.NoError(t, store.Set(ctx, "review:1", []byte(`{"rating":5}`)))
		value, err := store.Get(ctx, "review:1")
		require.NoError(t, err)
		assert.Equal(t, `{"rating":5}`, string(value))
	})
	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "review:1"))
		require.NoError(t, store.Delete(ctx, "review:1"))
		_, err := store.Get(ctx, "review:1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "showtimes.db")

	store, err := Open(path, time.Second)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "@favorites", []byte(`[]`)))
	require.NoError(t, store.Close())

	reopened, err := Open(path, time.Second)
	require.NoError(t, err)
	defer reopened.Close()
	value, err := reopened.Get(ctx, "@favorites")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))
}
