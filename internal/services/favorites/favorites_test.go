package favorites

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"showtimes/proj/internal/domain/models"
	"showtimes/proj/internal/storage"
	"showtimes/proj/internal/storage/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*FavoriteService, storage.KeyValue) {
	t.Helper()
	store, err := sqlite.Open(":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(slog.Default(), store), store
}

func ids(movies []models.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ObjectID)
	}
	return out
}

func TestFavoriteService_Add(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	assert.Empty(t, svc.List(ctx))
	require.NoError(t, svc.Add(ctx, models.Movie{ObjectID: "a", Title: "Flow"}))
	require.NoError(t, svc.Add(ctx, models.Movie{ObjectID: "b", Title: "Anora"}))
	require.NoError(t, svc.Add(ctx, models.Movie{ObjectID: "a", Title: "Flow (again)"}))

	list := svc.List(ctx)
	assert.Equal(t, []string{"a", "b"}, ids(list))
	assert.Equal(t, "Flow", list[0].Title)
	assert.Equal(t, 2, svc.Count(ctx))
	assert.True(t, svc.IsFavorite(ctx, "b"))
	assert.False(t, svc.IsFavorite(ctx, "c"))

	assert.ErrorIs(t, svc.Add(ctx, models.Movie{Title: "no id"}), ErrMissingID)
}

func TestFavoriteService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Add(ctx, models.Movie{ObjectID: id}))
	}

	require.NoError(t, svc.Remove(ctx, "b"))
	assert.Equal(t, []string{"a", "c"}, ids(svc.List(ctx)))
	require.NoError(t, svc.Remove(ctx, "missing"))
	assert.Equal(t, []string{"a", "c"}, ids(svc.List(ctx)))
}

func TestFavoriteService_Reorder(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Add(ctx, models.Movie{ObjectID: id}))
	}

	reordered := []models.Movie{{ObjectID: "c"}, {ObjectID: "a"}, {ObjectID: "b"}}
	require.NoError(t, svc.Reorder(ctx, reordered))
	assert.Equal(t, []string{"c", "a", "b"}, ids(svc.List(ctx)))

	reloaded := New(slog.Default(), store)
	assert.Equal(t, []string{"c", "a", "b"}, ids(reloaded.List(ctx)))

	err := svc.Reorder(ctx, []models.Movie{{ObjectID: "a"}, {ObjectID: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateMovies)
	assert.Equal(t, []string{"c", "a", "b"}, ids(svc.List(ctx)))

	require.NoError(t, svc.Reorder(ctx, nil))
	assert.Empty(t, svc.List(ctx))
}

func TestFavoriteService_CorruptData(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, store.Set(ctx, favoritesKey, []byte("{not json")))

	assert.NotNil(t, svc.List(ctx))
	assert.Empty(t, svc.List(ctx))
	assert.False(t, svc.IsFavorite(ctx, "a"))

	assert.Error(t, svc.Add(ctx, models.Movie{ObjectID: "a"}))
	raw, err := store.Get(ctx, favoritesKey)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))

	require.NoError(t, svc.Reorder(ctx, []models.Movie{{ObjectID: "a"}}))
	assert.Equal(t, []string{"a"}, ids(svc.List(ctx)))
}

type brokenStore struct {
	storage.KeyValue
	err error
}

func (b *brokenStore) Get(context.Context, string) ([]byte, error) { return nil, b.err }

func (b *brokenStore) Set(context.Context, string, []byte) error { return b.err }

func TestFavoriteService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	errDisk := errors.New("disk full")
	svc := New(slog.Default(), &brokenStore{err: errDisk})

	assert.Empty(t, svc.List(ctx))
	assert.False(t, svc.IsFavorite(ctx, "a"))
	assert.ErrorIs(t, svc.Add(ctx, models.Movie{ObjectID: "a"}), errDisk)
	assert.ErrorIs(t, svc.Reorder(ctx, []models.Movie{{ObjectID: "a"}}), errDisk)
}

// flakyReads fails Get on demand and delegates everything else.
type flakyReads struct {
	storage.KeyValue
	failGet error
}

func (f *flakyReads) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.KeyValue.Get(ctx, key)
}

func TestFavoriteService_ReadFailureOnWrite(t *testing.T) {
	ctx := context.Background()
	_, store := newTestService(t)
	flaky := &flakyReads{KeyValue: store}
	svc := New(slog.Default(), flaky)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, svc.Add(ctx, models.Movie{ObjectID: id}))
	}

	errTimeout := errors.New("i/o timeout")
	flaky.failGet = errTimeout
	assert.ErrorIs(t, svc.Add(ctx, models.Movie{ObjectID: "d"}), errTimeout)
	assert.ErrorIs(t, svc.Remove(ctx, "a"), errTimeout)
	assert.Empty(t, svc.List(ctx))

	flaky.failGet = nil
	assert.Equal(t, []string{"a", "b", "c"}, ids(svc.List(ctx)))
}
