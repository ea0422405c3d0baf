package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_MissingKey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	value, ok, err := store.Get(ctx, "user:u1", "fertilizers")
	require.NoError(t, err, "missing key must not be an error")
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSQLiteStore_SetGetRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user:u1", "fertilizers", `[{"id":"f1"}]`))

	value, ok, err := store.Get(ctx, "user:u1", "fertilizers")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"f1"}]`, value)
}

func TestSQLiteStore_SetReplacesPreviousValue(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user:u1", "seeds", "old"))
	require.NoError(t, store.Set(ctx, "user:u1", "seeds", "new"))

	value, ok, err := store.Get(ctx, "user:u1", "seeds")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}

func TestSQLiteStore_NamespacesAreIsolated(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user:alice", "seeds", "alice-data"))
	require.NoError(t, store.Set(ctx, "user:bob", "seeds", "bob-data"))

	value, ok, err := store.Get(ctx, "user:alice", "seeds")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice-data", value)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "auth", "current_session", "{}"))
	require.NoError(t, store.Delete(ctx, "auth", "current_session"))

	_, ok, err := store.Get(ctx, "auth", "current_session")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op, not an error
	require.NoError(t, store.Delete(ctx, "auth", "current_session"))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "user:u1", "equipment", "[]"))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "user:u1", "equipment")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)
}
