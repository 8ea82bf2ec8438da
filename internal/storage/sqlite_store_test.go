package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "roulette-test.db")
	store, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetMissingKey(t *testing.T) {
	store := setupStore(t)
	_, err := store.Get(t.Context(), KeyTasks)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetGetRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, KeyCredits, []byte("3")))
	got, err := store.Get(ctx, KeyCredits)
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)

	// Upsert overwrites in place.
	require.NoError(t, store.Set(ctx, KeyCredits, []byte("5")))
	got, err = store.Get(ctx, KeyCredits)
	require.NoError(t, err)
	assert.Equal(t, []byte("5"), got)
}

func TestDeleteKey(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, KeyActiveTask, []byte(`"Clean bank"`)))
	require.NoError(t, store.Delete(ctx, KeyActiveTask))
	_, err := store.Get(ctx, KeyActiveTask)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is fine.
	require.NoError(t, store.Delete(ctx, KeyActiveTask))
}

func TestJSONHelpers(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	tasks := []string{"Fishing trip", "Slayer task"}
	require.NoError(t, PutJSON(ctx, store, KeyTasks, tasks))

	var got []string
	require.NoError(t, GetJSON(ctx, store, KeyTasks, &got))
	assert.Equal(t, tasks, got)

	var missing int
	assert.ErrorIs(t, GetJSON(ctx, store, KeyStreak, &missing), ErrNotFound)
	assert.Zero(t, missing)
}

func TestGetJSONRejectsCorruptValue(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, KeyCredits, []byte("{not json")))
	var credits int
	assert.Error(t, GetJSON(ctx, store, KeyCredits, &credits))
}

func TestMigrateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateUp(db))
	require.NoError(t, MigrateDown(db))
	require.NoError(t, MigrateUp(db))

	store, err := NewSQLiteStore(db)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), KeyStreak, []byte("4")))
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := t.Context()

	value := []byte(`["A"]`)
	require.NoError(t, store.Set(ctx, KeyTasks, value))
	value[2] = 'B'

	got, err := store.Get(ctx, KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["A"]`), got, "store must not alias caller buffers")

	got[2] = 'C'
	again, err := store.Get(ctx, KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["A"]`), again)
}
