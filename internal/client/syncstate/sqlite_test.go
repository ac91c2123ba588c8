package syncstate

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE sync_records (
  file_id INTEGER PRIMARY KEY,
  version INTEGER NOT NULL,
  hash TEXT NOT NULL,
  downloaded_at TIMESTAMP NOT NULL,
  filename TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSave_InsertAndReplace(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 3, 1, "h1", "ch1.md"))

	rec, err := r.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, int64(1), rec.Version)
	assert.Equal(t, "h1", rec.Hash)
	assert.Equal(t, "ch1.md", rec.Filename)
	assert.WithinDuration(t, time.Now().UTC(), rec.DownloadedAt, 5*time.Second)

	// full replace on the same file id
	require.NoError(t, r.Save(ctx, 3, 4, "h2", "renamed.md"))

	rec, err = r.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, int64(4), rec.Version)
	assert.Equal(t, "h2", rec.Hash)
	assert.Equal(t, "renamed.md", rec.Filename)
}

func TestGet_AbsentReturnsNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	rec, err := r.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestUpdate_TouchesOnlyVersionAndHash(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 3, 1, "h1", "ch1.md"))
	before, err := r.Get(ctx, 3)
	require.NoError(t, err)

	require.NoError(t, r.Update(ctx, 3, 2, "h2"))

	after, err := r.Get(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, int64(2), after.Version)
	assert.Equal(t, "h2", after.Hash)
	assert.Equal(t, before.Filename, after.Filename)
	assert.Equal(t, before.DownloadedAt, after.DownloadedAt)
}

func TestUpdate_NoopWhenAbsent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Update(ctx, 42, 2, "h2"))

	rec, err := r.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, rec, "update must never fabricate a record")
}

func TestRemove(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 3, 1, "h1", "ch1.md"))
	require.NoError(t, r.Remove(ctx, 3))

	rec, err := r.Get(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestList_OrderedByFileID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, 9, 1, "h9", "b.md"))
	require.NoError(t, r.Save(ctx, 3, 2, "h3", "a.md"))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(3), all[0].FileID)
	assert.Equal(t, int64(9), all[1].FileID)
}
