package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return db
}

func TestSetGetDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	got, err := r.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, r.Set(ctx, KeyAuthToken, []byte("tok1")))
	require.NoError(t, r.Set(ctx, KeyAuthToken, []byte("tok2")))

	got, err = r.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok2"), got)

	require.NoError(t, r.Delete(ctx, KeyAuthToken))
	require.NoError(t, r.Delete(ctx, KeyAuthToken))

	got, err = r.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Nil(t, got)
}
