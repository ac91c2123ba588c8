// Package client wires the workbench's local sqlite database: it opens the
// file, applies embedded goose migrations and hands out the repositories.
package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/metadata"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/migrations"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/syncstate"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Repositories bundles every store backed by the local database.
type Repositories struct {
	Records  syncstate.Repository
	Grants   vault.Repository
	Metadata metadata.Repository
	DB       *sql.DB
}

// RunMigrations applies the embedded schema migrations. Safe to call on every
// startup; goose skips what is already applied.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the sqlite database at dsn, brings
// the schema up to date and returns the repositories over it. The caller owns
// Repositories.DB and must close it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database %s: %w", dsn, err)
	}

	return &Repositories{
		Records:  syncstate.NewSQLiteRepository(db),
		Grants:   vault.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
