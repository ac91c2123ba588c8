package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/models"
	"github.com/mohsen-hassani/manuscript-workbench/internal/dbx"
)

// Repository durably retains directory grants per project. Grants survive
// restarts; they are only removed when the user explicitly clears or
// replaces them.
type Repository interface {
	// SaveDirectoryHandle retains handle for projectID, stamping the grant
	// time.
	SaveDirectoryHandle(ctx context.Context, projectID int64, handle *DirHandle) error

	// GetDirectoryHandle returns the retained handle, or nil when the
	// project has no grant. The handle's permission must still be verified
	// before use.
	GetDirectoryHandle(ctx context.Context, projectID int64) (*DirHandle, error)

	// GetGrant returns the full grant record for display purposes.
	GetGrant(ctx context.Context, projectID int64) (*models.DirectoryGrant, error)

	// RemoveDirectoryHandle drops the grant for projectID.
	RemoveDirectoryHandle(ctx context.Context, projectID int64) error
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveDirectoryHandle(ctx context.Context, projectID int64, handle *DirHandle) error {
	query := `INSERT INTO directory_grants (project_id, path, granted_at)
			VALUES (?, ?, ?)
			ON CONFLICT(project_id) DO UPDATE SET path = excluded.path,
				granted_at = excluded.granted_at
	`
	_, err := r.db.ExecContext(ctx, query, projectID, handle.Path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save directory grant for project %d: %w", projectID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetDirectoryHandle(ctx context.Context, projectID int64) (*DirHandle, error) {
	grant, err := r.GetGrant(ctx, projectID)
	if err != nil || grant == nil {
		return nil, err
	}
	return &DirHandle{Path: grant.Path}, nil
}

func (r *SQLiteRepository) GetGrant(ctx context.Context, projectID int64) (*models.DirectoryGrant, error) {
	var grant models.DirectoryGrant
	err := r.db.QueryRowContext(ctx,
		`SELECT project_id, path, granted_at FROM directory_grants WHERE project_id = ?`, projectID).
		Scan(&grant.ProjectID, &grant.Path, &grant.GrantedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get directory grant for project %d: %w", projectID, err)
	}
	return &grant, nil
}

func (r *SQLiteRepository) RemoveDirectoryHandle(ctx context.Context, projectID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM directory_grants WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("failed to remove directory grant for project %d: %w", projectID, err)
	}
	return nil
}
