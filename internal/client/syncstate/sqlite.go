package syncstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/models"
	"github.com/mohsen-hassani/manuscript-workbench/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts the full record for a file id, refreshing downloaded_at.
func (r *SQLiteRepository) Save(ctx context.Context, fileID, version int64, hash, filename string) error {
	query := `INSERT INTO sync_records (file_id, version, hash, downloaded_at, filename)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(file_id) DO UPDATE SET version = excluded.version,
				hash = excluded.hash,
				downloaded_at = excluded.downloaded_at,
				filename = excluded.filename
	`
	_, err := r.db.ExecContext(ctx, query, fileID, version, hash, time.Now().UTC(), filename)
	if err != nil {
		return fmt.Errorf("failed to save sync record %d: %w", fileID, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, fileID int64) (*models.SyncRecord, error) {
	query := `SELECT file_id, version, hash, downloaded_at, filename FROM sync_records WHERE file_id = ?`

	var rec models.SyncRecord
	err := r.db.QueryRowContext(ctx, query, fileID).
		Scan(&rec.FileID, &rec.Version, &rec.Hash, &rec.DownloadedAt, &rec.Filename)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync record %d: %w", fileID, err)
	}
	return &rec, nil
}

// Update touches only version and hash. Absent records are left absent.
func (r *SQLiteRepository) Update(ctx context.Context, fileID, version int64, hash string) error {
	query := `UPDATE sync_records SET version = ?, hash = ? WHERE file_id = ?`
	_, err := r.db.ExecContext(ctx, query, version, hash, fileID)
	if err != nil {
		return fmt.Errorf("failed to update sync record %d: %w", fileID, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, fileID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sync_records WHERE file_id = ?`, fileID)
	if err != nil {
		return fmt.Errorf("failed to remove sync record %d: %w", fileID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.SyncRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT file_id, version, hash, downloaded_at, filename FROM sync_records ORDER BY file_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync records: %w", err)
	}
	defer rows.Close()

	var result []models.SyncRecord
	for rows.Next() {
		var rec models.SyncRecord
		if err := rows.Scan(&rec.FileID, &rec.Version, &rec.Hash, &rec.DownloadedAt, &rec.Filename); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
