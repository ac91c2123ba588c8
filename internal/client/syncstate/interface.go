package syncstate

import (
	"context"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/models"
)

// Repository is the durable sync ledger: the engine's source of truth for
// "what we last synchronized" per remote file.
type Repository interface {
	// Save creates or fully replaces the record for fileID, stamping
	// DownloadedAt with the current time.
	Save(ctx context.Context, fileID, version int64, hash, filename string) error

	// Get returns the record for fileID, or nil when the file has never been
	// synchronized.
	Get(ctx context.Context, fileID int64) (*models.SyncRecord, error)

	// Update mutates only version and hash of an existing record. It is a
	// no-op when no record exists; callers establish the baseline with Save
	// first.
	Update(ctx context.Context, fileID, version int64, hash string) error

	// Remove deletes the record for fileID.
	Remove(ctx context.Context, fileID int64) error

	// List returns all records, ordered by file id.
	List(ctx context.Context) ([]models.SyncRecord, error)
}
