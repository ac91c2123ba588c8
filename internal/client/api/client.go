// Package api implements the REST contract consumed by the sync engine.
//
// The backend is an external collaborator: the client only ever reads file
// metadata/content and requests writes tagged with a target version. A write
// rejected by the server's optimistic-concurrency check surfaces as
// common.ErrVersionConflict.
package api

import (
	"context"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/models"
)

// Client describes the remote operations the workbench needs.
type Client interface {
	// Login authenticates and stores the bearer token for subsequent calls.
	Login(ctx context.Context, email, password string) (string, error)

	// SetToken installs a previously obtained bearer token.
	SetToken(token string)

	// GetProject returns project metadata, including base_folder_path.
	GetProject(ctx context.Context, projectID int64) (*models.Project, error)

	// ListFiles returns all files in a project; the baseline for sync decisions.
	ListFiles(ctx context.Context, projectID int64) ([]models.RemoteFile, error)

	// GetFile returns current metadata for a single file.
	GetFile(ctx context.Context, projectID, fileID int64) (*models.RemoteFile, error)

	// DownloadFile returns the raw content bytes of a file.
	DownloadFile(ctx context.Context, projectID, fileID int64) ([]byte, error)

	// CreateFile creates a markdown file server-side and returns the created
	// record, including the server-assigned initial version.
	CreateFile(ctx context.Context, projectID int64, filename, content string) (*models.RemoteFile, error)

	// UpdateFile pushes new content tagged with a target version. Returns
	// common.ErrVersionConflict when the server's version advanced
	// concurrently.
	UpdateFile(ctx context.Context, projectID, fileID int64, filename string, content []byte, version int64) (*models.RemoteFile, error)
}
