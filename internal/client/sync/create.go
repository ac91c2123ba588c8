package sync

import (
	"context"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/models"
	"github.com/mohsen-hassani/manuscript-workbench/internal/common"
	"github.com/mohsen-hassani/manuscript-workbench/internal/hashx"
)

// CreateFile creates a markdown file remotely, then mirrors it into the
// vault on a best-effort basis.
//
// Two preconditions are checked independently, each with its own
// remediation hint: the vault grant (when the host supports directory
// access at all) and the project's configured base folder path. The server
// create runs first — the server owns identity and version — and a local
// write failure afterwards is reported but never rolls the remote creation
// back; the file simply syncs later through the first-sync path. The ledger
// is seeded only when a local baseline was actually written.
func (e *Engine) CreateFile(ctx context.Context, projectID int64, filename, content string) (*models.RemoteFile, error) {
	dir := e.grantedHandle(ctx, projectID)

	if e.probe.SupportsDirectoryAccess() && dir == nil {
		e.notify.Notify(ctx, "Directory permission not granted. Set your vault directory to enable automatic synchronization.")
		return nil, common.ErrNoVaultDirectory
	}

	project, err := e.api.GetProject(ctx, projectID)
	if err != nil {
		e.notify.Notify(ctx, "Failed to create file: %v", err)
		return nil, err
	}
	if project.BaseFolderPath == "" {
		e.notify.Notify(ctx, "Project base directory not configured. Set the vault base directory in project settings.")
		return nil, common.ErrBasePathNotSet
	}

	created, err := e.api.CreateFile(ctx, projectID, filename, content)
	if err != nil {
		e.notify.Notify(ctx, "Failed to create file on server: %v", err)
		return nil, err
	}
	log := e.log.With("project_id", projectID, "file_id", created.ID)
	log.Info(ctx, "file created on server", "filename", filename, "version", created.Version)

	if dir == nil {
		e.notify.Notify(ctx, "Created %s on server (not written to vault - no permission)", filename)
		return created, nil
	}

	handle, err := e.gateway.CreateOrGetFileHandle(dir, filename)
	if err == nil {
		err = e.gateway.WriteFile(handle, []byte(content))
	}
	if err != nil {
		log.Warn(ctx, "vault write after create failed", "error", err)
		e.notify.Notify(ctx, "Created %s on server, but failed to write to vault. You can sync it later.", filename)
		return created, nil
	}

	hash := hashx.HashContent([]byte(content))
	if err := e.records.Save(ctx, created.ID, created.Version, hash, filename); err != nil {
		return created, err
	}

	e.notify.Notify(ctx, "Created %s on server and in your vault", filename)
	return created, nil
}
