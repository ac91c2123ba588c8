package sync

import (
	"context"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
	"github.com/mohsen-hassani/manuscript-workbench/internal/common"
)

// Summary is the aggregate outcome of a bulk sync.
type Summary struct {
	Synced int
	Failed int
}

// SyncAll reconciles every file in the project, sequentially. It requires a
// granted vault directory up front and refuses to start a partial run
// without one. A single file's failure is counted and the batch continues;
// the summary is always reported.
func (e *Engine) SyncAll(ctx context.Context, projectID int64) (Summary, error) {
	if !e.beginBulk() {
		return Summary{}, common.ErrBulkSyncInProgress
	}
	defer e.endBulk()

	dir, err := e.grants.GetDirectoryHandle(ctx, projectID)
	if err != nil {
		return Summary{}, err
	}
	if dir == nil {
		e.notify.Notify(ctx, "Please set the vault directory first")
		return Summary{}, common.ErrNoVaultDirectory
	}
	if !e.verifier.VerifyPermission(ctx, dir, vault.ModeReadWrite) {
		e.notify.Notify(ctx, "Please set the vault directory first")
		return Summary{}, common.ErrPermissionDenied
	}

	files, err := e.api.ListFiles(ctx, projectID)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, file := range files {
		// Sequential on purpose: one writer in the vault, and server
		// updates stay ordered. The listing is the metadata; no per-file
		// re-fetch.
		if err := e.SyncListed(ctx, projectID, &file); err != nil {
			e.log.Warn(ctx, "file failed during bulk sync",
				"file_id", file.ID, "filename", file.OriginalFilename, "error", err)
			summary.Failed++
			continue
		}
		summary.Synced++
	}

	e.notify.Notify(ctx, "Sync complete: %d files synced, %d failed", summary.Synced, summary.Failed)
	return summary, nil
}

func (e *Engine) beginBulk() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.bulkBusy {
		return false
	}
	e.bulkBusy = true
	return true
}

func (e *Engine) endBulk() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bulkBusy = false
}
