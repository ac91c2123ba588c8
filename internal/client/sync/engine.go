package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"

	"github.com/google/uuid"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/api"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/models"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/syncstate"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
	"github.com/mohsen-hassani/manuscript-workbench/internal/common"
	"github.com/mohsen-hassani/manuscript-workbench/internal/hashx"
	"github.com/mohsen-hassani/manuscript-workbench/internal/logging"
)

// Engine reconciles server-held, versioned files against their local copies.
//
// Per file it decides between pull, push, conflict and no-op based on the
// ledger baseline, the local content hash and the server version. Ledger
// mutations happen only after the corresponding remote or local operation
// confirmed success, so a failed sync leaves the baseline untouched and a
// retry re-evaluates from the same state.
type Engine struct {
	api      api.Client
	records  syncstate.Repository
	grants   vault.Repository
	gateway  *vault.Gateway
	verifier *vault.Verifier
	probe    *vault.Probe
	picker   FilePicker
	notify   Notifier
	log      logging.Logger

	downloadsDir string

	mu       stdsync.Mutex
	inFlight map[int64]struct{}
	bulkBusy bool
}

// Options carries the engine's collaborators. Zero-value fields get safe
// defaults; Picker may stay nil when the host has no interactive picker, in
// which case picker-path syncs report cancellation.
type Options struct {
	Gateway      *vault.Gateway
	Verifier     *vault.Verifier
	Probe        *vault.Probe
	Picker       FilePicker
	Notifier     Notifier
	Logger       logging.Logger
	DownloadsDir string
}

func NewEngine(apiClient api.Client, records syncstate.Repository, grants vault.Repository, opts Options) *Engine {
	if opts.Gateway == nil {
		opts.Gateway = vault.NewGateway()
	}
	if opts.Verifier == nil {
		opts.Verifier = vault.NewVerifier(nil)
	}
	if opts.Probe == nil {
		opts.Probe = vault.NewProbe(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.DownloadsDir == "" {
		opts.DownloadsDir = "downloads"
	}

	return &Engine{
		api:          apiClient,
		records:      records,
		grants:       grants,
		gateway:      opts.Gateway,
		verifier:     opts.Verifier,
		probe:        opts.Probe,
		picker:       opts.Picker,
		notify:       opts.Notifier,
		log:          opts.Logger,
		downloadsDir: opts.DownloadsDir,
		inFlight:     make(map[int64]struct{}),
	}
}

// SyncFile reconciles a single file. A second request for a file whose sync
// is still pending is ignored (common.ErrSyncInProgress), not queued.
func (e *Engine) SyncFile(ctx context.Context, projectID, fileID int64) error {
	if !e.beginFile(fileID) {
		return common.ErrSyncInProgress
	}
	defer e.endFile(fileID)

	log := e.log.With("sync_id", uuid.NewString(), "project_id", projectID, "file_id", fileID)

	remote, err := e.api.GetFile(ctx, projectID, fileID)
	if err != nil {
		log.Error(ctx, "fetching remote metadata failed", "error", err)
		e.notify.Notify(ctx, "Failed to sync file: %v", err)
		return err
	}

	return e.syncRemote(ctx, log, projectID, remote)
}

// SyncListed reconciles a file whose current metadata the caller already
// holds, typically an entry of a fresh ListFiles result. It skips the
// per-file metadata fetch that SyncFile performs, so an unchanged file costs
// no network calls at all.
func (e *Engine) SyncListed(ctx context.Context, projectID int64, remote *models.RemoteFile) error {
	if !e.beginFile(remote.ID) {
		return common.ErrSyncInProgress
	}
	defer e.endFile(remote.ID)

	log := e.log.With("sync_id", uuid.NewString(), "project_id", projectID, "file_id", remote.ID)
	return e.syncRemote(ctx, log, projectID, remote)
}

// syncRemote runs the per-file decision tree against known remote metadata.
func (e *Engine) syncRemote(ctx context.Context, log logging.Logger, projectID int64, remote *models.RemoteFile) error {
	rec, err := e.records.Get(ctx, remote.ID)
	if err != nil {
		e.notify.Notify(ctx, "Failed to sync %s: %v", remote.OriginalFilename, err)
		return err
	}

	if rec == nil {
		return e.firstSync(ctx, log, projectID, remote)
	}

	ch := e.channelFor(ctx, log, projectID, rec)
	return e.reconcile(ctx, log, projectID, remote, rec, ch)
}

// firstSync establishes the baseline: always a pull, never a version
// comparison.
func (e *Engine) firstSync(ctx context.Context, log logging.Logger, projectID int64, remote *models.RemoteFile) error {
	content, err := e.api.DownloadFile(ctx, projectID, remote.ID)
	if err != nil {
		log.Error(ctx, "first-sync download failed", "error", err)
		e.notify.Notify(ctx, "Failed to sync %s: %v", remote.OriginalFilename, err)
		return err
	}
	hash := hashx.HashContent(content)

	// If the vault already holds a file by this name, fill it in place.
	if dir := e.grantedHandle(ctx, projectID); dir != nil {
		handle, err := e.gateway.GetFileHandle(dir, remote.OriginalFilename)
		if err != nil {
			e.notify.Notify(ctx, "Failed to sync %s: %v", remote.OriginalFilename, err)
			return err
		}
		if handle != nil {
			if err := e.gateway.WriteFile(handle, content); err != nil {
				e.notify.Notify(ctx, "Failed to write %s to vault: %v", remote.OriginalFilename, err)
				return err
			}
			if err := e.records.Save(ctx, remote.ID, remote.Version, hash, remote.OriginalFilename); err != nil {
				return err
			}
			log.Info(ctx, "baseline established in vault", "version", remote.Version)
			e.notify.Notify(ctx, "Synced %s to vault (v%d)", remote.OriginalFilename, remote.Version)
			return nil
		}
	}

	// No vault copy to fill: deliver to the downloads directory instead.
	if err := writeDownload(e.downloadsDir, remote.OriginalFilename, content); err != nil {
		e.notify.Notify(ctx, "Failed to sync %s: %v", remote.OriginalFilename, err)
		return err
	}
	if err := e.records.Save(ctx, remote.ID, remote.Version, hash, remote.OriginalFilename); err != nil {
		return err
	}
	log.Info(ctx, "baseline established via download", "version", remote.Version)
	e.notify.Notify(ctx, "Downloaded %s. Version %d tracked.", remote.OriginalFilename, remote.Version)
	return nil
}

// channelFor picks the local access channel for a tracked file: the vault
// when a grant exists and its permission still verifies, otherwise the
// one-shot manual picker. Permission is re-checked here, on every operation,
// because the grant is externally revocable.
func (e *Engine) channelFor(ctx context.Context, log logging.Logger, projectID int64, rec *models.SyncRecord) localChannel {
	dir, err := e.grants.GetDirectoryHandle(ctx, projectID)
	if err != nil {
		log.Warn(ctx, "grant lookup failed, using manual picker", "error", err)
		dir = nil
	}
	if dir != nil {
		if e.verifier.VerifyPermission(ctx, dir, vault.ModeReadWrite) {
			return &vaultChannel{gateway: e.gateway, dir: dir, filename: rec.Filename}
		}
		log.Warn(ctx, "vault permission lost, using manual picker")
		e.notify.Notify(ctx, "Vault permission denied. Falling back to manual file selection.")
	}
	return &pickerChannel{picker: e.picker, downloadsDir: e.downloadsDir, filename: rec.Filename}
}

// reconcile runs the hash/version decision tree over an already-tracked
// file.
func (e *Engine) reconcile(ctx context.Context, log logging.Logger, projectID int64, remote *models.RemoteFile, rec *models.SyncRecord, ch localChannel) error {
	found, err := ch.Locate(ctx)
	if err != nil {
		e.notify.Notify(ctx, "Failed to sync %s: %v", rec.Filename, err)
		return err
	}
	if !found {
		if ch.CanAutoResolve() {
			// Stale or removed vault entry; surfaced, never auto-recreated.
			e.notify.Notify(ctx, "File %q not found in vault directory. Add it there or use manual sync.", rec.Filename)
			return fmt.Errorf("%s: %w", rec.Filename, common.ErrVaultFileMissing)
		}
		return common.ErrPickerCancelled
	}

	local, err := ch.Read(ctx)
	if err != nil {
		e.notify.Notify(ctx, "Failed to read local copy of %s: %v", rec.Filename, err)
		return err
	}
	localHash := hashx.HashContent(local)

	if localHash == rec.Hash {
		return e.pullIfNewer(ctx, log, projectID, remote, rec, ch)
	}
	return e.push(ctx, log, projectID, remote, rec, ch, local, localHash)
}

// pullIfNewer handles the unmodified-local case: pull when the server moved
// ahead, otherwise a pure no-op.
func (e *Engine) pullIfNewer(ctx context.Context, log logging.Logger, projectID int64, remote *models.RemoteFile, rec *models.SyncRecord, ch localChannel) error {
	if remote.Version <= rec.Version {
		log.Debug(ctx, "no changes on either side")
		e.notify.Notify(ctx, "%s is up to date", rec.Filename)
		return nil
	}

	content, err := e.api.DownloadFile(ctx, projectID, remote.ID)
	if err != nil {
		e.notify.Notify(ctx, "Failed to pull %s: %v", rec.Filename, err)
		return err
	}
	newHash := hashx.HashContent(content)

	if err := ch.Write(ctx, content); err != nil {
		e.notify.Notify(ctx, "Failed to write %s locally: %v", rec.Filename, err)
		return err
	}
	if err := e.records.Update(ctx, remote.ID, remote.Version, newHash); err != nil {
		return err
	}
	log.Info(ctx, "pulled newer version", "version", remote.Version)
	e.notify.Notify(ctx, "Downloaded newer version of %s (v%d)", rec.Filename, remote.Version)
	return nil
}

// push uploads local edits at the next version after the baseline. The
// server's optimistic-concurrency check decides whether they land.
func (e *Engine) push(ctx context.Context, log logging.Logger, projectID int64, remote *models.RemoteFile, rec *models.SyncRecord, ch localChannel, local []byte, localHash string) error {
	candidate := rec.Version + 1

	_, err := e.api.UpdateFile(ctx, projectID, remote.ID, rec.Filename, local, candidate)
	if err == nil {
		if err := e.records.Update(ctx, remote.ID, candidate, localHash); err != nil {
			return err
		}
		log.Info(ctx, "pushed local edits", "version", candidate)
		e.notify.Notify(ctx, "Uploaded %s. New version: %d", rec.Filename, candidate)
		return nil
	}

	if !errors.Is(err, common.ErrVersionConflict) {
		log.Error(ctx, "push failed", "error", err)
		e.notify.Notify(ctx, "Failed to sync %s: %v", rec.Filename, err)
		return err
	}

	if !ch.CanAutoResolve() {
		// Without a write handle the engine cannot overwrite anything;
		// the user must pull the newer version first.
		log.Warn(ctx, "push conflict, manual pull required")
		e.notify.Notify(ctx, "Server has a newer version of %s. Please download the latest version first.", rec.Filename)
		return fmt.Errorf("pushing %s: %w", rec.Filename, common.ErrVersionConflict)
	}

	// The vault write channel is open: resolve by pulling the server's
	// newer content over the local copy.
	fresh, err := e.api.GetFile(ctx, projectID, remote.ID)
	if err != nil {
		e.notify.Notify(ctx, "Failed to resolve conflict on %s: %v", rec.Filename, err)
		return err
	}
	content, err := e.api.DownloadFile(ctx, projectID, remote.ID)
	if err != nil {
		e.notify.Notify(ctx, "Failed to resolve conflict on %s: %v", rec.Filename, err)
		return err
	}
	newHash := hashx.HashContent(content)

	if err := ch.Write(ctx, content); err != nil {
		e.notify.Notify(ctx, "Failed to overwrite %s: %v", rec.Filename, err)
		return err
	}
	if err := e.records.Update(ctx, remote.ID, fresh.Version, newHash); err != nil {
		return err
	}
	log.Warn(ctx, "push conflict auto-resolved by pull", "version", fresh.Version)
	e.notify.Notify(ctx, "Server had a newer version. Downloaded and overwrote local %s (v%d)", rec.Filename, fresh.Version)
	return nil
}

// grantedHandle returns the project's vault handle only when it exists and
// its permission currently verifies.
func (e *Engine) grantedHandle(ctx context.Context, projectID int64) *vault.DirHandle {
	dir, err := e.grants.GetDirectoryHandle(ctx, projectID)
	if err != nil || dir == nil {
		return nil
	}
	if !e.verifier.VerifyPermission(ctx, dir, vault.ModeReadWrite) {
		return nil
	}
	return dir
}

func (e *Engine) beginFile(fileID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[fileID]; busy {
		return false
	}
	e.inFlight[fileID] = struct{}{}
	return true
}

func (e *Engine) endFile(fileID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, fileID)
}
