package vault

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/mohsen-hassani/manuscript-workbench/internal/hashx"
	"github.com/mohsen-hassani/manuscript-workbench/internal/logging"
)

// Drift reports a vault file whose bytes no longer match the last
// synchronized baseline.
type Drift struct {
	Filename string
	Hash     string
}

// Baseline answers "what hash did we last synchronize for this filename".
// The sync ledger provides it; a miss means the file is untracked.
type Baseline interface {
	BaselineHash(ctx context.Context, filename string) (string, bool, error)
}

// Watcher observes a granted directory and reports tracked files whose
// content drifted from the baseline. It is advisory only: it never writes,
// never syncs — syncing stays an explicit user action.
type Watcher struct {
	handle   *DirHandle
	baseline Baseline
	log      logging.Logger
	drifts   chan Drift
}

func NewWatcher(handle *DirHandle, baseline Baseline, log logging.Logger) *Watcher {
	return &Watcher{
		handle:   handle,
		baseline: baseline,
		log:      log,
		drifts:   make(chan Drift, 16),
	}
}

// Drifts delivers detected drifts until Run returns.
func (w *Watcher) Drifts() <-chan Drift { return w.drifts }

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fw.Close()
	defer close(w.drifts)

	if err := fw.Add(w.handle.Path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.handle.Path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.inspect(ctx, event.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "vault watcher error", "error", err)
		}
	}
}

func (w *Watcher) inspect(ctx context.Context, path string) {
	filename := filepath.Base(path)
	if strings.HasPrefix(filename, ".") {
		// staging/probe files and editor droppings
		return
	}

	want, tracked, err := w.baseline.BaselineHash(ctx, filename)
	if err != nil {
		w.log.Warn(ctx, "baseline lookup failed", "filename", filename, "error", err)
		return
	}
	if !tracked {
		return
	}

	hash, err := hashx.HashFile(path)
	if err != nil {
		// The file may be mid-write; the next event will retry.
		return
	}
	if hash == want {
		return
	}

	w.log.Info(ctx, "local edit detected", "filename", filename)
	select {
	case w.drifts <- Drift{Filename: filename, Hash: hash}:
	default:
		w.log.Warn(ctx, "drift channel full, dropping event", "filename", filename)
	}
}
