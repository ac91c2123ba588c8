package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/syncstate"
	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
)

// ledgerBaseline adapts the sync ledger to the watcher's baseline lookup.
type ledgerBaseline struct {
	records syncstate.Repository
}

func (b ledgerBaseline) BaselineHash(ctx context.Context, filename string) (string, bool, error) {
	recs, err := b.records.List(ctx)
	if err != nil {
		return "", false, err
	}
	for _, rec := range recs {
		if rec.Filename == filename {
			return rec.Hash, true, nil
		}
	}
	return "", false, nil
}

// Watch reports vault files whose content drifts from the last synchronized
// baseline, until the user presses Enter. Advisory only; nothing is synced
// automatically.
func (a *App) Watch(ctx context.Context) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	dir, err := a.repos.Grants.GetDirectoryHandle(ctx, a.projectID)
	if err != nil {
		return err
	}
	if dir == nil || !a.verifier.VerifyPermission(ctx, dir, vault.ModeRead) {
		fmt.Fprintln(a.out, "Set the vault directory first: vault set")
		return nil
	}

	watcher := vault.NewWatcher(dir, ledgerBaseline{records: a.repos.Records}, a.log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for drift := range watcher.Drifts() {
			fmt.Fprintf(a.out, "edited: %s (sync %s to upload)\n", drift.Filename, drift.Filename)
		}
	}()
	go func() {
		_, _ = a.reader.ReadString('\n')
		cancel()
	}()

	fmt.Fprintf(a.out, "Watching %s for edits. Press Enter to stop.\n", dir.Path)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(a.out, "Watcher stopped: %v\n", err)
		return err
	}
	return nil
}
