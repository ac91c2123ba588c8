package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Sync reconciles a single file by id. Outcomes are reported through the
// engine's notifier, so only argument errors are printed here.
func (a *App) Sync(ctx context.Context, arg string) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	fileID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: sync <file-id>")
		return err
	}

	return a.engine.SyncFile(ctx, a.projectID, fileID)
}

// SyncAll reconciles every file in the project.
func (a *App) SyncAll(ctx context.Context) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	_, err := a.engine.SyncAll(ctx, a.projectID)
	return err
}
