package cli

import (
	"context"
	"fmt"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
)

// VaultSet asks the user for a directory and retains it as the project's
// vault grant.
func (a *App) VaultSet(ctx context.Context) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	handle := a.probe.RequestDirectoryAccess(ctx)
	if handle == nil {
		fmt.Fprintln(a.out, "Cancelled; vault directory unchanged.")
		return nil
	}

	if err := a.repos.Grants.SaveDirectoryHandle(ctx, a.projectID, handle); err != nil {
		fmt.Fprintf(a.out, "Failed to save vault directory: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Vault directory set to %s\n", handle.Path)
	return nil
}

// VaultClear drops the project's grant. Local files stay where they are.
func (a *App) VaultClear(ctx context.Context) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	if err := a.repos.Grants.RemoveDirectoryHandle(ctx, a.projectID); err != nil {
		fmt.Fprintf(a.out, "Failed to clear vault directory: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Vault directory cleared. Syncs will use the manual file picker.")
	return nil
}

// VaultStatus shows the current grant and whether its permission still
// verifies.
func (a *App) VaultStatus(ctx context.Context) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	grant, err := a.repos.Grants.GetGrant(ctx, a.projectID)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to read vault grant: %v\n", err)
		return err
	}
	if grant == nil {
		fmt.Fprintln(a.out, "No vault directory set. Syncs use the manual file picker.")
		return nil
	}

	state := "permission ok"
	if !a.verifier.VerifyPermission(ctx, &vault.DirHandle{Path: grant.Path}, vault.ModeReadWrite) {
		state = "permission lost"
	}
	fmt.Fprintf(a.out, "Vault: %s (granted %s, %s)\n", grant.Path, grant.GrantedAt.Format("2006-01-02 15:04"), state)
	return nil
}
