package cli

import (
	"context"
	"fmt"
)

// Files lists the project's files with their server version and local sync
// state.
func (a *App) Files(ctx context.Context) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	files, err := a.api.ListFiles(ctx, a.projectID)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to list files: %v\n", err)
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files in this project yet.")
		return nil
	}

	for _, f := range files {
		state := "untracked"
		rec, err := a.repos.Records.Get(ctx, f.ID)
		if err == nil && rec != nil {
			switch {
			case rec.Version == f.Version:
				state = fmt.Sprintf("synced v%d", rec.Version)
			case rec.Version < f.Version:
				state = fmt.Sprintf("behind (local v%d, server v%d)", rec.Version, f.Version)
			default:
				state = fmt.Sprintf("ahead (local v%d, server v%d)", rec.Version, f.Version)
			}
		}
		fmt.Fprintf(a.out, "%6d  %-40s v%-3d %s\n", f.ID, f.OriginalFilename, f.Version, state)
	}
	return nil
}
