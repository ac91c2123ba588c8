package vault

import (
	"context"
	"os"
	"path/filepath"
)

// DirectoryPicker interactively lets the user choose a directory. startIn is
// a suggestion only; implementations may ignore it. An empty path with a nil
// error means the user cancelled.
type DirectoryPicker interface {
	PickDirectory(ctx context.Context, startIn string) (string, error)
}

// Probe detects whether the host environment can hold a persistent directory
// grant, and obtains one when it can.
type Probe struct {
	picker DirectoryPicker
}

func NewProbe(picker DirectoryPicker) *Probe {
	return &Probe{picker: picker}
}

// SupportsDirectoryAccess reports whether persistent directory access is
// available at all. Pure; no side effects. When false, every sync path falls
// back to the one-shot manual picker.
func (p *Probe) SupportsDirectoryAccess() bool {
	return p.picker != nil
}

// RequestDirectoryAccess invokes the interactive directory chooser with
// read-write intent, starting near the user's documents. It returns nil on
// cancellation or any failure; it never propagates an error to the caller.
func (p *Probe) RequestDirectoryAccess(ctx context.Context) *DirHandle {
	if !p.SupportsDirectoryAccess() {
		return nil
	}

	path, err := p.picker.PickDirectory(ctx, defaultStartDir())
	if err != nil || path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}
	return &DirHandle{Path: path}
}

func defaultStartDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}
