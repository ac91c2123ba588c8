package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
)

// localChannel is the engine's view of "wherever the local copy lives".
// The reconciliation algorithm is written once against this interface; the
// two implementations differ only in how they reach the bytes.
type localChannel interface {
	// Locate finds the local copy. false with a nil error is the expected
	// "nothing there" outcome (file absent from the vault, or the user
	// cancelled the picker).
	Locate(ctx context.Context) (bool, error)

	// Read returns the located copy's bytes.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces (or delivers) local content.
	Write(ctx context.Context, content []byte) error

	// CanAutoResolve reports whether a push conflict may be resolved by
	// overwriting the local copy without user involvement. Only a channel
	// holding a real write handle can do that.
	CanAutoResolve() bool
}

// FilePicker interactively lets the user select a single local file. An
// empty path with a nil error means the user cancelled.
type FilePicker interface {
	PickFile(ctx context.Context, suggested string) (string, error)
}

// vaultChannel reaches the local copy through a granted directory handle.
type vaultChannel struct {
	gateway  *vault.Gateway
	dir      *vault.DirHandle
	filename string

	handle *vault.FileHandle
}

func (c *vaultChannel) Locate(_ context.Context) (bool, error) {
	handle, err := c.gateway.GetFileHandle(c.dir, c.filename)
	if err != nil {
		return false, err
	}
	c.handle = handle
	return handle != nil, nil
}

func (c *vaultChannel) Read(_ context.Context) ([]byte, error) {
	if c.handle == nil {
		return nil, fmt.Errorf("%s not located in vault", c.filename)
	}
	return c.gateway.ReadFile(c.handle)
}

func (c *vaultChannel) Write(_ context.Context, content []byte) error {
	if c.handle == nil {
		return fmt.Errorf("%s not located in vault", c.filename)
	}
	return c.gateway.WriteFile(c.handle, content)
}

func (c *vaultChannel) CanAutoResolve() bool { return true }

// pickerChannel reaches the local copy through a one-shot manual file pick.
// It holds no durable handle, so pulls land in the downloads directory and
// conflicts cannot be auto-resolved.
type pickerChannel struct {
	picker       FilePicker
	downloadsDir string
	filename     string

	picked string
}

func (c *pickerChannel) Locate(ctx context.Context) (bool, error) {
	if c.picker == nil {
		// Hosts without an interactive picker cannot produce a file; same
		// outcome as the user cancelling.
		return false, nil
	}
	path, err := c.picker.PickFile(ctx, c.filename)
	if err != nil {
		return false, fmt.Errorf("picking local file: %w", err)
	}
	c.picked = path
	return path != "", nil
}

func (c *pickerChannel) Read(_ context.Context) ([]byte, error) {
	if c.picked == "" {
		return nil, fmt.Errorf("no local file selected")
	}
	content, err := os.ReadFile(c.picked)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.picked, err)
	}
	return content, nil
}

func (c *pickerChannel) Write(_ context.Context, content []byte) error {
	return writeDownload(c.downloadsDir, c.filename, content)
}

func (c *pickerChannel) CanAutoResolve() bool { return false }

var (
	_ localChannel = (*vaultChannel)(nil)
	_ localChannel = (*pickerChannel)(nil)
)

// writeDownload drops content into the downloads directory.
func writeDownload(dir, filename string, content []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("preparing downloads dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("saving download %s: %w", filename, err)
	}
	return nil
}
