package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileHandle is a located (or created) entry inside a granted directory.
type FileHandle struct {
	Path string
}

func (f *FileHandle) Name() string {
	return filepath.Base(f.Path)
}

// Gateway performs file operations inside a granted directory. It never
// walks outside the handle: filenames are exact directory entries, not
// paths.
type Gateway struct{}

func NewGateway() *Gateway { return &Gateway{} }

// GetFileHandle locates an existing entry by exact name. A missing file is
// an expected, recoverable state, so it yields (nil, nil) rather than an
// error.
func (g *Gateway) GetFileHandle(dir *DirHandle, filename string) (*FileHandle, error) {
	if err := validateName(filename); err != nil {
		return nil, err
	}

	path := filepath.Join(dir.Path, filename)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s in vault: %w", filename, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filename)
	}
	return &FileHandle{Path: path}, nil
}

// CreateOrGetFileHandle is like GetFileHandle but creates an empty entry
// when missing. Only the file-creation flow uses it; sync never creates
// vault entries the user did not place there.
func (g *Gateway) CreateOrGetFileHandle(dir *DirHandle, filename string) (*FileHandle, error) {
	handle, err := g.GetFileHandle(dir, filename)
	if err != nil || handle != nil {
		return handle, err
	}

	path := filepath.Join(dir.Path, filename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating %s in vault: %w", filename, err)
	}
	_ = f.Close()
	return &FileHandle{Path: path}, nil
}

// ReadFile returns the file's current bytes.
func (g *Gateway) ReadFile(handle *FileHandle) ([]byte, error) {
	content, err := os.ReadFile(handle.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", handle.Name(), err)
	}
	return content, nil
}

// WriteFile replaces the file's content atomically: the bytes go to a
// temporary file in the same directory which is then renamed over the
// target. The temporary file is always closed and cleaned up, so the target
// is never left locked or truncated by a failed write.
func (g *Gateway) WriteFile(handle *FileHandle, content []byte) (err error) {
	dir := filepath.Dir(handle.Path)

	tmp, err := os.CreateTemp(dir, ".write-*")
	if err != nil {
		return fmt.Errorf("staging write of %s: %w", handle.Name(), err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", handle.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing staged write of %s: %w", handle.Name(), err)
	}
	if err = os.Rename(tmp.Name(), handle.Path); err != nil {
		return fmt.Errorf("committing write of %s: %w", handle.Name(), err)
	}
	return nil
}

func validateName(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, "..") {
		return fmt.Errorf("invalid vault filename %q", filename)
	}
	return nil
}
