// Package vault wraps access to the user-chosen local directory that mirrors
// a project's markdown files.
//
// The central object is the DirHandle: a retained, externally revocable
// reference to a directory. The user (or the operating system) can take the
// directory away at any moment — delete it, unmount it, change its
// permissions — with no notification, so holders must re-verify permission
// immediately before every use instead of caching a past answer.
package vault

import (
	"context"
	"os"
	"path/filepath"
)

// PermissionMode mirrors the access intent asked of the user.
type PermissionMode string

const (
	ModeRead      PermissionMode = "read"
	ModeReadWrite PermissionMode = "readwrite"
)

// DirHandle is a retained reference to a granted vault directory.
type DirHandle struct {
	Path string
}

// Name returns the directory's display name.
func (h *DirHandle) Name() string {
	return filepath.Base(h.Path)
}

// PermissionPrompter interactively asks the user to (re-)grant access to a
// directory. Implementations return true when the user granted the request.
type PermissionPrompter interface {
	RequestPermission(ctx context.Context, handle *DirHandle, mode PermissionMode) bool
}

// Verifier implements the verify-before-use discipline: query the current
// state first, and only fall back to an interactive re-request when access is
// not already granted. Verifying an already-granted handle therefore never
// re-prompts.
type Verifier struct {
	prompter PermissionPrompter
}

func NewVerifier(prompter PermissionPrompter) *Verifier {
	return &Verifier{prompter: prompter}
}

// VerifyPermission returns the final grant state for handle under mode.
func (v *Verifier) VerifyPermission(ctx context.Context, handle *DirHandle, mode PermissionMode) bool {
	if handle == nil {
		return false
	}
	if queryPermission(handle, mode) {
		return true
	}
	if v.prompter == nil || !v.prompter.RequestPermission(ctx, handle, mode) {
		return false
	}
	// The prompter may have restored access (re-created, re-mounted,
	// chmod-ed); trust only the re-query.
	return queryPermission(handle, mode)
}

// queryPermission checks current access non-interactively. For readwrite it
// proves writability by creating and removing a probe file, the closest
// analogue to querying a capability's permission state.
func queryPermission(handle *DirHandle, mode PermissionMode) bool {
	info, err := os.Stat(handle.Path)
	if err != nil || !info.IsDir() {
		return false
	}

	if mode == ModeRead {
		f, err := os.Open(handle.Path)
		if err != nil {
			return false
		}
		_ = f.Close()
		return true
	}

	probe, err := os.CreateTemp(handle.Path, ".perm-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}
