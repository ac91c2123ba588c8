package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/vault"
)

// consolePicker implements both the directory picker used for vault grants
// and the single-file picker used by the manual sync fallback. Paths are
// typed in; an empty line is a cancellation.
type consolePicker struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p *consolePicker) PickDirectory(_ context.Context, startIn string) (string, error) {
	return GetSimpleText(p.reader,
		fmt.Sprintf("Enter the vault directory path (e.g. %s, empty to cancel)", startIn), p.out)
}

func (p *consolePicker) PickFile(_ context.Context, suggested string) (string, error) {
	return GetSimpleText(p.reader,
		fmt.Sprintf("Enter the path of your local copy of %s (empty to cancel)", suggested), p.out)
}

// consolePrompter re-requests directory permission interactively, the console
// stand-in for a permission dialog.
type consolePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p *consolePrompter) RequestPermission(_ context.Context, handle *vault.DirHandle, mode vault.PermissionMode) bool {
	answer, err := GetSimpleText(p.reader,
		fmt.Sprintf("Access to %s (%s) is not available. Restore it and press y to retry [y/N]", handle.Path, mode), p.out)
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// consoleNotifier prints engine notifications, the console stand-in for
// toasts and alerts.
type consoleNotifier struct {
	out io.Writer
}

func (n *consoleNotifier) Notify(_ context.Context, format string, args ...any) {
	fmt.Fprintf(n.out, format+"\n", args...)
}
