package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	args     []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) UseProject(_ context.Context, arg string) error {
	f.calls = append(f.calls, "project")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) Files(context.Context) error { f.calls = append(f.calls, "files"); return nil }
func (f *fakeExec) Sync(_ context.Context, arg string) error {
	f.calls = append(f.calls, "sync")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) SyncAll(context.Context) error { f.calls = append(f.calls, "sync-all"); return nil }
func (f *fakeExec) Create(context.Context) error  { f.calls = append(f.calls, "create"); return nil }
func (f *fakeExec) VaultSet(context.Context) error {
	f.calls = append(f.calls, "vault-set")
	return nil
}
func (f *fakeExec) VaultClear(context.Context) error {
	f.calls = append(f.calls, "vault-clear")
	return nil
}
func (f *fakeExec) VaultStatus(context.Context) error {
	f.calls = append(f.calls, "vault-status")
	return nil
}
func (f *fakeExec) Watch(context.Context) error { f.calls = append(f.calls, "watch"); return nil }
func (f *fakeExec) Chat(context.Context) error  { f.calls = append(f.calls, "chat"); return nil }

func runScript(t *testing.T, exec *fakeExec, lines ...string) {
	t.Helper()

	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "" }, sc)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}
	runScript(t, exec,
		"help",
		"login",
		"project 7",
		"files",
		"sync 42",
		"sync-all",
		"create",
		"vault set",
		"vault status",
		"vault clear",
		"watch",
		"chat",
		"exit",
	)

	assert.Equal(t, []string{
		"login", "project", "files", "sync", "sync-all", "create",
		"vault-set", "vault-status", "vault-clear", "watch", "chat",
	}, exec.calls)
	assert.Equal(t, []string{"7", "42"}, exec.args)
}

func TestRunREPL_UsageLinesDoNotDispatch(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	runScript(t, exec,
		"sync",
		"project",
		"vault",
		"vault frobnicate",
		"nonsense",
		"",
		"quit",
	)

	assert.Empty(t, exec.calls)
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	exec := &fakeExec{}
	runScript(t, exec, "files")

	assert.Equal(t, []string{"files"}, exec.calls)
}
