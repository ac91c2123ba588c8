package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	UseProject(ctx context.Context, arg string) error
	Files(ctx context.Context) error
	Sync(ctx context.Context, arg string) error
	SyncAll(ctx context.Context) error
	Create(ctx context.Context) error
	VaultSet(ctx context.Context) error
	VaultClear(ctx context.Context) error
	VaultStatus(ctx context.Context) error
	Watch(ctx context.Context) error
	Chat(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on a. The loop exits on scanner EOF or "exit"/"quit".
//
// Command handlers report their own errors to the user; the loop ignores the
// returned values to stay resilient.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mw %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: project <id>, files, sync <file-id>, sync-all, create, vault set|clear|status, watch, chat, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "project":
			if len(args) == 0 {
				printlnFn("Usage: project <id>")
				continue
			}
			_ = a.UseProject(ctx, args[0])

		case "files":
			_ = a.Files(ctx)

		case "sync":
			if len(args) == 0 {
				printlnFn("Usage: sync <file-id>")
				continue
			}
			_ = a.Sync(ctx, args[0])

		case "sync-all":
			_ = a.SyncAll(ctx)

		case "create":
			_ = a.Create(ctx)

		case "vault":
			if len(args) == 0 {
				printlnFn("Usage: vault set|clear|status")
				continue
			}
			switch args[0] {
			case "set":
				_ = a.VaultSet(ctx)
			case "clear":
				_ = a.VaultClear(ctx)
			case "status":
				_ = a.VaultStatus(ctx)
			default:
				printlnFn("Usage: vault set|clear|status")
			}

		case "watch":
			_ = a.Watch(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
