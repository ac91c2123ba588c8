// Package cli is the interactive shell of the workbench client. It wires the
// REST client, the chat stream, the sync engine and the local database into a
// read-eval-print loop, and supplies the console implementations of the
// interactive collaborators (directory picker, file picker, permission
// prompter, notifier) that the engine is written against.
package cli
