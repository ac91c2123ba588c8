// Package sync implements the workbench's local-vault reconciliation engine.
//
// # Overview
//
// Every project file lives in three places: the server (versioned, the
// authority), the user's vault directory (or wherever they keep the local
// copy), and the ledger (the last-synchronized version/hash baseline).
// Syncing a file compares local bytes against the baseline hash and the
// server version against the baseline version, then pulls, pushes, reports a
// conflict, or does nothing.
//
// # Access channels
//
// The algorithm runs once, written against a small localChannel interface
// with two implementations: a vault channel holding a verified directory
// grant, and a one-shot picker channel for hosts (or moments) without one.
// The engine degrades gracefully: capability absent or permission revoked
// simply selects the picker channel for that operation.
//
// # Conflict policy
//
// A push is attempted only when local bytes drifted from the baseline, at
// baseline version + 1. When the server rejects it, the two channels differ
// deliberately: the vault channel auto-resolves by pulling the server's
// newer content over the local copy (it holds a write handle), while the
// picker channel surfaces the conflict and asks the user to pull first (it
// cannot overwrite a file it never held).
//
// # Concurrency
//
// Operations are expected to be driven from a single UI loop. A per-file
// in-flight marker drops duplicate requests for a file mid-sync, and a bulk
// flag guards SyncAll re-entry without blocking individual syncs.
package sync
