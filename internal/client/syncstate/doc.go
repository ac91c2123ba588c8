// Package syncstate provides the client-side sync ledger.
//
// # Overview
//
// The ledger maps a remote file id to the last-known (version, hash,
// filename) baseline. A record exists iff the file has been synchronized at
// least once; its absence is how the engine recognizes a first sync.
//
// # Invariants
//
// Records are written only after a confirmed successful pull, push or create.
// Save fully replaces a record; Update mutates only version/hash and never
// fabricates a record for an unknown file id. This keeps the ledger free of
// partially written state: either a complete baseline exists or none does.
//
// Key Types
//
//   - type Repository        — interface used by the sync engine
//   - type SQLiteRepository  — SQLite implementation over dbx.DBTX
package syncstate
