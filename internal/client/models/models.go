// Package models defines client-side data models used by the workbench sync
// engine.
package models

import "time"

// RemoteFile is the server's view of a project file. The server owns identity
// and version; the client never mutates either directly — it requests a write
// and accepts whatever version the server confirms.
type RemoteFile struct {
	ID               int64  `json:"id"`
	ProjectID        int64  `json:"project_id"`
	OriginalFilename string `json:"original_filename"`

	// Version is the monotonic, server-assigned version used for
	// optimistic-concurrency conflict detection.
	Version int64 `json:"version"`

	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	UploaderName string    `json:"uploader_name"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SyncRecord is the last-synchronized baseline for one remote file. A record
// exists iff the file has been synchronized at least once; absence means
// "first sync, no baseline".
type SyncRecord struct {
	FileID int64

	// Version is the last version the client fetched or pushed successfully.
	Version int64

	// Hash is the content digest observed locally at that version.
	Hash string

	DownloadedAt time.Time

	// Filename is the name at time of last sync, used to re-locate the file
	// in the vault. If the server-side name changes independently, the record
	// goes stale and the vault lookup fails; that condition is surfaced, not
	// repaired.
	Filename string
}

// DirectoryGrant is a retained reference to a user-chosen vault directory for
// one project. The grant is externally revocable at any time, so permission
// must be re-verified before every use.
type DirectoryGrant struct {
	ProjectID int64
	Path      string
	GrantedAt time.Time
}

// Project carries the subset of project metadata the sync engine needs.
type Project struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	BaseFolderPath string `json:"base_folder_path"`
}
