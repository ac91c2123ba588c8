// Package common defines shared sentinel errors used across the workbench
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Remote API errors.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrVersionConflict = errors.New("version conflict")

	// Vault errors.
	ErrNoVaultDirectory = errors.New("no vault directory configured")
	ErrPermissionDenied = errors.New("vault permission denied")
	ErrVaultFileMissing = errors.New("file not found in vault directory")
	ErrBasePathNotSet   = errors.New("project base folder path not configured")
	ErrPickerCancelled  = errors.New("file selection cancelled")

	// Engine guard errors.
	ErrSyncInProgress     = errors.New("sync already in progress")
	ErrBulkSyncInProgress = errors.New("bulk sync already in progress")
)
