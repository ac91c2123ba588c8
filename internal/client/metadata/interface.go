// Package metadata is a small durable key/value store for client state that
// doesn't warrant its own table: the bearer token, the last-used project id,
// cached project settings.
package metadata

import "context"

// Well-known keys.
const (
	KeyAuthToken     = "auth_token"
	KeyLastProjectID = "last_project_id"
)

type Repository interface {
	// Get returns the value for key, or nil when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
