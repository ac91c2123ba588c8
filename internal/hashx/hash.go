// Package hashx computes content digests used for local change detection.
//
// The same bytes always produce the same digest regardless of where they came
// from (a vault read, a picker-selected file, or a server download); the sync
// engine relies on that equivalence to decide between push, pull and no-op.
package hashx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HashContent returns the lowercase hex SHA-256 digest of content.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// HashReader digests everything readable from r.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing stream: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile digests the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return HashReader(f)
}
