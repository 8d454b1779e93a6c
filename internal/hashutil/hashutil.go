// Package hashutil computes the content-addressed hashes used throughout
// techdocs: index item keys, change-detection checksums, and the
// frontmatter source-hash marker.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// String returns the lowercase hex SHA-256 digest of s.
func String(s string) string {
	return Bytes([]byte(s))
}

// Bytes returns the lowercase hex SHA-256 digest of b.
func Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
