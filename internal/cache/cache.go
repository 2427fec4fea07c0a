// Package cache stores triage results keyed by document content, so
// reprocessing an unchanged FNOL batch is free.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for result caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from document text. The version segment
// invalidates every entry when the result schema changes.
func Key(documentText string) string {
	hash := sha256.Sum256([]byte(documentText))
	return "claimtriage:v1:" + hex.EncodeToString(hash[:])
}
