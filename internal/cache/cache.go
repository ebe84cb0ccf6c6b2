// Package cache stores fetched portal pages so resumed runs do not re-fetch
// detail pages they have already seen.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the page cache interface.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a page URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "schoolscout:v1:" + hex.EncodeToString(sum[:])
}
