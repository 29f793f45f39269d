// Package cache stores extraction responses so repeated runs over the same
// facility text do not re-bill the extraction provider.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ExtractionKey derives a cache key from the provider, model, and the exact
// facility text sent for extraction. Any change to the text or model misses.
func ExtractionKey(provider, model, facilityText string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + model + "\x00" + facilityText))
	return "caregap:v1:" + hex.EncodeToString(hash[:])
}
