package util

import (
	"crypto/sha256"
	"fmt"
)

// ResponseKey returns a deterministic short storage key for url under prefix.
// URLs are unbounded and may carry credentials in query strings, so only the
// hash reaches the provider and the logs.
func ResponseKey(prefix, url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%s:%x", prefix, sum)[:len(prefix)+1+16] // prefix + ":" + first 16 hex chars
}
