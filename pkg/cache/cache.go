// Package cache memoizes expensive knot computations, primarily canonical
// forms: canonicalization is quadratic in sequence length and dominates any
// batch pipeline, while its result is fully determined by the content hash
// of the input diagram.
//
// Three backends are provided:
//   - [NewFileCache]: directory-based, for CLI usage across invocations
//   - [NewRedisCache]: shared cache for multi-process deployments
//   - [NewNullCache]: disables caching without branching at call sites
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// CanonicalKey returns the cache key for the canonical form of the diagram
// with the given content hash. The content hash fully determines the
// canonical form, so equal raw sequences share an entry.
func CanonicalKey(contentHash string) string {
	return "canonical:" + contentHash
}
