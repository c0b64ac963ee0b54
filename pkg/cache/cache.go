// Package cache provides caching for remote repository lookups.
//
// The sync service asks remote repositories for tag listings and remote
// head revisions; those round-trips dominate `arbor status` on large
// dependency trees, so results are cached behind the [Cache] interface.
//
// Implementations:
//   - file: directory-backed cache for CLI usage (the default)
//   - redis: Redis-backed cache for shared/CI environments
//   - null: no-op cache for tests or --no-cache runs
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime for cached remote lookups.
const DefaultTTL = 15 * time.Minute

// Cache is the storage interface for cached lookups.
// Get returns (data, hit, error); a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the different lookup kinds.
type Keyer interface {
	// TagsKey is the key for a repository's tag listing.
	TagsKey(url string) string
	// HeadKey is the key for the remote head revision of url at ref.
	HeadKey(url, ref string) string
}

// DefaultKeyer generates globally scoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TagsKey generates a key for a repository's tag listing.
func (k *DefaultKeyer) TagsKey(url string) string {
	return hashKey("tags", url)
}

// HeadKey generates a key for a remote head lookup.
func (k *DefaultKeyer) HeadKey(url, ref string) string {
	return hashKey("head", url, ref)
}
