// Package cache stores build records between apibook runs.
//
// Two things are cached, both keyed by a [Keyer]:
//
//   - Compiled books: the output files produced from one reflection input and
//     one set of compile settings. A rebuild of unchanged input skips the
//     compiler entirely.
//   - Written files: the content hash and size of every book file apibook has
//     written. Files whose record still matches are not rewritten, so watch
//     mode and preview servers only see real changes.
//
// [FileCache] keeps entries as JSON files under a directory (the CLI uses
// $XDG_CACHE_HOME/apibook). [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
