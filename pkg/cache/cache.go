// Package cache stores computed layouts and rendered artifacts keyed by the
// content that produced them.
//
// Layout is cheap but rendering PDFs and PNG previews of long songs is not,
// and the HTTP API tends to see the same MIDI file many times with different
// render settings. Keys are derived from a hash of the MIDI bytes plus every
// option that influences the output (see [Keyer]), so a cached entry never
// goes stale; TTLs only bound disk and memory use.
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (API server)
//   - [NullCache]: stores nothing (--no-cache)
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte store with optional expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
