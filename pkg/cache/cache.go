// Package cache stores computed event traces so repeated requests for the
// same engine, algorithm and input are served without re-running them.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [RedisCache]: shared storage for the HTTP server
//
// Keys are built by a [Keyer] so backends never see raw inputs.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. hit is false when the key is
	// absent or expired; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long traces are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string
	Redis   RedisConfig
}

// Open returns the backend named by opts.Backend. An empty backend is
// treated as "file".
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
