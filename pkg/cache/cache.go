// Package cache stores raw API responses between collection runs.
//
// Three backends implement [Cache]:
//   - [NullCache]: the default; every lookup misses
//   - [FileCache]: JSON entries under the user cache directory
//   - [RedisCache]: a shared Redis instance, for CI runners that share state
//
// Keys are produced by a [Keyer]. [ScopedKeyer] prefixes them with a hash of
// the GitLab instance and token so that responses fetched with one identity
// are never served to another.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per resource kind.
const (
	TTLProjects = 10 * time.Minute
	TTLTree     = 30 * time.Minute
	TTLContent  = time.Hour
)

// Open returns the backend selected by spec:
//
//	""             NullCache
//	"file"         FileCache rooted at dir
//	"redis://..."  RedisCache (also "rediss://")
func Open(ctx context.Context, spec, dir string) (Cache, error) {
	switch {
	case spec == "" || spec == "none":
		return NewNullCache(), nil
	case spec == "file":
		return NewFileCache(dir)
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		return NewRedisCache(ctx, spec, DefaultRedisPrefix)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", spec)
	}
}
