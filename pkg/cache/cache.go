// Package cache stores translation results between runs.
//
// A [Cache] is a byte-oriented key/value store with optional expiry. Four
// backends are provided:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps one JSON file per entry under a directory
//   - [RedisCache] shares entries between processes through Redis
//   - [BadgerCache] keeps entries in an embedded Badger database
//
// Keys come from a [Keyer] so that every caller derives the same key for
// the same translation. Only canonical translations are worth caching; a
// randomized translation is expected to differ between calls.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a key/value store for translation results. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired key is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Backend names a cache implementation.
type Backend string

const (
	BackendNone   Backend = "none"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendBadger Backend = "badger"
)

// Config selects and configures a backend.
type Config struct {
	Backend   Backend
	Dir       string // FileCache directory, or BadgerCache database directory
	RedisAddr string
}

// Open returns the cache described by cfg. An empty backend is treated as
// BackendNone.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendBadger:
		c, err := NewBadgerCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want none, file, redis or badger)", cfg.Backend)
	}
}
