// Package cache stores generation results between runs.
//
// A [Cache] is a byte-oriented key/value store with optional expiry. Four
// backends are provided:
//
//   - [FileCache]: JSON entries under a local directory (CLI default)
//   - [RedisCache]: github.com/redis/go-redis/v9
//   - [MongoCache]: go.mongodb.org/mongo-driver
//   - [NullCache]: stores nothing
//
// Keys are derived by a [Keyer] from the parameters that determine a
// result, so identical requests hit the same entry regardless of backend.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized results.
//
// Get returns hit=false with a nil error for missing or expired entries.
// A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLs for cached results. Tile sets are a pure function of their key, so
// they only expire to bound disk usage.
const (
	TTLTileSet = 30 * 24 * time.Hour
	TTLVerdict = 7 * 24 * time.Hour
)
