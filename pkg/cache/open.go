package cache

import (
	"context"
	"time"

	"github.com/matzehuels/ktile/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	Prefix        string `toml:"prefix"`

	// TTL overrides the expiry of stored tile sets. Zero keeps [TTLTileSet].
	TTL time.Duration `toml:"ttl"`
}

// Open creates the cache described by opts. An empty backend means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache needs a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open cache dir %s", opts.Dir)
		}
		return c, nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis cache needs redis_addr")
		}
		c, err := NewRedisCache(ctx, opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return c, nil
	case BackendMongo:
		if opts.MongoURI == "" || opts.MongoDatabase == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo cache needs mongo_uri and mongo_database")
		}
		c, err := NewMongoCache(ctx, opts.MongoURI, opts.MongoDatabase, DefaultMongoCollection)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open mongo cache")
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, mongo, none)", opts.Backend)
	}
}

// TileSetTTL returns the expiry for stored tile sets.
func (o Options) TileSetTTL() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return TTLTileSet
}

// Keyer returns the keyer for opts, scoped when a prefix is set.
func (o Options) Keyer() Keyer {
	if o.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), o.Prefix)
}
