// Package config loads the optional ktile configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/ktile/config.toml (or
// ~/.config/ktile/config.toml). Every key is optional:
//
//	workers = 8           # verification workers, 0 = GOMAXPROCS
//	solver  = "gini"      # or "gophersat"
//
//	[cache]
//	backend        = "file"   # file, redis, mongo or none
//	dir            = "/var/cache/ktile"
//	redis_addr     = "localhost:6379"
//	redis_db       = 0
//	mongo_uri      = "mongodb://localhost:27017"
//	mongo_database = "ktile"
//	prefix         = "staging:"
//	ttl            = "720h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override file values, which override [Default].
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ktile/pkg/cache"
	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/sat"
)

// AppName names the configuration and cache directories.
const AppName = "ktile"

// DefaultAddr is the listen address of the HTTP server.
const DefaultAddr = ":8080"

// Config is the decoded configuration file.
type Config struct {
	Workers int           `toml:"workers"`
	Solver  string        `toml:"solver"`
	Cache   cache.Options `toml:"cache"`
	Server  Server        `toml:"server"`
}

// Server configures `ktile serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	dir, _ := CacheDir()
	return Config{
		Solver: sat.DefaultBackend,
		Cache:  cache.Options{Backend: cache.BackendFile, Dir: dir},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads the configuration at path on top of [Default]. An empty path
// selects [Path]; a missing file at the default location is not an error.
// Unknown keys are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(string(data), cfg)
}

// Parse decodes TOML text on top of base and validates the result.
func Parse(text string, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks value ranges and backend names.
func (c Config) Validate() error {
	if err := errors.ValidateWorkers(c.Workers); err != nil {
		return err
	}
	if err := sat.ValidateBackend(c.Solver); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/ktile/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
