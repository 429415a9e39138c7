package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ktile/pkg/cache"
	"github.com/matzehuels/ktile/pkg/config"
	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file named by --config, or the default
// one when it exists.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use backed by the configured
// cache. noCache disables caching for this invocation.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	opts := c.Config.Cache
	if opts.Backend == "" || opts.Backend == cache.BackendFile {
		if opts.Dir == "" {
			dir, err := config.CacheDir()
			if err != nil {
				c.Logger.Warn("no cache directory, caching disabled", "err", err)
				return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
			}
			opts.Dir = dir
		}
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened cache", "backend", backendName(opts.Backend))
	return pipeline.NewRunner(store, opts.Keyer(), c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// runOptions builds pipeline options from positional k, w, h and the
// configuration defaults. Flags applied afterwards take precedence.
func (c *CLI) runOptions(args []string) (pipeline.Options, error) {
	dims, err := parseDims(args, "k", "w", "h")
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		K:       dims[0],
		W:       dims[1],
		H:       dims[2],
		Solver:  c.Config.Solver,
		Workers: c.Config.Workers,
		TTL:     c.Config.Cache.TileSetTTL(),
		Logger:  c.Logger,
	}, nil
}

// parseDims parses the leading positional arguments as positive integers.
func parseDims(args []string, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, args[i])
		}
		if n <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %d", name, n)
		}
		out[i] = n
	}
	return out, nil
}

func backendName(b string) string {
	if b == "" {
		return cache.BackendFile
	}
	return b
}
