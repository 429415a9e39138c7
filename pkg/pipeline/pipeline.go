// Package pipeline provides the tile generation pipeline shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// A run consists of three stages:
//
//  1. Columns: enumerate every valid column of height h (tile.Columns)
//  2. Search: grow candidate tiles column by column (tile.Search)
//  3. Verify: decide completability of every candidate with a SAT oracle,
//     fanned out over a bounded worker pool
//
// The accepted tiles of a run are a pure function of (k, w, h, solver), so
// the [Runner] caches them under a key derived from those parameters.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{K: 2, W: 5, H: 5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tile.WriteSet(os.Stdout, result.Tiles)
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ktile/pkg/cache"
	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/sat"
	"github.com/matzehuels/ktile/pkg/tile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultSolver is the SAT backend used when none is named.
const DefaultSolver = sat.DefaultBackend

// DefaultWorkers returns the verification pool size used when none is set.
func DefaultWorkers() int { return runtime.GOMAXPROCS(0) }

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a generation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	K int `json:"k"`
	W int `json:"w"`
	H int `json:"h"`

	Solver  string `json:"solver,omitempty"`
	Workers int    `json:"workers,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // bypass the cache lookup

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// DIMACSDir receives one CNF file per candidate that reaches the solver.
	DIMACSDir string `json:"-"`
	// TTL overrides cache.TTLTileSet for stored results.
	TTL time.Duration `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string `json:"run_id"`

	Config tile.Config `json:"config"`
	Solver string      `json:"solver"`

	// Tiles holds the accepted tiles, sorted.
	Tiles []tile.Tile `json:"tiles"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains pipeline execution statistics. Search and verification
// counters are zero when the result came from the cache.
type Stats struct {
	Columns    int                 `json:"columns"`
	Expanded   int                 `json:"expanded"`
	DeadEnds   int                 `json:"dead_ends"`
	Candidates int                 `json:"candidates"`
	Accepted   int                 `json:"accepted"`
	Reasons    map[tile.Reason]int `json:"reasons,omitempty"`

	ColumnsTime time.Duration `json:"columns_ns"`
	SearchTime  time.Duration `json:"search_ns"`
	VerifyTime  time.Duration `json:"verify_ns"`
}

// CacheInfo tracks cache use of a run.
type CacheInfo struct {
	Hit bool   `json:"hit"` // whether the tiles came from cache
	Key string `json:"key,omitempty"`
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateParams(o.K, o.W, o.H); err != nil {
		return err
	}
	if err := sat.ValidateBackend(o.Solver); err != nil {
		return err
	}
	if err := errors.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	if o.Solver == "" {
		o.Solver = DefaultSolver
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Config returns the tile configuration of o.
func (o *Options) Config() tile.Config {
	return tile.Config{K: o.K, W: o.W, H: o.H}
}

// KeyOpts returns cache key options for the tile set of o.
func (o *Options) KeyOpts() cache.TileSetKeyOpts {
	return cache.TileSetKeyOpts{K: o.K, W: o.W, H: o.H, Solver: o.Solver}
}

// ttl returns the cache expiry for results of o.
func (o *Options) ttl() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return cache.TTLTileSet
}
