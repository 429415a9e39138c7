package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ktile/pkg/cache"
	"github.com/matzehuels/ktile/pkg/observability"
	"github.com/matzehuels/ktile/pkg/sat"
	"github.com/matzehuels/ktile/pkg/tile"
)

// Cache key types reported to observability hooks.
const (
	keyTypeTiles   = "tiles"
	keyTypeVerdict = "verdict"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete columns → search → verify pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:  uuid.NewString(),
		Config: opts.Config(),
		Solver: opts.Solver,
	}
	key := r.Keyer.TileSetKey(opts.KeyOpts())
	result.CacheInfo.Key = key

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if tiles, hit := r.cachedTiles(ctx, key); hit {
			result.Tiles = tiles
			result.Stats.Accepted = len(tiles)
			result.CacheInfo.Hit = true
			opts.Logger.Info("loaded tiles from cache",
				"run", result.RunID,
				"accepted", len(tiles))
			return result, nil
		}
	}

	tiles, stats, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Tiles = tiles
	result.Stats = stats

	r.storeTiles(ctx, key, tiles, opts.ttl())
	return result, nil
}

// Generate runs all three stages without consulting the cache.
func (r *Runner) Generate(ctx context.Context, opts Options) ([]tile.Tile, Stats, error) {
	var stats Stats
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, stats, fmt.Errorf("invalid options: %w", err)
	}
	cfg := opts.Config()

	solver, err := sat.New(opts.Solver)
	if err != nil {
		return nil, stats, err
	}

	// Stage 1: Columns
	start := time.Now()
	cols := tile.Columns(cfg.H, cfg.K)
	stats.ColumnsTime = time.Since(start)
	opts.Logger.Debug("generated columns",
		"columns", len(cols),
		"duration", stats.ColumnsTime)

	// Stage 2: Search
	observability.Pipeline().OnSearchStart(ctx, cfg.K, cfg.W, cfg.H)
	start = time.Now()
	candidates, ss, err := tile.Search(ctx, cfg, cols)
	stats.SearchTime = time.Since(start)
	observability.Pipeline().OnSearchComplete(ctx, len(candidates), stats.SearchTime, err)
	if err != nil {
		return nil, stats, fmt.Errorf("search: %w", err)
	}
	stats.Columns = ss.Columns
	stats.Expanded = ss.Expanded
	stats.DeadEnds = ss.DeadEnds
	stats.Candidates = ss.Candidates
	opts.Logger.Info("searched tiles",
		"columns", ss.Columns,
		"candidates", ss.Candidates,
		"duration", stats.SearchTime)
	opts.Logger.Debug("search tree",
		"expanded", ss.Expanded,
		"dead_ends", ss.DeadEnds)

	if opts.DIMACSDir != "" {
		n, err := ExportDIMACS(opts.DIMACSDir, cfg, candidates)
		if err != nil {
			return nil, stats, fmt.Errorf("export dimacs: %w", err)
		}
		opts.Logger.Info("exported instances", "files", n, "dir", opts.DIMACSDir)
	}

	// Stage 3: Verify
	start = time.Now()
	verdicts, err := VerifyAll(ctx, tile.NewVerifier(cfg, solver), candidates, opts.Workers)
	stats.VerifyTime = time.Since(start)
	if err != nil {
		return nil, stats, fmt.Errorf("verify: %w", err)
	}

	accepted := Accepted(candidates, verdicts)
	stats.Accepted = len(accepted)
	stats.Reasons = countReasons(verdicts)
	for i, v := range verdicts {
		if !v.Accepted {
			opts.Logger.Debug("rejected tile", "tile", candidates[i], "reason", v.Reason)
		}
	}
	opts.Logger.Info("verified tiles",
		"accepted", stats.Accepted,
		"rejected", stats.Candidates-stats.Accepted,
		"workers", opts.Workers,
		"duration", stats.VerifyTime)

	return accepted, stats, nil
}

// VerifyTiles verifies externally supplied tiles, for example a tile file
// produced by an earlier run. Tiles must lie inside the w×h rectangle and
// respect the separation rule.
func (r *Runner) VerifyTiles(ctx context.Context, opts Options, tiles []tile.Tile) ([]tile.Verdict, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	cfg := opts.Config()
	for i, t := range tiles {
		if err := CheckTile(cfg, t); err != nil {
			return nil, fmt.Errorf("tile %d: %w", i+1, err)
		}
	}
	solver, err := sat.New(opts.Solver)
	if err != nil {
		return nil, err
	}
	verdicts, err := VerifyAll(ctx, tile.NewVerifier(cfg, solver), tiles, opts.Workers)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("verified tiles",
		"tiles", len(tiles),
		"accepted", len(Accepted(tiles, verdicts)),
		"workers", opts.Workers)
	return verdicts, nil
}

// VerifyTile verifies a single tile, caching the verdict.
func (r *Runner) VerifyTile(ctx context.Context, opts Options, t tile.Tile) (tile.Verdict, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return tile.Verdict{}, false, fmt.Errorf("invalid options: %w", err)
	}
	t = tile.New(t...)
	if err := CheckTile(opts.Config(), t); err != nil {
		return tile.Verdict{}, false, err
	}
	key := r.Keyer.VerdictKey(opts.KeyOpts(), t.String())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var v tile.Verdict
			if err := json.Unmarshal(data, &v); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeVerdict)
				return v, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeVerdict)
	}

	solver, err := sat.New(opts.Solver)
	if err != nil {
		return tile.Verdict{}, false, err
	}
	v, err := tile.NewVerifier(opts.Config(), solver).Verify(ctx, t)
	if err != nil {
		return tile.Verdict{}, false, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLVerdict); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeVerdict, len(data))
		}
	}
	return v, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cachedTiles reads and decodes a cached tile set. Read or decode failures
// count as a miss.
func (r *Runner) cachedTiles(ctx context.Context, key string) ([]tile.Tile, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeTiles)
		return nil, false
	}
	tiles, err := tile.ReadSet(bytes.NewReader(data))
	if err != nil {
		r.Logger.Warn("discarding corrupt cache entry", "key", key, "err", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeTiles)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeTiles)
	return tiles, true
}

// storeTiles writes tiles to the cache. Failures are logged, not returned.
func (r *Runner) storeTiles(ctx context.Context, key string, tiles []tile.Tile, ttl time.Duration) {
	var buf bytes.Buffer
	if err := tile.WriteSet(&buf, tiles); err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeTiles, buf.Len())
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
