// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about tile search, verification, SAT calls and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are called from verification workers concurrently; implementations
// must be safe for concurrent use.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetSATHooks(&mySATHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnSearchStart(ctx, k, w, h)
//	// ... search ...
//	observability.Pipeline().OnSearchComplete(ctx, candidates, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the tile generation pipeline.
type PipelineHooks interface {
	// Search events
	OnSearchStart(ctx context.Context, k, w, h int)
	OnSearchComplete(ctx context.Context, candidates int, duration time.Duration, err error)

	// Verification events (one per candidate tile)
	OnVerifyComplete(ctx context.Context, accepted bool, reason string, duration time.Duration)
}

// =============================================================================
// SAT Hooks
// =============================================================================

// SATHooks receives events from SAT oracle calls.
type SATHooks interface {
	// OnSolve records one oracle call.
	OnSolve(ctx context.Context, backend string, vars, clauses int, sat bool, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSearchStart(context.Context, int, int, int)                  {}
func (NoopPipelineHooks) OnSearchComplete(context.Context, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnVerifyComplete(context.Context, bool, string, time.Duration) {}

// NoopSATHooks is a no-op implementation of SATHooks.
type NoopSATHooks struct{}

func (NoopSATHooks) OnSolve(context.Context, string, int, int, bool, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	satHooks      SATHooks      = NoopSATHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetSATHooks registers custom SAT hooks.
func SetSATHooks(h SATHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		satHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// SAT returns the registered SAT hooks.
func SAT() SATHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return satHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	satHooks = NoopSATHooks{}
	cacheHooks = NoopCacheHooks{}
}
