// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module emit events through the registered hooks; the
// defaults do nothing. Register custom implementations once at startup:
//
//	func main() {
//	    observability.SetStackHooks(&myStackHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Hook parameters use plain strings and counts so that this package does not
// depend on the packages it observes.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Stack Hooks
// =============================================================================

// StackHooks receives events from stack containers.
type StackHooks interface {
	// OnSynthesis records one synthesis pass.
	OnSynthesis(ctx context.Context, container string, items, constraints int, duration time.Duration)

	// OnReconcile records the outcome of installing a pass into the host.
	OnReconcile(ctx context.Context, container string, added, removed, replaced int, err error)

	// OnTransition records a visibility state change of one item.
	// from and to are state descriptions such as "settled(hidden)".
	OnTransition(ctx context.Context, item, from, to string)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the document pipeline.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, items int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
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

// NoopStackHooks is a no-op implementation of StackHooks.
type NoopStackHooks struct{}

func (NoopStackHooks) OnSynthesis(context.Context, string, int, int, time.Duration) {}
func (NoopStackHooks) OnReconcile(context.Context, string, int, int, int, error)    {}
func (NoopStackHooks) OnTransition(context.Context, string, string, string)         {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	stackHooks    StackHooks    = NoopStackHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetStackHooks registers custom stack hooks. Nil is ignored.
func SetStackHooks(h StackHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stackHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Stack returns the registered stack hooks.
func Stack() StackHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stackHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stackHooks = NoopStackHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
