package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/buildinfo"
	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/stackfile"
)

// Runner executes the pipeline with caching. It keeps no per-run state and
// may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// uses cache.DefaultKeyer.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → synthesize → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	start := time.Now()
	doc, raw, err := Load(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(start)

	// Stage 2: Synthesize
	start = time.Now()
	snap, hit, err := r.SynthesizeWithCacheInfo(ctx, doc, cache.Hash(raw), opts)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	result.Snapshot = snap
	result.CacheInfo.SynthesisHit = hit
	result.Stats.SynthesisTime = time.Since(start)
	result.Stats.Items = len(snap.Items)
	result.Stats.Constraints = len(snap.Constraints)
	result.Stats.Spacers = len(snap.Spacers)
	if data, err := MarshalSnapshot(snap); err == nil {
		result.SnapshotHash = cache.Hash(data)
	}

	r.Logger.Info("synthesized stack",
		"container", snap.Container,
		"items", result.Stats.Items,
		"constraints", result.Stats.Constraints,
		"cached", hit,
		"duration", result.Stats.SynthesisTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, snap, result.SnapshotHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SynthesizeWithCacheInfo synthesizes doc, reusing a cached snapshot keyed
// by docHash. It reports whether the cache served the result.
func (r *Runner) SynthesizeWithCacheInfo(ctx context.Context, doc *stackfile.Document, docHash string, opts Options) (*Snapshot, bool, error) {
	key := r.Keyer.SynthesisKey(docHash, cache.SynthesisKeyOpts{
		Container: doc.ID,
		Version:   buildinfo.Fingerprint(),
	})

	if !opts.Refresh {
		if snap, ok := r.cachedSnapshot(ctx, key); ok {
			return snap, true, nil
		}
	}

	snap, err := Synthesize(doc, opts.Logger)
	if err != nil {
		return nil, false, err
	}
	if data, err := MarshalSnapshot(snap); err == nil {
		r.store(ctx, "synthesis", key, data, cache.SynthesisTTL)
	}
	return snap, false, nil
}

// RenderWithCacheInfo renders snap, reusing cached artifacts when every
// requested format is cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap *Snapshot, snapHash string, opts Options) (map[string][]byte, bool, error) {
	keys := make(map[string]string, len(opts.Formats))
	for _, f := range opts.Formats {
		keys[f] = r.Keyer.ArtifactKey(snapHash, cache.ArtifactKeyOpts{Format: f, Detailed: opts.Detailed, Scale: opts.Scale})
	}

	if !opts.Refresh && snapHash != "" {
		artifacts := make(map[string][]byte, len(keys))
		for f, key := range keys {
			data, ok := r.lookup(ctx, "artifact", key)
			if !ok {
				break
			}
			artifacts[f] = data
		}
		if len(artifacts) == len(keys) {
			return artifacts, true, nil
		}
	}

	artifacts, err := Render(ctx, snap, opts)
	if err != nil {
		return nil, false, err
	}
	if snapHash != "" {
		for f, data := range artifacts {
			r.store(ctx, "artifact", keys[f], data, cache.ArtifactTTL)
		}
	}
	return artifacts, false, nil
}

func (r *Runner) cachedSnapshot(ctx context.Context, key string) (*Snapshot, bool) {
	data, ok := r.lookup(ctx, "synthesis", key)
	if !ok {
		return nil, false
	}
	snap, err := UnmarshalSnapshot(data)
	if err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		return nil, false
	}
	return snap, true
}

func (r *Runner) lookup(ctx context.Context, kind, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, kind)
	} else {
		observability.Cache().OnCacheMiss(ctx, kind)
	}
	return data, hit
}

func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
