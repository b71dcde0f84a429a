// Package cache stores synthesis results and rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] shares entries between machines through Redis
//   - [NullCache] stores nothing (--no-cache)
//
// Keys come from a [Keyer] so that backends never see document contents:
//
//	k := cache.NewDefaultKeyer()
//	key := k.SynthesisKey(cache.Hash(doc), cache.SynthesisKeyOpts{Container: "card"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes of cached entries.
const (
	SynthesisTTL = 7 * 24 * time.Hour
	ArtifactTTL  = 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// SynthesisKey keys the constraint set synthesized from a document.
	SynthesisKey(documentHash string, opts SynthesisKeyOpts) string

	// ArtifactKey keys a rendered artifact of a synthesis result.
	ArtifactKey(synthesisHash string, opts ArtifactKeyOpts) string
}

// SynthesisKeyOpts holds the inputs besides the document that change a
// synthesis result.
type SynthesisKeyOpts struct {
	Container string `json:"container,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components into "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) SynthesisKey(documentHash string, opts SynthesisKeyOpts) string {
	return hashKey("synthesis", documentHash, opts)
}

func (DefaultKeyer) ArtifactKey(synthesisHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", synthesisHash, opts)
}
