// Package cache stores rendered artifacts and generated documents.
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis server, for multi-instance API deployments
//
// All backends implement [Cache]. A TTL of zero means the entry never
// expires.
//
// # Keys
//
// A [Keyer] builds keys from content hashes and render options, so two
// requests that would produce the same bytes share one entry:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{VizType: "radial", Format: "png", Scale: 2})
//
// [ScopedKeyer] prefixes every key to separate tenants or environments
// sharing one backend.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// TTLDocument keeps generated documents for a day, so repeated requests
	// for the same outline return the same node IDs.
	TTLDocument = 24 * time.Hour

	// TTLArtifact keeps rendered outputs for a week; they are derived purely
	// from the document and options.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. Misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey is the key of a document generated from an outline request.
	DocumentKey(requestHash string) string
	// ArtifactKey is the key of one rendered output of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	VizType    string  `json:"viz_type"`
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	EmbedFonts bool    `json:"embed_fonts,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
	// ThemesHash identifies the theme set used to resolve colors.
	ThemesHash string `json:"themes_hash,omitempty"`
}

// DefaultKeyer builds "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DocumentKey(requestHash string) string {
	return hashKey("document", requestHash)
}

func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
