// Package cache stores conversion results keyed by descriptor content.
//
// Every backend implements [Cache]. The CLI uses [FileCache] under the
// user cache directory, `storyswift serve` uses [MemoryCache] or
// [RedisCache], and [NullCache] disables caching. Keys come from a
// [Keyer] so the same descriptor converted with the same options always
// maps to the same entry.
package cache

import (
	"context"
	"slices"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Entry lifetimes.
const (
	// TTLResult is the lifetime of generated units.
	TTLResult = 7 * 24 * time.Hour
	// TTLGraph is the lifetime of extracted navigation graphs.
	TTLGraph = 7 * 24 * time.Hour
)

// ResultKeyOpts lists the options that change generated output.
type ResultKeyOpts struct {
	Mode             string   `json:"mode"`
	PlaceholderLabel string   `json:"placeholder_label"`
	SegueKinds       []string `json:"segue_kinds"`
	ChildContent     bool     `json:"child_content"`
	// Version invalidates entries written by other builds.
	Version string `json:"version"`
}

// GraphKeyOpts lists the options that change an extracted graph.
type GraphKeyOpts struct {
	SegueKinds []string `json:"segue_kinds"`
	Version    string   `json:"version"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey keys the units generated from a descriptor.
	ResultKey(descriptorHash string, opts ResultKeyOpts) string
	// GraphKey keys the navigation graph extracted from a descriptor.
	GraphKey(descriptorHash string, opts GraphKeyOpts) string
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey returns "result:<sha256>".
func (DefaultKeyer) ResultKey(descriptorHash string, opts ResultKeyOpts) string {
	opts.SegueKinds = sortedCopy(opts.SegueKinds)
	return hashKey("result", descriptorHash, opts)
}

// GraphKey returns "graph:<sha256>".
func (DefaultKeyer) GraphKey(descriptorHash string, opts GraphKeyOpts) string {
	opts.SegueKinds = sortedCopy(opts.SegueKinds)
	return hashKey("graph", descriptorHash, opts)
}

// sortedCopy makes kind order irrelevant to the key.
func sortedCopy(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}
