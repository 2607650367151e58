package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/storyswift/pkg/cache"
	"github.com/matzehuels/storyswift/pkg/navigation"
	"github.com/matzehuels/storyswift/pkg/observability"
	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store conversion results. Multiple goroutines can safely use the same
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

// Convert runs the complete load → detect → generate pipeline with caching.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Load
	loadStart := time.Now()
	data, err := r.read(ctx, opts)
	if err != nil {
		return nil, err
	}
	hash := cache.Hash(data)
	cacheKey := r.Keyer.ResultKey(hash, opts.ResultKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.cachedResult(ctx, cacheKey); ok {
			r.loaded(ctx, opts, len(data), loadStart, nil)
			cached.Stats.LoadTime = time.Since(loadStart)
			cached.CacheInfo.ResultHit = true
			opts.Logger.Debug("using cached result", "mode", cached.Mode, "units", len(cached.Units))
			return cached, nil
		}
	}

	doc, err := storyboard.Parse(data)
	r.loaded(ctx, opts, len(data), loadStart, err)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)
	opts.Logger.Debug("loaded descriptor", "source", sourceName(opts), "bytes", len(data), "duration", loadTime)

	// Stages 2 and 3: Detect and generate
	genStart := time.Now()
	observability.Pipeline().OnConvertStart(ctx, opts.Mode)
	result, err := Generate(doc, opts)
	if err != nil {
		observability.Pipeline().OnConvertComplete(ctx, opts.Mode, 0, time.Since(genStart), err)
		return nil, err
	}
	result.DescriptorHash = hash
	result.Stats.LoadTime = loadTime
	result.Stats.GenerateTime = time.Since(genStart)
	observability.Pipeline().OnConvertComplete(ctx, result.Mode, len(result.Units), result.Stats.GenerateTime, nil)

	for _, w := range result.Warnings {
		opts.Logger.Warn(w)
	}
	opts.Logger.Info("generated units",
		"mode", result.Mode,
		"screens", result.Stats.Screens,
		"units", len(result.Units),
		"duration", result.Stats.GenerateTime)

	if result.UsesClock {
		opts.Logger.Debug("result depends on the current time; not cached")
		return result, nil
	}
	if payload, err := json.Marshal(result); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, payload, cache.TTLResult); err != nil {
			opts.Logger.Debug("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "result", len(payload))
		}
	}
	return result, nil
}

// GraphWithCacheInfo extracts the navigation graph with caching and
// returns cache hit info.
func (r *Runner) GraphWithCacheInfo(ctx context.Context, opts Options) (navigation.Graph, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return navigation.Graph{}, false, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	start := time.Now()
	data, err := r.read(ctx, opts)
	if err != nil {
		return navigation.Graph{}, false, err
	}
	cacheKey := r.Keyer.GraphKey(cache.Hash(data), opts.GraphKeyOpts())

	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var g navigation.Graph
			if err := json.Unmarshal(raw, &g); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				r.loaded(ctx, opts, len(data), start, nil)
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	doc, err := storyboard.Parse(data)
	r.loaded(ctx, opts, len(data), start, err)
	if err != nil {
		return navigation.Graph{}, false, err
	}

	g := navigation.BuildGraph(doc, opts.Kinds())
	if len(g.IgnoredKinds) > 0 {
		opts.Logger.Warn("segue kinds not followed", "kinds", g.IgnoredKinds)
	}
	if payload, err := json.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, payload, cache.TTLGraph); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(payload))
		}
	}
	return g, false, nil
}

// Graph is a convenience wrapper that calls GraphWithCacheInfo and discards the cache hit info.
func (r *Runner) Graph(ctx context.Context, opts Options) (navigation.Graph, error) {
	g, _, err := r.GraphWithCacheInfo(ctx, opts)
	return g, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// read returns the raw descriptor bytes.
func (r *Runner) read(ctx context.Context, opts Options) ([]byte, error) {
	observability.Pipeline().OnLoadStart(ctx, sourceName(opts))
	if len(opts.Data) > 0 {
		return opts.Data, nil
	}
	start := time.Now()
	data, err := storyboard.ReadFile(opts.Path)
	if err != nil {
		r.loaded(ctx, opts, 0, start, err)
		return nil, err
	}
	return data, nil
}

func (r *Runner) loaded(ctx context.Context, opts Options, size int, start time.Time, err error) {
	observability.Pipeline().OnLoadComplete(ctx, sourceName(opts), size, time.Since(start), err)
}

// cachedResult returns a stored result for key, if any.
func (r *Runner) cachedResult(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil || len(result.Units) == 0 {
		// Unreadable entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, "result")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "result")
	return &result, true
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func sourceName(opts Options) string {
	if len(opts.Data) > 0 || opts.Path == "" {
		return "<memory>"
	}
	return opts.Path
}
