package observability

import (
	"context"
	"sync"
	"time"
)

// Counters is an in-memory implementation of every hook interface.
// It is safe for concurrent use.
type Counters struct {
	mu sync.Mutex
	s  Snapshot
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Loads        int            `json:"loads"`
	LoadFailures int            `json:"load_failures"`
	Conversions  map[string]int `json:"conversions"`
	ConvertFails int            `json:"convert_failures"`
	Units        int            `json:"units"`
	CacheHits    int            `json:"cache_hits"`
	CacheMisses  int            `json:"cache_misses"`
	UnitsWritten int            `json:"units_written"`
	WriteFails   int            `json:"write_failures"`
	BytesWritten int            `json:"bytes_written"`
	ConvertTime  time.Duration  `json:"convert_time_ns"`
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{s: Snapshot{Conversions: map[string]int{}}}
}

// Snapshot copies the current values.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.s
	out.Conversions = make(map[string]int, len(c.s.Conversions))
	for k, v := range c.s.Conversions {
		out.Conversions[k] = v
	}
	return out
}

func (c *Counters) OnLoadStart(context.Context, string) {}

func (c *Counters) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Loads++
	if err != nil {
		c.s.LoadFailures++
	}
}

func (c *Counters) OnConvertStart(context.Context, string) {}

func (c *Counters) OnConvertComplete(_ context.Context, mode string, units int, d time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.s.ConvertFails++
		return
	}
	c.s.Conversions[mode]++
	c.s.Units += units
	c.s.ConvertTime += d
}

func (c *Counters) OnCacheHit(context.Context, string) {
	c.mu.Lock()
	c.s.CacheHits++
	c.mu.Unlock()
}

func (c *Counters) OnCacheMiss(context.Context, string) {
	c.mu.Lock()
	c.s.CacheMisses++
	c.mu.Unlock()
}

func (c *Counters) OnCacheSet(context.Context, string, int) {}

func (c *Counters) OnUnitWritten(_ context.Context, _, _ string, size int, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.s.WriteFails++
		return
	}
	c.s.UnitsWritten++
	c.s.BytesWritten += size
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ SinkHooks     = (*Counters)(nil)
)
