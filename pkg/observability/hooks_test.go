package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "Main.storyboard")
	p.OnLoadComplete(ctx, "Main.storyboard", 2048, time.Second, nil)
	p.OnConvertStart(ctx, "flat")
	p.OnConvertComplete(ctx, "flat", 3, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "graph")
	c.OnCacheSet(ctx, "result", 1024)

	s := NoopSinkHooks{}
	s.OnUnitWritten(ctx, "dir", "GeneratedView1", 512, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Sink().(NoopSinkHooks); !ok {
		t.Error("Sink() should return NoopSinkHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customSink := &testSinkHooks{}
	SetSinkHooks(customSink)
	if Sink() != customSink {
		t.Error("SetSinkHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnLoadComplete(ctx, "a.storyboard", 10, time.Millisecond, nil)
	c.OnLoadComplete(ctx, "b.storyboard", 0, time.Millisecond, errors.New("parse"))
	c.OnConvertComplete(ctx, "flat", 2, time.Millisecond, nil)
	c.OnConvertComplete(ctx, "tab", 4, time.Millisecond, nil)
	c.OnConvertComplete(ctx, "flat", 1, time.Millisecond, nil)
	c.OnConvertComplete(ctx, "flow", 0, time.Millisecond, errors.New("boom"))
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheMiss(ctx, "graph")
	c.OnUnitWritten(ctx, "dir", "A", 100, 0, nil)
	c.OnUnitWritten(ctx, "dir", "B", 50, 0, errors.New("disk full"))

	s := c.Snapshot()
	if s.Loads != 2 || s.LoadFailures != 1 {
		t.Errorf("loads = %d/%d, want 2/1", s.Loads, s.LoadFailures)
	}
	if s.Conversions["flat"] != 2 || s.Conversions["tab"] != 1 || s.ConvertFails != 1 {
		t.Errorf("conversions = %v, failures %d", s.Conversions, s.ConvertFails)
	}
	if s.Units != 7 {
		t.Errorf("units = %d, want 7", s.Units)
	}
	if s.CacheHits != 1 || s.CacheMisses != 2 {
		t.Errorf("cache = %d/%d, want 1/2", s.CacheHits, s.CacheMisses)
	}
	if s.UnitsWritten != 1 || s.WriteFails != 1 || s.BytesWritten != 100 {
		t.Errorf("writes = %+v", s)
	}

	s.Conversions["flat"] = 99
	if c.Snapshot().Conversions["flat"] != 2 {
		t.Error("Snapshot should not share its map with Counters")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testSinkHooks struct{ NoopSinkHooks }
