// Package sink writes generated units to their destination.
//
// A [Sink] receives one unit at a time through WriteUnit. [DirSink] places
// files in a timestamped run folder on disk, [MongoSink] upserts one
// document per unit and [S3Sink] stores one object per unit. [WriteAll]
// writes a batch concurrently; a failed unit is reported in its [Outcome]
// and never stops the remaining writes.
package sink

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/storyswift/pkg/errors"
	"github.com/matzehuels/storyswift/pkg/observability"
	"github.com/matzehuels/storyswift/pkg/swiftui"
)

// DefaultConcurrency bounds parallel writes in WriteAll.
const DefaultConcurrency = 4

// Sink stores generated units.
type Sink interface {
	// Kind names the backend ("dir", "mongo", "s3").
	Kind() string
	// WriteUnit stores the source text of the unit called name.
	WriteUnit(ctx context.Context, name, text string) error
	// Close releases the backend.
	Close() error
}

// Locator is implemented by sinks that can tell where a unit was stored.
type Locator interface {
	Location(name string) string
}

// Outcome is the result of writing one unit.
type Outcome struct {
	Name     string
	Location string
	Size     int
	Err      error
}

// WriteAll writes units to s with at most concurrency writes in flight.
// Outcomes are returned in unit order. Invalid names are rejected without
// calling the sink.
func WriteAll(ctx context.Context, s Sink, units []swiftui.Unit, concurrency int) []Outcome {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	out := make([]Outcome, len(units))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, u := range units {
		g.Go(func() error {
			out[i] = writeOne(ctx, s, u)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func writeOne(ctx context.Context, s Sink, u swiftui.Unit) Outcome {
	o := Outcome{Name: u.Name, Size: len(u.Source)}
	if loc, ok := s.(Locator); ok {
		o.Location = loc.Location(u.Name)
	}
	if err := errors.ValidateUnitName(u.Name); err != nil {
		o.Err = err
		return o
	}

	start := time.Now()
	err := ctx.Err()
	if err == nil {
		err = s.WriteUnit(ctx, u.Name, u.Source)
	}
	if err != nil {
		o.Err = errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", u.FileName())
	}
	observability.Sink().OnUnitWritten(ctx, s.Kind(), u.Name, o.Size, time.Since(start), o.Err)
	return o
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
