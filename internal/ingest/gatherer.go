package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/scraper"
)

// Source names, also used as the keys of the ingestion summary
const (
	SourceMeetup     = "meetup"
	SourceEventbrite = "eventbrite"
	SourceLocal      = "local"
)

// Gatherer produces candidate event records from one source
type Gatherer interface {
	Name() string
	Gather(ctx context.Context) ([]*event.Record, error)
}

// Default returns the Meetup, Eventbrite and Local gatherers sharing r and gen
func Default(r scraper.Renderer, gen *Generator) []Gatherer {
	return []Gatherer{
		NewMeetup(r, gen),
		NewEventbrite(r, gen),
		NewLocal(gen),
	}
}

// Result is one gatherer's contribution to a run
type Result struct {
	Source  string
	Records []*event.Record
	Err     error
	Took    time.Duration
}

// Collect runs every gatherer concurrently and waits for all of them.
// A gatherer that fails or panics contributes no records; the failure is
// logged and reported in its Result. Results keep the order of gatherers.
func Collect(ctx context.Context, gatherers []Gatherer) []Result {
	results := make([]Result, len(gatherers))

	var wg sync.WaitGroup
	for i, g := range gatherers {
		wg.Add(1)
		go func(i int, g Gatherer) {
			defer wg.Done()
			results[i] = run(ctx, g)
		}(i, g)
	}
	wg.Wait()

	return results
}

func run(ctx context.Context, g Gatherer) (res Result) {
	start := time.Now()
	res.Source = g.Name()

	defer func() {
		if r := recover(); r != nil {
			res.Records = nil
			res.Err = fmt.Errorf("gatherer panicked: %v", r)
		}
		res.Took = time.Since(start)
		if res.Err != nil {
			res.Records = nil
			logger.Error("Gatherer failed", logger.Fields{
				"source":      res.Source,
				"duration_ms": res.Took.Milliseconds(),
			}, res.Err)
			return
		}
		logger.Info("Gatherer finished", logger.Fields{
			"source":      res.Source,
			"events":      len(res.Records),
			"duration_ms": res.Took.Milliseconds(),
		})
	}()

	res.Records, res.Err = g.Gather(ctx)
	return res
}

// Merge concatenates the records of all results in order
func Merge(results []Result) []*event.Record {
	var n int
	for _, r := range results {
		n += len(r.Records)
	}
	all := make([]*event.Record, 0, n)
	for _, r := range results {
		all = append(all, r.Records...)
	}
	return all
}
