package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/ingest"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/metrics"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/store"
)

// RetentionTTL is how long stored events survive before an ingestion run
// purges them
const RetentionTTL = 24 * time.Hour

// Sources counts the records each gatherer contributed
type Sources struct {
	Meetup     int `json:"meetup"`
	Eventbrite int `json:"eventbrite"`
	Local      int `json:"local"`
}

// Summary is the ingestion success envelope
type Summary struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	EventsCount int     `json:"events_count"`
	Sources     Sources `json:"sources"`
}

// Ingestion gathers events from every source, purges stale rows and
// stores the new batch
type Ingestion struct {
	store     store.Store
	gatherers []ingest.Gatherer
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewIngestion creates an Ingestion. m may be nil.
func NewIngestion(s store.Store, gatherers []ingest.Gatherer, m *metrics.Metrics) *Ingestion {
	return &Ingestion{
		store:     s,
		gatherers: gatherers,
		metrics:   m,
		now:       time.Now,
	}
}

// Run performs one ingestion pass
func (in *Ingestion) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	logger.Info("Starting event ingestion", logger.Fields{
		"run_id":    runID,
		"gatherers": len(in.gatherers),
	})

	summary, err := in.run(ctx, runID)
	if err != nil {
		in.metrics.ObserveIngest(metrics.StatusError, in.now())
		logger.Error("Event ingestion failed", logger.Fields{"run_id": runID}, err)
		return nil, err
	}

	in.metrics.ObserveIngest(metrics.StatusOK, in.now())
	logger.Info("Event ingestion finished", logger.Fields{
		"run_id": runID,
		"events": summary.EventsCount,
	})
	return summary, nil
}

func (in *Ingestion) run(ctx context.Context, runID string) (*Summary, error) {
	results := ingest.Collect(ctx, in.gatherers)

	var sources Sources
	for _, r := range results {
		if r.Err != nil {
			in.metrics.GathererFailed(r.Source)
		}
		in.metrics.AddGathered(r.Source, len(r.Records))

		switch r.Source {
		case ingest.SourceMeetup:
			sources.Meetup += len(r.Records)
		case ingest.SourceEventbrite:
			sources.Eventbrite += len(r.Records)
		case ingest.SourceLocal:
			sources.Local += len(r.Records)
		}
	}

	batch := ingest.Merge(results)
	logger.Info("Gathered events", logger.Fields{"run_id": runID, "events": len(batch)})

	if len(batch) > 0 {
		if err := in.persist(ctx, runID, batch); err != nil {
			return nil, err
		}
	}

	return &Summary{
		Success:     true,
		Message:     fmt.Sprintf("Successfully scraped and stored %d events", len(batch)),
		EventsCount: len(batch),
		Sources:     sources,
	}, nil
}

// persist purges rows older than the retention window, then inserts batch.
// The two steps are not atomic.
func (in *Ingestion) persist(ctx context.Context, runID string, batch []*event.Record) error {
	const op = "store events"

	cutoff := event.FormatTimestamp(in.now().Add(-RetentionTTL))
	removed, err := in.store.DeleteMany(ctx, store.Predicate{store.Lt("scraped_at", cutoff)})
	if err != nil {
		return storeErr(op, fmt.Errorf("purging stale events: %w", err))
	}

	if err := in.store.CreateMany(ctx, batch); err != nil {
		return storeErr(op, fmt.Errorf("inserting events: %w", err))
	}

	logger.Info("Events stored", logger.Fields{
		"run_id":  runID,
		"purged":  removed,
		"created": len(batch),
		"cutoff":  cutoff,
	})
	return nil
}
