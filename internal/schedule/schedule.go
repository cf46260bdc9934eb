// Package schedule triggers ingestion runs on a cron spec in serve mode.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
)

// Job is the work run on every tick
type Job func(ctx context.Context) error

// Scheduler runs one Job on a standard five-field cron spec. A tick that
// fires while the previous run is still going is skipped.
type Scheduler struct {
	cron *cron.Cron
	spec string

	mu  sync.Mutex
	ctx context.Context
}

// New validates spec and registers job
func New(spec string, job Job) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", spec, err)
	}

	s := &Scheduler{spec: spec, ctx: context.Background()}
	log := cronLogger{}
	s.cron = cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)

	if _, err := s.cron.AddFunc(spec, func() { s.run(job) }); err != nil {
		return nil, fmt.Errorf("registering job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) run(job Job) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Error("Scheduled ingestion failed", logger.Fields{"schedule": s.spec}, err)
		return
	}
	logger.Info("Scheduled ingestion finished", logger.Fields{
		"schedule":    s.spec,
		"duration_ms": time.Since(start).Milliseconds(),
		"next":        s.Next().Format(time.RFC3339),
	})
}

// Start begins ticking in the background. Jobs receive ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	logger.Info("Scheduler started", logger.Fields{
		"schedule": s.spec,
		"next":     s.Next().Format(time.RFC3339),
	})
}

// Stop stops ticking and waits for a running job until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next scheduled run, or the zero time before Start
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// cronLogger routes cron's own messages into the structured logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, pairs(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, pairs(keysAndValues), err)
}

func pairs(kv []interface{}) logger.Fields {
	if len(kv) == 0 {
		return nil
	}
	fields := make(logger.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
