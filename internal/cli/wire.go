package cli

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/config"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/ingest"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/metrics"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/scraper"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/service"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/store"
)

// openStore constructs the configured store backend
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return store.NewMemory(), nil
	case config.DriverFile:
		st, err := store.NewFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("initializing file store: %w", err)
		}
		return st, nil
	case config.DriverPostgres:
		st, err := store.NewPostgres(ctx, store.PostgresConfig{
			DSN:      cfg.DSN,
			MaxConns: cfg.MaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing postgres store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}
}

// newIngestion builds the ingestion service with the default gatherers
// over the configured renderer
func newIngestion(cfg *config.Config, st store.Store, m *metrics.Metrics) (*service.Ingestion, error) {
	renderer, err := scraper.NewRenderer(scraper.Options{
		Kind:       cfg.Renderer.Kind,
		Timeout:    cfg.Renderer.Timeout,
		UserAgent:  cfg.Renderer.UserAgent,
		ChromePath: cfg.Renderer.ChromePath,
	})
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	gen := ingest.NewGenerator(rng, nil)

	logger.Debug("Ingestion configured", logger.Fields{
		"renderer": cfg.Renderer.Kind,
		"store":    cfg.Store.Driver,
		"seeded":   cfg.Seed != 0,
	})

	return service.NewIngestion(st, ingest.Default(renderer, gen), m), nil
}
