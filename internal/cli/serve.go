package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/handler"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/metrics"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/schedule"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/service"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		listen   string
		cronSpec string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the events API",
		Long: `Serve GET /get-events, POST /scrape-events, GET /events/{id}.ics,
/health and /metrics. When a schedule is configured, ingestion also runs
on that cron spec.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("schedule") {
				cfg.Schedule = cronSpec
			}
			return runServe(cmd.Context(), root)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (default from config)")
	cmd.Flags().StringVar(&cronSpec, "schedule", "", "Cron spec for periodic ingestion; empty disables")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions) error {
	cfg := root.cfg

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New()
	ingestion, err := newIngestion(cfg, st, m)
	if err != nil {
		return err
	}
	retrieval := service.NewRetrieval(st, m)
	h := handler.New(retrieval, ingestion, st, m)

	srv := &http.Server{
		Addr:        cfg.Listen,
		Handler:     h.Router(),
		ReadTimeout: 15 * time.Second,
		// POST /scrape-events renders every source page inline
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var sched *schedule.Scheduler
	if cfg.Schedule != "" {
		sched, err = schedule.New(cfg.Schedule, func(ctx context.Context) error {
			_, err := ingestion.Run(ctx)
			return err
		})
		if err != nil {
			return err
		}
		sched.Start(runCtx)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", logger.Fields{
			"addr":  cfg.Listen,
			"store": cfg.Store.Driver,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Block until SIGINT or SIGTERM, or the listener fails
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", nil)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Warn("Scheduler did not stop cleanly", logger.Fields{"error": err.Error()})
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped", nil)
	return nil
}
