// Package metrics holds the Prometheus collectors for the retrieval and
// ingestion services.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ncr_events"

// Metrics groups the collectors and the registry they are registered on.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	retrievalRequests *prometheus.CounterVec
	retrievalDuration prometheus.Summary
	ingestRuns        *prometheus.CounterVec
	ingestedEvents    *prometheus.CounterVec
	gathererFailures  *prometheus.CounterVec
	lastIngestTS      prometheus.Gauge
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.retrievalRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retrieval_requests_total",
		Help:      "Number of retrieval requests by status",
	}, []string{"status"})
	m.retrievalDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: namespace,
		Name:      "retrieval_duration_seconds",
		Help:      "Time spent answering retrieval requests",
	})
	m.ingestRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_runs_total",
		Help:      "Number of ingestion runs by status",
	}, []string{"status"})
	m.ingestedEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingested_events_total",
		Help:      "Number of events gathered by source",
	}, []string{"source"})
	m.gathererFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gatherer_failures_total",
		Help:      "Number of failed gatherer runs by source",
	}, []string{"source"})
	m.lastIngestTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_ingest_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful ingestion run",
	})

	m.registry.MustRegister(
		m.retrievalRequests, m.retrievalDuration,
		m.ingestRuns, m.ingestedEvents, m.gathererFailures, m.lastIngestTS,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRetrieval records one retrieval request
func (m *Metrics) ObserveRetrieval(status string, took time.Duration) {
	if m == nil {
		return
	}
	m.retrievalRequests.WithLabelValues(status).Inc()
	m.retrievalDuration.Observe(took.Seconds())
}

// ObserveIngest records the outcome of one ingestion run
func (m *Metrics) ObserveIngest(status string, at time.Time) {
	if m == nil {
		return
	}
	m.ingestRuns.WithLabelValues(status).Inc()
	if status == StatusOK {
		m.lastIngestTS.Set(float64(at.Unix()))
	}
}

// AddGathered adds n gathered events for a source
func (m *Metrics) AddGathered(source string, n int) {
	if m == nil {
		return
	}
	m.ingestedEvents.WithLabelValues(source).Add(float64(n))
}

// GathererFailed counts one failed gatherer run
func (m *Metrics) GathererFailed(source string) {
	if m == nil {
		return
	}
	m.gathererFailures.WithLabelValues(source).Inc()
}

// Status label values
const (
	StatusOK    = "ok"
	StatusError = "error"
)
