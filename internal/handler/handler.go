// Package handler contains the chi HTTP handlers that translate requests
// and responses to and from the retrieval and ingestion services.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/calendar"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/metrics"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/service"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/store"
)

// ScrapeFailedMessage is the message of every ingestion failure envelope
const ScrapeFailedMessage = "Failed to scrape events"

// Handler holds the HTTP handlers for the events API
type Handler struct {
	retrieval *service.Retrieval
	ingestion *service.Ingestion
	store     store.Store
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New constructs a Handler. st backs the calendar export; m may be nil.
func New(retrieval *service.Retrieval, ingestion *service.Ingestion, st store.Store, m *metrics.Metrics) *Handler {
	return &Handler{
		retrieval: retrieval,
		ingestion: ingestion,
		store:     st,
		metrics:   m,
		now:       time.Now,
	}
}

// Router builds the chi router with the middleware stack and every route
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(CORS) // answers preflight before routing

	r.Get("/health", HealthCheck)
	r.Get("/get-events", h.GetEvents)
	r.Post("/scrape-events", h.ScrapeEvents)
	r.Get("/events/{id}.ics", h.EventICS)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	return r
}

// ─── Envelopes ────────────────────────────────────────────────────────────────

type eventsFailure struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Events  []*event.Event `json:"events"`
	Count   int            `json:"count"`
}

type scrapeFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// GetEvents handles GET /get-events
// Filters by startDate, endDate, category, city, maxPrice and search.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := service.Query{
		StartDate: params.Get("startDate"),
		EndDate:   params.Get("endDate"),
		Category:  params.Get("category"),
		City:      params.Get("city"),
		MaxPrice:  params.Get("maxPrice"),
		Search:    params.Get("search"),
	}

	res, err := h.retrieval.Find(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, eventsFailure{
			Success: false,
			Error:   service.MessageOf(err),
			Events:  []*event.Event{},
			Count:   0,
		})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// ScrapeEvents handles POST /scrape-events
// Runs one ingestion pass and reports per-source counts.
func (h *Handler) ScrapeEvents(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ingestion.Run(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, scrapeFailure{
			Success: false,
			Error:   service.MessageOf(err),
			Message: ScrapeFailedMessage,
		})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// EventICS handles GET /events/{id}.ics
// Returns one stored event as an iCalendar document.
func (h *Handler) EventICS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	row, err := store.FindByID(r.Context(), h.store, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		logger.Error("Error loading event", logger.Fields{"id": id}, err)
		writeError(w, http.StatusInternalServerError, "failed to load event")
		return
	}

	body := calendar.GenerateICS(event.Normalize(row), h.now())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
