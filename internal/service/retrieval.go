package service

import (
	"context"
	"strings"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/metrics"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/store"
)

// ListLimit caps how many rows one retrieval reads from the store.
// Date, price and search filters apply after the cap.
const ListLimit = 100

// Query holds the raw retrieval parameters. Every field is optional.
type Query struct {
	StartDate string
	EndDate   string
	Category  string
	City      string
	MaxPrice  string
	Search    string
}

// Result is the retrieval success envelope
type Result struct {
	Success bool           `json:"success"`
	Events  []*event.Event `json:"events"`
	Count   int            `json:"count"`
}

// Retrieval answers filtered event listings
type Retrieval struct {
	store   store.Store
	metrics *metrics.Metrics
}

// NewRetrieval creates a Retrieval over s. m may be nil.
func NewRetrieval(s store.Store, m *metrics.Metrics) *Retrieval {
	return &Retrieval{store: s, metrics: m}
}

// Find lists events matching q, ordered by date
func (r *Retrieval) Find(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()
	res, err := r.find(ctx, q)

	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
		logger.Error("Error fetching events", logger.Fields{
			"kind":  KindOf(err),
			"query": q,
		}, err)
	}
	r.metrics.ObserveRetrieval(status, time.Since(start))
	return res, err
}

func (r *Retrieval) find(ctx context.Context, q Query) (*Result, error) {
	const op = "find events"

	// A maxPrice without a leading integer admits no price, so nothing matches
	maxPrice, hasMax := 0, q.MaxPrice != ""
	priceless := false
	if hasMax {
		maxPrice, hasMax = event.ParseLeadingInt(q.MaxPrice)
		priceless = !hasMax
	}

	var where store.Predicate
	if restricts(q.Category) {
		where = append(where, store.Eq("category", q.Category))
	}
	if restricts(q.City) {
		where = append(where, store.Eq("city", q.City))
	}

	rows, err := r.store.List(ctx, store.ListOptions{
		Where:   where,
		OrderBy: "date",
		Limit:   ListLimit,
	})
	if err != nil {
		return nil, storeErr(op, err)
	}

	logger.Debug("Raw events from store", logger.Fields{"rows": len(rows), "conditions": len(where)})

	search := strings.ToLower(q.Search)
	events := make([]*event.Event, 0, len(rows))
	for _, row := range rows {
		if !event.IsValidDate(row.String("date")) {
			logger.Debug("Skipping event with malformed date", logger.Fields{"id": row.String("id")})
			continue
		}
		// Date range applies only when both bounds are given
		if q.StartDate != "" && q.EndDate != "" && !event.InDateRange(row.String("date"), q.StartDate, q.EndDate) {
			continue
		}
		if priceless || hasMax && event.CoercePrice(row.Lookup("price")) > maxPrice {
			continue
		}
		if search != "" && !matchesSearch(row, search) {
			continue
		}
		events = append(events, event.Normalize(row))
	}

	return &Result{Success: true, Events: events, Count: len(events)}, nil
}

// restricts reports whether a category or city value narrows the listing
func restricts(v string) bool {
	return v != "" && v != event.AllValue
}

var searchFields = []string{"title", "description", "venue", "organizer"}

func matchesSearch(row event.Row, needle string) bool {
	for _, f := range searchFields {
		if strings.Contains(strings.ToLower(row.String(f)), needle) {
			return true
		}
	}
	return false
}
