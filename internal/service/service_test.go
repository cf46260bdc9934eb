package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/ingest"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/metrics"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/store"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func seedRows() []event.Row {
	return []event.Row{
		{"id": "free-delhi", "title": "Knight Moves", "description": "Open Chess evening", "date": "2026-03-12",
			"city": "Delhi", "category": "Chess", "price": 0, "is_free": true, "venue": "India Habitat Centre", "organizer": "Delhi Chess Society"},
		{"id": "paid-delhi", "title": "Strategy Games Night", "description": "Catan and more", "date": "2026-03-14",
			"city": "Delhi", "category": "Board Games", "price": "350", "is_free": false, "venue": "Khan Market Community Center", "organizer": "Delhi Board Games Society"},
		{"id": "paid-gurgaon", "title": "Philosophy Cafe", "description": "Stoicism today", "date": "2026-03-11",
			"city": "Gurgaon", "category": "Discussion", "price": 500, "is_free": 0, "venue": "DLF CyberHub", "organizer": "Gurgaon Discussion Society"},
		{"id": "legacy", "title": "Reading Circle", "description": "Non-fiction", "date": "2026-03-15",
			"city": "Gurgaon", "category": "Book Club", "price": "abc", "isFree": 1, "tags": "books, gurgaon",
			"venue": "Ambience Mall", "organizer": "Readers Club", "sourcePlatform": "Local Community"},
	}
}

func ids(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRetrieval_Find(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{
			name:    "no filters ordered by date",
			query:   Query{},
			wantIDs: []string{"paid-gurgaon", "free-delhi", "paid-delhi", "legacy"},
		},
		{
			name:    "All behaves like absent",
			query:   Query{Category: "All", City: "All"},
			wantIDs: []string{"paid-gurgaon", "free-delhi", "paid-delhi", "legacy"},
		},
		{
			name:    "category equality",
			query:   Query{Category: "Chess"},
			wantIDs: []string{"free-delhi"},
		},
		{
			name:    "free Delhi event under maxPrice 0",
			query:   Query{City: "Delhi", MaxPrice: "0"},
			wantIDs: []string{"free-delhi"},
		},
		{
			name:    "string prices are coerced",
			query:   Query{MaxPrice: "400"},
			wantIDs: []string{"free-delhi", "paid-delhi", "legacy"},
		},
		{
			name:    "search matches description case-insensitively",
			query:   Query{Search: "chess"},
			wantIDs: []string{"free-delhi"},
		},
		{
			name:    "search matches venue and organizer",
			query:   Query{Search: "CYBERHUB"},
			wantIDs: []string{"paid-gurgaon"},
		},
		{
			name:    "date bounds are inclusive",
			query:   Query{StartDate: "2026-03-12", EndDate: "2026-03-14"},
			wantIDs: []string{"free-delhi", "paid-delhi"},
		},
		{
			name:    "single date bound is ignored",
			query:   Query{StartDate: "2026-03-14"},
			wantIDs: []string{"paid-gurgaon", "free-delhi", "paid-delhi", "legacy"},
		},
		{
			name:    "filters combine",
			query:   Query{City: "Gurgaon", MaxPrice: "1000", Search: "read", StartDate: "2026-03-01", EndDate: "2026-03-31"},
			wantIDs: []string{"legacy"},
		},
		{
			name:    "unknown city",
			query:   Query{City: "Mumbai"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRetrieval(store.NewMemory(seedRows()...), nil)
			res, err := r.Find(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if !res.Success {
				t.Error("Success = false")
			}
			if got := ids(res.Events); !equal(got, tt.wantIDs) {
				t.Errorf("Find() ids = %v, want %v", got, tt.wantIDs)
			}
			if res.Count != len(res.Events) {
				t.Errorf("Count = %d, len(Events) = %d", res.Count, len(res.Events))
			}
		})
	}
}

func TestRetrieval_Normalizes(t *testing.T) {
	r := NewRetrieval(store.NewMemory(seedRows()...), nil)
	res, err := r.Find(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	byID := make(map[string]*event.Event)
	for _, e := range res.Events {
		byID[e.ID] = e
	}

	tests := []struct {
		id        string
		price     int
		priceType string
	}{
		{"free-delhi", 0, event.PriceFree},
		{"paid-delhi", 350, event.PricePaid},
		{"paid-gurgaon", 500, event.PricePaid},
		{"legacy", 0, event.PriceFree},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			e := byID[tt.id]
			if e.Price != tt.price || e.PriceType != tt.priceType {
				t.Errorf("price/priceType = %d/%s, want %d/%s", e.Price, e.PriceType, tt.price, tt.priceType)
			}
			if e.Tags == nil {
				t.Error("Tags should never be nil")
			}
		})
	}

	legacy := byID["legacy"]
	if len(legacy.Tags) != 2 || legacy.Tags[0] != "books" || legacy.Tags[1] != "gurgaon" {
		t.Errorf("legacy tags = %v", legacy.Tags)
	}
	if legacy.SourcePlatform != "Local Community" {
		t.Errorf("legacy sourcePlatform = %q", legacy.SourcePlatform)
	}
}

func TestRetrieval_NonNumericMaxPrice(t *testing.T) {
	r := NewRetrieval(store.NewMemory(seedRows()...), nil)

	// No leading integer: every price comparison fails
	none, err := r.Find(context.Background(), Query{MaxPrice: "cheap"})
	if err != nil {
		t.Fatalf("Find(cheap) error = %v", err)
	}
	if !none.Success || none.Count != 0 || len(none.Events) != 0 {
		t.Errorf("Find(cheap) = %+v, want success with no events", none)
	}

	// parseInt semantics: a numeric prefix is accepted
	res, err := r.Find(context.Background(), Query{MaxPrice: "350rs"})
	if err != nil {
		t.Fatalf("Find(350rs) error = %v", err)
	}
	if res.Count != 3 {
		t.Errorf("Find(350rs) count = %d, want 3", res.Count)
	}
}

func TestRetrieval_SkipsMalformedDates(t *testing.T) {
	st := store.NewMemory(
		event.Row{"id": "ok", "date": "2026-03-12", "price": -5},
		event.Row{"id": "slashes", "date": "12/03/2026"},
		event.Row{"id": "missing"},
	)
	r := NewRetrieval(st, nil)

	res, err := r.Find(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if res.Count != 1 || res.Events[0].ID != "ok" {
		t.Fatalf("Events = %+v, want only ok", res.Events)
	}
	if res.Events[0].Price != 0 {
		t.Errorf("negative price normalized to %d, want 0", res.Events[0].Price)
	}
}

func TestRetrieval_Limit(t *testing.T) {
	rows := make([]event.Row, 0, 150)
	for i := 0; i < 150; i++ {
		rows = append(rows, event.Row{
			"id":   fmt.Sprintf("e%03d", i),
			"date": fmt.Sprintf("2026-%02d-%02d", 1+i/28, 1+i%28),
		})
	}
	r := NewRetrieval(store.NewMemory(rows...), nil)

	res, err := r.Find(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if res.Count != ListLimit {
		t.Errorf("Count = %d, want %d", res.Count, ListLimit)
	}

	// The cap applies before the date filter
	res, _ = r.Find(context.Background(), Query{StartDate: "2026-05-01", EndDate: "2026-12-31"})
	if res.Count != 0 {
		t.Errorf("Count past the cap = %d, want 0", res.Count)
	}
}

// failingStore fails every operation
type failingStore struct {
	err error
}

func (f *failingStore) List(ctx context.Context, opts store.ListOptions) ([]event.Row, error) {
	return nil, f.err
}

func (f *failingStore) DeleteMany(ctx context.Context, where store.Predicate) (int64, error) {
	return 0, f.err
}

func (f *failingStore) CreateMany(ctx context.Context, records []*event.Record) error {
	return f.err
}

func (f *failingStore) Close() error { return nil }

func TestRetrieval_StoreError(t *testing.T) {
	m := metrics.New()
	r := NewRetrieval(&failingStore{err: errors.New("connection refused")}, m)

	res, err := r.Find(context.Background(), Query{})
	if res != nil {
		t.Errorf("Find() result = %+v, want nil", res)
	}
	if KindOf(err) != KindStore {
		t.Errorf("KindOf() = %s, want %s", KindOf(err), KindStore)
	}
	if MessageOf(err) != "connection refused" {
		t.Errorf("MessageOf() = %q", MessageOf(err))
	}
}

type stubGatherer struct {
	name    string
	records []*event.Record
	err     error
}

func (s *stubGatherer) Name() string { return s.name }

func (s *stubGatherer) Gather(ctx context.Context) ([]*event.Record, error) {
	return s.records, s.err
}

func newIngestion(s store.Store, gatherers ...ingest.Gatherer) *Ingestion {
	in := NewIngestion(s, gatherers, metrics.New())
	in.now = func() time.Time { return now }
	return in
}

func storedIDs(t *testing.T, s store.Store) []string {
	t.Helper()
	rows, err := s.List(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String("id")
	}
	sort.Strings(out)
	return out
}

func TestIngestion_PurgesOnlyStaleRows(t *testing.T) {
	mem := store.NewMemory(
		event.Row{"id": "recent", "scraped_at": event.FormatTimestamp(now.Add(-time.Hour))},
		event.Row{"id": "stale", "scraped_at": event.FormatTimestamp(now.Add(-48 * time.Hour))},
		// 20 hours old with a negative offset, so its wall clock text sorts before the cutoff
		event.Row{"id": "offset", "scraped_at": now.Add(-20 * time.Hour).In(time.FixedZone("EST", -5*3600)).Format(event.TimestampLayout)},
	)
	fresh := &event.Record{ID: "fresh", Title: "Rapid Chess Battle", ScrapedAt: event.FormatTimestamp(now)}

	in := newIngestion(mem, &stubGatherer{name: ingest.SourceLocal, records: []*event.Record{fresh}})
	summary, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := storedIDs(t, mem), []string{"fresh", "offset", "recent"}; !equal(got, want) {
		t.Errorf("stored ids = %v, want %v", got, want)
	}
	if summary.EventsCount != 1 || summary.Sources.Local != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Message != "Successfully scraped and stored 1 events" {
		t.Errorf("Message = %q", summary.Message)
	}
}

func TestIngestion_EmptyBatchSkipsStore(t *testing.T) {
	mem := store.NewMemory(
		event.Row{"id": "stale", "scraped_at": event.FormatTimestamp(now.Add(-72 * time.Hour))},
	)

	in := newIngestion(mem, &stubGatherer{name: ingest.SourceMeetup, err: errors.New("blocked")})
	summary, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.Success || summary.EventsCount != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if got := storedIDs(t, mem); !equal(got, []string{"stale"}) {
		t.Errorf("stored ids = %v, want [stale]", got)
	}
}

func TestIngestion_SourcesAndIsolation(t *testing.T) {
	gen := ingest.NewGenerator(rand.New(rand.NewSource(11)), func() time.Time { return now })
	mem := store.NewMemory()

	in := newIngestion(mem,
		&stubGatherer{name: ingest.SourceMeetup, err: errors.New("timeout")},
		&stubGatherer{name: ingest.SourceEventbrite, records: []*event.Record{{ID: "eb1", ScrapedAt: event.FormatTimestamp(now)}}},
		ingest.NewLocal(gen),
	)

	summary, err := in.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := Sources{Meetup: 0, Eventbrite: 1, Local: ingest.LocalCount}
	if summary.Sources != want {
		t.Errorf("Sources = %+v, want %+v", summary.Sources, want)
	}
	if summary.EventsCount != 1+ingest.LocalCount || mem.Len() != 1+ingest.LocalCount {
		t.Errorf("EventsCount = %d, stored = %d", summary.EventsCount, mem.Len())
	}
}

func TestIngestion_StoreError(t *testing.T) {
	in := newIngestion(&failingStore{err: errors.New("disk full")},
		&stubGatherer{name: ingest.SourceLocal, records: []*event.Record{{ID: "x"}}})

	summary, err := in.Run(context.Background())
	if summary != nil {
		t.Errorf("Run() summary = %+v, want nil", summary)
	}
	if KindOf(err) != KindStore {
		t.Errorf("KindOf() = %s, want %s", KindOf(err), KindStore)
	}
	if MessageOf(err) != "purging stale events: disk full" {
		t.Errorf("MessageOf() = %q", MessageOf(err))
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"store", storeErr("op", errors.New("x")), KindStore},
		{"wrapped store", fmt.Errorf("outer: %w", storeErr("op", errors.New("x"))), KindStore},
		{"plain error", errors.New("plain"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}
