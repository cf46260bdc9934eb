package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

func TestFile_CreateListDelete(t *testing.T) {
	// Create a temporary directory for the events file
	tmpDir, err := os.MkdirTemp("", "store-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	fs, err := NewFile(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	fs.now = func() time.Time { return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC) }

	ctx := context.Background()

	// Listing before anything is written returns an empty table
	rows, err := fs.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List() on empty store error = %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("List() on empty store = %d rows, want 0", len(rows))
	}

	records := []*event.Record{
		{ID: "a", Title: "Chess Night", Date: "2026-03-12", City: "Delhi", Tags: []string{"chess"}, ScrapedAt: "2026-03-10T09:00:00.000Z"},
		{ID: "b", Title: "Book Club", Date: "2026-03-11", City: "Gurgaon", ScrapedAt: "2026-03-08T09:00:00.000Z"},
		{ID: "c", Title: "Strategy Games", Date: "2026-03-13", City: "Delhi", ScrapedAt: "2026-03-10T09:00:00.000Z"},
	}
	if err := fs.CreateMany(ctx, records); err != nil {
		t.Fatalf("CreateMany() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "events.json")); err != nil {
		t.Fatalf("events file not written: %v", err)
	}

	tests := []struct {
		name    string
		opts    ListOptions
		wantIDs []string
	}{
		{"all ordered by date", ListOptions{OrderBy: "date"}, []string{"b", "a", "c"}},
		{"equality", ListOptions{Where: Predicate{Eq("city", "Delhi")}, OrderBy: "date"}, []string{"a", "c"}},
		{"limit", ListOptions{OrderBy: "date", Limit: 2}, []string{"b", "a"}},
		{"no match", ListOptions{Where: Predicate{Eq("city", "Mumbai")}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.List(ctx, tt.opts)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("List() = %d rows, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].String("id") != id {
					t.Errorf("row %d id = %s, want %s", i, got[i].String("id"), id)
				}
			}
		})
	}

	// Rows come back from JSON: tags are []any and created_at is stamped
	got, _ := fs.List(ctx, ListOptions{Where: Predicate{Eq("id", "a")}})
	if tags := event.NormalizeTags(got[0]["tags"]); len(tags) != 1 || tags[0] != "chess" {
		t.Errorf("tags = %v, want [chess]", tags)
	}
	if got[0].String("created_at") != "2026-03-10T10:00:00.000Z" {
		t.Errorf("created_at = %q", got[0].String("created_at"))
	}

	removed, err := fs.DeleteMany(ctx, Predicate{Lt("scraped_at", "2026-03-09T09:00:00.000Z")})
	if err != nil {
		t.Fatalf("DeleteMany() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteMany() removed %d, want 1", removed)
	}

	// A fresh store over the same directory sees the persisted state
	reopened, err := NewFile(tmpDir)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	rows, err = reopened.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List() after reopen error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("List() after delete = %d rows, want 2", len(rows))
	}
}

func TestFile_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "events.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFile(tmpDir)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	if _, err := fs.List(context.Background(), ListOptions{}); err == nil {
		t.Error("List() expected error for corrupt file, got nil")
	}
}

func TestFile_LegacyRows(t *testing.T) {
	tmpDir := t.TempDir()
	legacy := `[{"id":"x","date":"2026-03-12","price":"150","isFree":1,"tags":"a, b","registrationUrl":"https://x.example"}]`
	if err := os.WriteFile(filepath.Join(tmpDir, "events.json"), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	fs, err := NewFile(tmpDir)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	rows, err := fs.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	evt := event.Normalize(rows[0])
	if evt.Price != 150 || evt.PriceType != event.PriceFree || evt.RegistrationURL != "https://x.example" {
		t.Errorf("legacy row normalized to %+v", evt)
	}
	if len(evt.Tags) != 2 || evt.Tags[1] != "b" {
		t.Errorf("Tags = %v", evt.Tags)
	}
}
