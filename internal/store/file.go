package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

const eventsFile = "events.json"

// File persists event rows as a JSON array in a data directory
type File struct {
	mu      sync.Mutex
	dataDir string
	now     func() time.Time
}

// NewFile creates a new File store rooted at dataDir
func NewFile(dataDir string) (*File, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &File{
		dataDir: dataDir,
		now:     time.Now,
	}, nil
}

// path returns the path to the events file
func (f *File) path() string {
	return filepath.Join(f.dataDir, eventsFile)
}

// load reads all rows from disk. A missing file is an empty table.
func (f *File) load() ([]event.Row, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return []event.Row{}, nil
		}
		return nil, fmt.Errorf("reading events: %w", err)
	}

	var rows []event.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}
	return rows, nil
}

// save writes all rows to disk
func (f *File) save(rows []event.Row) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	if err := os.WriteFile(f.path(), data, 0644); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// List returns matching rows
func (f *File) List(ctx context.Context, opts ListOptions) ([]event.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	rows, err := f.load()
	if err != nil {
		return nil, err
	}
	return selectRows(rows, opts)
}

// DeleteMany removes matching rows and rewrites the file
func (f *File) DeleteMany(ctx context.Context, where Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(where) == 0 {
		return 0, ErrUnboundedDelete
	}
	if err := where.Validate(); err != nil {
		return 0, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	rows, err := f.load()
	if err != nil {
		return 0, err
	}

	kept := make([]event.Row, 0, len(rows))
	var removed int64
	for _, row := range rows {
		if where.Matches(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := f.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// CreateMany appends records and rewrites the file
func (f *File) CreateMany(ctx context.Context, records []*event.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	rows, err := f.load()
	if err != nil {
		return err
	}

	createdAt := event.FormatTimestamp(f.now())
	for _, rec := range records {
		row := rec.Row()
		if rec.CreatedAt == "" {
			row["created_at"] = createdAt
		}
		rows = append(rows, row)
	}
	return f.save(rows)
}

// Close is a no-op
func (f *File) Close() error {
	return nil
}
