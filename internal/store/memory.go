package store

import (
	"context"
	"sync"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

// Memory is an in-process Store, used for local runs and tests
type Memory struct {
	mu   sync.RWMutex
	rows []event.Row
	now  func() time.Time
}

// NewMemory creates a Memory store holding the given raw rows.
// Rows are stored as-is so legacy shapes can be seeded.
func NewMemory(rows ...event.Row) *Memory {
	m := &Memory{now: time.Now}
	for _, row := range rows {
		m.rows = append(m.rows, copyRow(row))
	}
	return m
}

// List returns matching rows
func (m *Memory) List(ctx context.Context, opts ListOptions) ([]event.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return selectRows(m.rows, opts)
}

// DeleteMany removes matching rows and returns how many were removed
func (m *Memory) DeleteMany(ctx context.Context, where Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(where) == 0 {
		return 0, ErrUnboundedDelete
	}
	if err := where.Validate(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.rows[:0]
	var removed int64
	for _, row := range m.rows {
		if where.Matches(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return removed, nil
}

// CreateMany appends records, stamping created_at when unset
func (m *Memory) CreateMany(ctx context.Context, records []*event.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	createdAt := event.FormatTimestamp(m.now())
	for _, rec := range records {
		row := rec.Row()
		if rec.CreatedAt == "" {
			row["created_at"] = createdAt
		}
		m.rows = append(m.rows, row)
	}
	return nil
}

// Len returns the number of stored rows
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}
