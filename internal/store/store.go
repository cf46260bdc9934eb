package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnboundedDelete is returned when DeleteMany is called without conditions.
var ErrUnboundedDelete = errors.New("delete requires at least one condition")

// Op is a comparison operator usable in a Condition
type Op string

const (
	OpEq Op = "="
	OpLt Op = "<"
)

// Condition compares one event field against a value
type Condition struct {
	Field string
	Op    Op
	Value string
}

// Eq builds an equality condition
func Eq(field, value string) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// Lt builds a strictly-less-than condition
func Lt(field, value string) Condition {
	return Condition{Field: field, Op: OpLt, Value: value}
}

// Predicate is a conjunction of conditions. An empty predicate matches every row.
type Predicate []Condition

// Matches evaluates the predicate against a row. Timestamp fields compare
// as instants so mixed UTC offsets order correctly; other fields use string
// comparison, which orders ISO dates.
func (p Predicate) Matches(row event.Row) bool {
	for _, c := range p {
		v := row.String(c.Field)
		switch c.Op {
		case OpEq:
			if compare(c.Field, v, c.Value) != 0 {
				return false
			}
		case OpLt:
			if compare(c.Field, v, c.Value) >= 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// timestampFields hold ISO timestamps that may carry any UTC offset
var timestampFields = map[string]bool{"scraped_at": true, "created_at": true}

func compare(field, a, b string) int {
	if timestampFields[field] {
		ta, errA := time.Parse(time.RFC3339Nano, a)
		tb, errB := time.Parse(time.RFC3339Nano, b)
		if errA == nil && errB == nil {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(a, b)
}

// Validate checks that every condition names a known field and operator
func (p Predicate) Validate() error {
	for _, c := range p {
		if _, ok := columns[c.Field]; !ok {
			return fmt.Errorf("unknown field: %s", c.Field)
		}
		if c.Op != OpEq && c.Op != OpLt {
			return fmt.Errorf("unsupported operator: %s", c.Op)
		}
	}
	return nil
}

// ListOptions narrows and orders a List call
type ListOptions struct {
	Where   Predicate
	OrderBy string // field name, ascending; empty keeps insertion order
	Limit   int    // 0 means unlimited
}

// Store is the event table the services read from and write to
type Store interface {
	List(ctx context.Context, opts ListOptions) ([]event.Row, error)
	DeleteMany(ctx context.Context, where Predicate) (int64, error)
	CreateMany(ctx context.Context, records []*event.Record) error
	Close() error
}

// FindByID returns the row with the given id or ErrNotFound
func FindByID(ctx context.Context, s Store, id string) (event.Row, error) {
	rows, err := s.List(ctx, ListOptions{Where: Predicate{Eq("id", id)}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// selectRows filters, sorts and limits rows in memory. Shared by the
// memory and file backends.
func selectRows(all []event.Row, opts ListOptions) ([]event.Row, error) {
	if err := opts.Where.Validate(); err != nil {
		return nil, err
	}
	if opts.OrderBy != "" {
		if _, ok := columns[opts.OrderBy]; !ok {
			return nil, fmt.Errorf("unknown order field: %s", opts.OrderBy)
		}
	}

	matched := make([]event.Row, 0, len(all))
	for _, row := range all {
		if opts.Where.Matches(row) {
			matched = append(matched, row)
		}
	}

	if opts.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].String(opts.OrderBy) < matched[j].String(opts.OrderBy)
		})
	}

	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	out := make([]event.Row, len(matched))
	for i, row := range matched {
		out[i] = copyRow(row)
	}
	return out, nil
}

func copyRow(row event.Row) event.Row {
	c := make(event.Row, len(row))
	for k, v := range row {
		c[k] = v
	}
	return c
}
