package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
)

// column describes how an event field is stored in PostgreSQL
type column struct {
	name    string
	sqlType string
}

// columns is the closed set of fields predicates and ordering may reference
var columns = map[string]column{
	"id":               {"id", "text"},
	"title":            {"title", "text"},
	"description":      {"description", "text"},
	"date":             {"date", "text"},
	"time":             {"time", "text"},
	"venue":            {"venue", "text"},
	"location":         {"location", "text"},
	"city":             {"city", "text"},
	"price":            {"price", "integer"},
	"is_free":          {"is_free", "boolean"},
	"category":         {"category", "text"},
	"organizer":        {"organizer", "text"},
	"registration_url": {"registration_url", "text"},
	"tags":             {"tags", "text"},
	"source_platform":  {"source_platform", "text"},
	"scraped_at":       {"scraped_at", "timestamptz"},
	"created_at":       {"created_at", "timestamptz"},
}

const selectColumns = `id, title, description, date, time, venue, location, city, price, is_free,
	category, organizer, registration_url, tags, source_platform, scraped_at, created_at`

var insertColumns = []string{
	"id", "title", "description", "date", "time", "venue", "location", "city", "price", "is_free",
	"category", "organizer", "registration_url", "tags", "source_platform", "scraped_at",
}

// Schema creates the events table. Tags are stored comma-joined.
const Schema = `CREATE TABLE IF NOT EXISTS events (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	date             TEXT NOT NULL,
	time             TEXT NOT NULL DEFAULT '',
	venue            TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	city             TEXT NOT NULL DEFAULT '',
	price            INTEGER NOT NULL DEFAULT 0,
	is_free          BOOLEAN NOT NULL DEFAULT FALSE,
	category         TEXT NOT NULL DEFAULT '',
	organizer        TEXT NOT NULL DEFAULT '',
	registration_url TEXT NOT NULL DEFAULT '',
	tags             TEXT NOT NULL DEFAULT '',
	source_platform  TEXT NOT NULL DEFAULT '',
	scraped_at       TIMESTAMPTZ NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_date_idx ON events (date);
CREATE INDEX IF NOT EXISTS events_scraped_at_idx ON events (scraped_at);`

// PostgresConfig holds pool settings
type PostgresConfig struct {
	DSN      string
	MaxConns int32
	Attempts int
}

// Postgres is a Store backed by a pgx connection pool
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates and validates a pgxpool connection pool and ensures
// the events table exists. It retries to accommodate containers starting up.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 5
	}

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn("db connect attempt failed", logger.Fields{
			"attempt": attempt,
			"of":      attempts,
			"error":   err.Error(),
		})
		if attempt < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Postgres{db: pool}, nil
}

// List runs a SELECT built from opts
func (p *Postgres) List(ctx context.Context, opts ListOptions) ([]event.Row, error) {
	query, args, err := buildListQuery(opts)
	if err != nil {
		return nil, err
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []event.Row
	for rows.Next() {
		var (
			rec                  event.Record
			price                int32
			tags                 string
			scrapedAt, createdAt time.Time
		)
		if err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Description, &rec.Date, &rec.Time, &rec.Venue, &rec.Location,
			&rec.City, &price, &rec.IsFree, &rec.Category, &rec.Organizer, &rec.RegistrationURL,
			&tags, &rec.SourcePlatform, &scrapedAt, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Price = int(price)
		rec.ScrapedAt = event.FormatTimestamp(scrapedAt)
		rec.CreatedAt = event.FormatTimestamp(createdAt)

		row := rec.Row()
		row["tags"] = tags
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteMany runs a DELETE built from where
func (p *Postgres) DeleteMany(ctx context.Context, where Predicate) (int64, error) {
	query, args, err := buildDeleteQuery(where)
	if err != nil {
		return 0, err
	}

	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateMany bulk-inserts records with COPY; created_at takes the column default
func (p *Postgres) CreateMany(ctx context.Context, records []*event.Record) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		scrapedAt, err := time.Parse(time.RFC3339Nano, rec.ScrapedAt)
		if err != nil {
			return fmt.Errorf("parse scraped_at for %s: %w", rec.ID, err)
		}
		rows = append(rows, []any{
			rec.ID, rec.Title, rec.Description, rec.Date, rec.Time, rec.Venue, rec.Location,
			rec.City, int32(rec.Price), rec.IsFree, rec.Category, rec.Organizer, rec.RegistrationURL,
			strings.Join(rec.Tags, ","), rec.SourcePlatform, scrapedAt,
		})
	}

	if _, err := p.db.CopyFrom(ctx, pgx.Identifier{"events"}, insertColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

// Close closes the pool
func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}

// buildWhere renders a predicate as a SQL WHERE clause. Values are always
// bound as text and cast to the column type.
func buildWhere(where Predicate, args []any) (string, []any, error) {
	if len(where) == 0 {
		return "", args, nil
	}
	if err := where.Validate(); err != nil {
		return "", nil, err
	}

	parts := make([]string, 0, len(where))
	for _, c := range where {
		col := columns[c.Field]
		args = append(args, c.Value)
		placeholder := fmt.Sprintf("$%d::text", len(args))
		if col.sqlType != "text" {
			placeholder += "::" + col.sqlType
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", col.name, c.Op, placeholder))
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func buildListQuery(opts ListOptions) (string, []any, error) {
	where, args, err := buildWhere(opts.Where, nil)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectColumns)
	b.WriteString(" FROM events")
	b.WriteString(where)

	if opts.OrderBy != "" {
		col, ok := columns[opts.OrderBy]
		if !ok {
			return "", nil, fmt.Errorf("unknown order field: %s", opts.OrderBy)
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(col.name)
		b.WriteString(" ASC")
	}

	if opts.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", opts.Limit)
	}
	return b.String(), args, nil
}

func buildDeleteQuery(where Predicate) (string, []any, error) {
	if len(where) == 0 {
		return "", nil, ErrUnboundedDelete
	}
	clause, args, err := buildWhere(where, nil)
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM events" + clause, args, nil
}
