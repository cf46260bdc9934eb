// Package store provides the event table behind the retrieval and ingestion
// services.
//
// The Store interface has three operations: List with an equality/range
// predicate, an order field and a limit; DeleteMany with a predicate; and
// CreateMany for bulk inserts. Three backends implement it:
//   - Memory: in-process rows, for tests and throwaway runs
//   - File: a JSON array in a data directory (default ~/.local/share/ncr-events/)
//   - Postgres: an events table reached through a pgx connection pool
//
// Rows are returned raw (event.Row) and normalized by the caller.
package store
