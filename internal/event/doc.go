// Package event provides the event record types and the normalization rules
// shared by the retrieval and ingestion services.
//
// Three shapes are involved. Record is the canonical row gatherers produce
// and stores persist. Row is whatever a store hands back: a loosely typed map
// that may carry legacy camelCase aliases, string prices or comma-joined
// tags. Event is the normalized response item, built from a Row by Normalize
// through a single alias table.
package event
