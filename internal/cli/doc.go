// Package cli implements the command-line interface for ncr-events.
//
// The cli package provides the Cobra-based commands: serve runs the events
// API with the cron-driven ingestion, ingest runs one pass in-process or
// against the API, events browses with client-side filters (text/JSON
// output, sorting, stats) and ics exports iCalendar files. Configuration
// comes from the YAML file and environment, with flags taking precedence.
package cli
