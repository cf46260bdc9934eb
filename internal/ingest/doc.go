// Package ingest gathers candidate event records for the ingestion service.
//
// Each source is a Gatherer:
//   - Meetup renders six search pages and keeps up to five links per page
//   - Eventbrite renders one listing and pairs title lines with price lines
//   - Local synthesizes twelve events at known community venues
//
// Listing pages expose titles and links but not dates, times or prices, so
// those fields are drawn from a Generator. Seeding the Generator makes a
// run reproducible.
//
// Collect runs gatherers concurrently and waits for all of them; one failing
// source never removes the others' records.
package ingest
