// Package service implements the two operations behind the HTTP surface:
// Retrieval lists stored events through a fixed filter pipeline, and
// Ingestion refreshes the store from the gatherers.
//
// Both return *Error on failure so callers can map the Kind to a status
// and report Message to clients.
package service
