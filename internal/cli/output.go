package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/filter"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/service"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// OutputResult contains the events listing to be written
type OutputResult struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Filter      string         `json:"filter"`
	Placeholder bool           `json:"placeholder,omitempty"`
	Events      []*filter.View `json:"events"`
	Count       int            `json:"count"`
	Stats       *filter.Stats  `json:"stats,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs any value as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Placeholder {
		fmt.Fprintln(w, "API unavailable, showing sample events.")
	}
	fmt.Fprintf(w, "Filters: %s\n\n", result.Filter)

	if result.Count == 0 {
		fmt.Fprintln(w, "No events found.")
	}

	for _, v := range result.Events {
		fmt.Fprintf(w, "%-10s %-5s  %-10s  %-7s  %-6s  %s\n",
			v.Date, v.Time, v.Category, v.City, priceLabel(v), v.Title)
		if verbose {
			fmt.Fprintf(w, "           Venue: %s (%s)\n", v.Venue, v.Location)
			fmt.Fprintf(w, "           Organizer: %s\n", v.Organizer)
			if v.RegistrationURL != "" {
				fmt.Fprintf(w, "           Register: %s\n", v.RegistrationURL)
			}
			if len(v.Tags) > 0 {
				fmt.Fprintf(w, "           Tags: %s\n", strings.Join(v.Tags, ", "))
			}
			fmt.Fprintf(w, "           ID: %s\n", v.ID)
		}
	}

	if result.Count > 0 {
		fmt.Fprintf(w, "\nTotal: %d events\n", result.Count)
	}
	if result.Stats != nil {
		fmt.Fprintf(w, "Free: %d | Organizers: %d | Venues: %d\n",
			result.Stats.Free, result.Stats.Organizers, result.Stats.Venues)
	}

	return nil
}

func priceLabel(v *filter.View) string {
	if v.IsFree() {
		return "Free"
	}
	return fmt.Sprintf("₹%d", v.PriceValue())
}

// writeSummary outputs an ingestion summary
func writeSummary(w io.Writer, summary *service.Summary, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, summary)
	}

	fmt.Fprintln(w, summary.Message)
	fmt.Fprintf(w, "  meetup:     %d\n", summary.Sources.Meetup)
	fmt.Fprintf(w, "  eventbrite: %d\n", summary.Sources.Eventbrite)
	fmt.Fprintf(w, "  local:      %d\n", summary.Sources.Local)
	return nil
}
