package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

var stamp = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func sampleEvent() *event.Event {
	return &event.Event{
		ID:              "local_1_0",
		Title:           "Rapid Chess Battle",
		Description:     "Blitz rounds",
		Date:            "2026-03-12",
		Time:            "18:30",
		Venue:           "India Habitat Centre",
		Location:        "Lodhi Road, Delhi",
		City:            "Delhi",
		Price:           300,
		PriceType:       event.PricePaid,
		Category:        "Chess",
		Organizer:       "Delhi Chess Society",
		RegistrationURL: "https://forms.google.com/register",
	}
}

func TestGenerateICS(t *testing.T) {
	ics := GenerateICS(sampleEvent(), stamp)

	// Check required ICS fields
	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//NCR Events//ncr-events//EN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:local_1_0@ncr-events",
		"DTSTAMP:20260310T080000Z",
		"DTSTART:20260312T130000Z", // 18:30 IST
		"DTEND:20260312T150000Z",
		"SUMMARY:Rapid Chess Battle",
		"URL:https://forms.google.com/register",
		"CATEGORIES:Chess",
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	// Check that lines end with \r\n
	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
	if bare := strings.Count(ics, "\n") - strings.Count(ics, "\r\n"); bare != 0 {
		t.Errorf("ICS has %d bare \\n line endings", bare)
	}
}

func TestStartTime(t *testing.T) {
	tests := []struct {
		name string
		date string
		time string
		want time.Time
	}{
		{"date and time", "2026-03-12", "18:30", time.Date(2026, 3, 12, 13, 0, 0, 0, time.UTC)},
		{"missing time defaults to 9am", "2026-03-12", "", time.Date(2026, 3, 12, 3, 30, 0, 0, time.UTC)},
		{"bad time defaults to 9am", "2026-03-12", "evening", time.Date(2026, 3, 12, 3, 30, 0, 0, time.UTC)},
		{"unparseable date falls back a week", "soon", "10:00", time.Date(2026, 3, 17, 4, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := &event.Event{Date: tt.date, Time: tt.time}
			if got := StartTime(evt, stamp); !got.Equal(tt.want) {
				t.Errorf("StartTime() = %v, want %v", got.UTC(), tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	free := sampleEvent()
	free.PriceType = event.PriceFree
	free.Price = 0

	tests := []struct {
		name string
		evt  *event.Event
		want []string
	}{
		{"paid", sampleEvent(), []string{"Blitz rounds", "Price: ₹300", "Organizer: Delhi Chess Society", "Register at: https://forms.google.com/register"}},
		{"free", free, []string{"Price: Free"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := description(tt.evt)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("description() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name string
		evt  event.Event
		want string
	}{
		{"venue and location", event.Event{Venue: "DLF CyberHub", Location: "Cyber City, Gurgaon"}, "DLF CyberHub, Cyber City, Gurgaon"},
		{"venue only", event.Event{Venue: "Ambience Mall"}, "Ambience Mall"},
		{"city fallback", event.Event{City: "Delhi"}, "Delhi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := location(&tt.evt); got != tt.want {
				t.Errorf("location() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateBulkICS(t *testing.T) {
	events := make([]*event.Event, 3)
	for i := range events {
		events[i] = sampleEvent()
		events[i].ID = []string{"event1", "event2", "event3"}[i]
	}

	ics := GenerateBulkICS(events, "NCR Events", stamp)

	if !strings.Contains(ics, "X-WR-CALNAME:NCR Events") {
		t.Error("Missing calendar name")
	}

	// Count VEVENT entries (should be 3)
	if n := strings.Count(ics, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("Expected 3 BEGIN:VEVENT, got %d", n)
	}
	if n := strings.Count(ics, "END:VEVENT"); n != 3 {
		t.Errorf("Expected 3 END:VEVENT, got %d", n)
	}

	// Check that all event UIDs are present
	for _, evt := range events {
		uid := "UID:" + evt.ID + "@ncr-events"
		if !strings.Contains(ics, uid) {
			t.Errorf("Missing UID for event: %s", evt.ID)
		}
	}
}

func TestGenerateBulkICS_EmptyEvents(t *testing.T) {
	if ics := GenerateBulkICS([]*event.Event{}, "Test Calendar", stamp); ics != "" {
		t.Error("Empty events array should return empty string")
	}
}
