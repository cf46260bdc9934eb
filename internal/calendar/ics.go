package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

const (
	productID = "-//NCR Events//ncr-events//EN"
	uidDomain = "ncr-events"

	// Duration is the assumed length of an event; listings carry no end time
	Duration = 2 * time.Hour
)

// IST is India Standard Time. It has no daylight saving, so a fixed zone
// avoids depending on the host's tz database.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// GenerateICS generates an iCalendar (.ics) document for one event.
// stamp is written as DTSTAMP.
func GenerateICS(evt *event.Event, stamp time.Time) string {
	cal := newCalendar()
	addEvent(cal, evt, stamp)
	return cal.Serialize(ics.WithNewLineWindows)
}

// GenerateBulkICS generates one calendar holding every event.
// Returns "" when events is empty.
func GenerateBulkICS(events []*event.Event, name string, stamp time.Time) string {
	if len(events) == 0 {
		return ""
	}

	cal := newCalendar()
	if name != "" {
		cal.SetXWRCalName(name)
	}
	for _, evt := range events {
		addEvent(cal, evt, stamp)
	}
	return cal.Serialize(ics.WithNewLineWindows)
}

func newCalendar() *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	return cal
}

func addEvent(cal *ics.Calendar, evt *event.Event, stamp time.Time) {
	start := StartTime(evt, stamp)

	ve := cal.AddEvent(fmt.Sprintf("%s@%s", evt.ID, uidDomain))
	ve.SetDtStampTime(stamp)
	ve.SetStartAt(start)
	ve.SetEndAt(start.Add(Duration))
	ve.SetSummary(evt.Title)
	ve.SetLocation(location(evt))
	ve.SetDescription(description(evt))
	if evt.RegistrationURL != "" {
		ve.SetURL(evt.RegistrationURL)
	}
	if evt.Category != "" {
		ve.AddProperty(ics.ComponentPropertyCategories, evt.Category)
	}
	ve.SetStatus(ics.ObjectStatusConfirmed)
}

// StartTime combines the event's date and HH:MM time in IST. An unparseable
// date falls back to one week after stamp; an unparseable time to 09:00.
func StartTime(evt *event.Event, stamp time.Time) time.Time {
	day := event.ParseDate(evt.Date)
	if day.IsZero() {
		day = stamp.In(IST).AddDate(0, 0, 7)
	}

	hour, minute := 9, 0
	if clock, err := time.Parse("15:04", strings.TrimSpace(evt.Time)); err == nil {
		hour, minute = clock.Hour(), clock.Minute()
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, IST)
}

func location(evt *event.Event) string {
	parts := make([]string, 0, 2)
	if evt.Venue != "" {
		parts = append(parts, evt.Venue)
	}
	if evt.Location != "" && evt.Location != evt.Venue {
		parts = append(parts, evt.Location)
	}
	if len(parts) == 0 {
		return evt.City
	}
	return strings.Join(parts, ", ")
}

func description(evt *event.Event) string {
	var b strings.Builder
	b.WriteString(evt.Description)

	price := "Free"
	if !evt.IsFree() {
		price = fmt.Sprintf("₹%d", evt.Price)
	}
	fmt.Fprintf(&b, "\n\nPrice: %s", price)
	if evt.Organizer != "" {
		fmt.Fprintf(&b, "\nOrganizer: %s", evt.Organizer)
	}
	if evt.RegistrationURL != "" {
		fmt.Fprintf(&b, "\nRegister at: %s", evt.RegistrationURL)
	}
	return strings.TrimSpace(b.String())
}
