package event

import "time"

// ParseDate parses an ISO calendar date ("2026-03-15").
// Returns time.Time{} (zero value) if parsing fails.
func ParseDate(date string) time.Time {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsValidDate reports whether date is a well-formed ISO calendar date
func IsValidDate(date string) bool {
	return !ParseDate(date).IsZero()
}

// FormatDate formats t as an ISO calendar date in UTC
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// InDateRange reports whether date falls in [start, end], both inclusive.
// Zero-padded ISO dates order lexically, so plain string comparison is used.
func InDateRange(date, start, end string) bool {
	return date >= start && date <= end
}

// WeekRange returns the Monday-to-Sunday week containing t, as dates
// at midnight in t's location
func WeekRange(t time.Time) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// Monday = 0 ... Sunday = 6
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// IsUpcoming checks if an event's date is today or later.
// Returns true if the date cannot be parsed (safer default).
func (e *Event) IsUpcoming(now time.Time) bool {
	parsed := ParseDate(e.Date)
	if parsed.IsZero() {
		return true // Can't determine, include it
	}
	return !parsed.Before(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}
