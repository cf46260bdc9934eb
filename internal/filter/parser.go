package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

const monthPattern = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	sameMonthRange  = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2})$`)
	wholeMonth      = regexp.MustCompile(`(?i)^` + monthPattern + `$`)
	isoRange        = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*\.\.\s*(\d{4}-\d{2}-\d{2})$`)
)

// ParseDateRange parses a date range relative to now.
//
// Supported formats:
//   - "2026-03-01..2026-03-15" - ISO dates
//   - "week" or "this week" - Monday to Sunday containing now
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//
// Month names take the year of now, or the next year when the month has
// already passed. For cross-month ranges an end month before the start
// month rolls into the following year.
//
// Returned dates are midnight in now's location.
func ParseDateRange(input string, now time.Time) (time.Time, time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("date range cannot be empty")
	}

	loc := now.Location()

	if matches := isoRange.FindStringSubmatch(input); matches != nil {
		from, err := time.ParseInLocation(event.DateLayout, matches[1], loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date: %s", matches[1])
		}
		to, err := time.ParseInLocation(event.DateLayout, matches[2], loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date: %s", matches[2])
		}
		return ordered(from, to)
	}

	switch strings.ToLower(input) {
	case "week", "this week", "this-week":
		from, to := event.WeekRange(now)
		return from, to, nil
	}

	if matches := sameMonthRange.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		day1, err := parseDay(matches[2])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		day2, err := parseDay(matches[3])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		year := yearForMonth(month, now)
		return ordered(
			time.Date(year, month, day1, 0, 0, 0, 0, loc),
			time.Date(year, month, day2, 0, 0, 0, 0, loc),
		)
	}

	if matches := crossMonthRange.FindStringSubmatch(input); matches != nil {
		month1 := parseMonth(matches[1])
		day1, err := parseDay(matches[2])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		month2 := parseMonth(matches[3])
		day2, err := parseDay(matches[4])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		year1 := yearForMonth(month1, now)
		year2 := year1
		if month2 < month1 {
			year2++
		}

		return ordered(
			time.Date(year1, month1, day1, 0, 0, 0, 0, loc),
			time.Date(year2, month2, day2, 0, 0, 0, 0, loc),
		)
	}

	if matches := wholeMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		year := yearForMonth(month, now)
		from := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		// Day 0 of the next month is the last day of this one
		to := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
		return from, to, nil
	}

	return time.Time{}, time.Time{}, fmt.Errorf("invalid date range format. Use '2026-03-01..2026-03-15', 'week', 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func ordered(from, to time.Time) (time.Time, time.Time, error) {
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date must be before end date")
	}
	return from, to, nil
}

func parseDay(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return day, nil
}

// parseMonth converts a month name to time.Month. It returns 0 when the
// name is unknown.
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0
	}
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] || (m == time.September && name == "sept") {
			return m
		}
	}
	return 0
}

// yearForMonth returns now's year, or the next one if month has passed
func yearForMonth(month time.Month, now time.Time) int {
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return year
}
