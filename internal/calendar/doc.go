// Package calendar exports events as iCalendar documents. Events are placed
// in India Standard Time and assumed to last two hours.
package calendar
