package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/filter"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByTitle SortOrder = "title"
	SortByPrice SortOrder = "price"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByDate, SortByTitle, SortByPrice:
		return order, nil
	case "":
		return SortByDate, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'date', 'title' or 'price')", s)
	}
}

// sortViews sorts views in place. Ties keep their incoming order.
func sortViews(views []*filter.View, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(views, func(i, j int) bool {
			return compareByDate(views[i], views[j])
		})
	case SortByTitle:
		sort.SliceStable(views, func(i, j int) bool {
			ti, tj := strings.ToLower(views[i].Title), strings.ToLower(views[j].Title)
			if ti != tj {
				return ti < tj
			}
			return compareByDate(views[i], views[j])
		})
	case SortByPrice:
		sort.SliceStable(views, func(i, j int) bool {
			pi, pj := views[i].PriceValue(), views[j].PriceValue()
			if pi != pj {
				return pi < pj
			}
			return compareByDate(views[i], views[j])
		})
	}
}

// compareByDate orders by date then time slot. Views with an unparseable
// date sort last.
func compareByDate(i, j *filter.View) bool {
	validI, validJ := event.IsValidDate(i.Date), event.IsValidDate(j.Date)

	switch {
	case validI && validJ:
		if i.Date != j.Date {
			return i.Date < j.Date
		}
		return i.Time < j.Time
	case validI:
		return true
	case validJ:
		return false
	}

	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
