// Package filter holds the presentation-side filter state for browsing events.
//
// A Filter drives two things. OutboundQuery builds the query string sent to
// the retrieval endpoint, which only understands one category and one city.
// Apply then re-filters the returned events locally against the full state:
//   - Date range (inclusive on both ends, defaults to the current Monday-Sunday week)
//   - Categories (set of tokens such as "chess" or "bookclub")
//   - Cities (set of tokens, "delhi" or "gurgaon")
//   - Price range (inclusive, free events count as 0)
//   - Search text over title, description, venue, organizer and tags
//
// Example usage:
//
//	f := filter.NewFilter(time.Now())
//	f.Categories = []string{filter.TokenChess}
//	f.PriceRange = [2]int{0, 500}
//
//	params := f.OutboundQuery()
//	shown := f.Apply(filter.Views(events))
package filter

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

// Category and city tokens used by the presentation layer
const (
	TokenChess      = "chess"
	TokenBoardGames = "boardgames"
	TokenBookClub   = "bookclub"
	TokenDiscussion = "discussion"

	TokenDelhi   = "delhi"
	TokenGurgaon = "gurgaon"
)

// PriceCeiling is the default upper price bound. A range whose upper bound
// is at the ceiling sends no maxPrice upstream.
const PriceCeiling = 5000

var categoryTokens = map[string]string{
	event.CategoryChess:      TokenChess,
	event.CategoryBoardGames: TokenBoardGames,
	event.CategoryBookClub:   TokenBookClub,
	event.CategoryDiscussion: TokenDiscussion,
}

// CategoryToken maps a stored category label to its token. Unknown labels
// are lowercased.
func CategoryToken(label string) string {
	if token, ok := categoryTokens[label]; ok {
		return token
	}
	return strings.ToLower(label)
}

// CategoryLabel maps a token back to the stored label. Unknown tokens are
// returned unchanged.
func CategoryLabel(token string) string {
	for label, t := range categoryTokens {
		if t == token {
			return label
		}
	}
	return token
}

// CityToken lowercases a stored city label
func CityToken(label string) string {
	return strings.ToLower(label)
}

// CityLabel maps a city token back to the stored label
func CityLabel(token string) string {
	switch token {
	case TokenDelhi:
		return event.CityDelhi
	case TokenGurgaon:
		return event.CityGurgaon
	}
	return token
}

// View is an event as the presentation layer sees it
type View struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Location        string   `json:"location"`
	Venue           string   `json:"venue"`
	City            string   `json:"city"`
	Price           *int     `json:"price"`
	PriceType       string   `json:"priceType"`
	Organizer       string   `json:"organizer"`
	RegistrationURL string   `json:"registrationUrl,omitempty"`
	Tags            []string `json:"tags"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// NewView projects a retrieval event into a View. Price is nil for free events.
func NewView(e *event.Event) *View {
	v := &View{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        CategoryToken(e.Category),
		Date:            e.Date,
		Time:            e.Time,
		Location:        e.Location,
		Venue:           e.Venue,
		City:            CityToken(e.City),
		PriceType:       e.PriceType,
		Organizer:       e.Organizer,
		RegistrationURL: e.RegistrationURL,
		Tags:            e.Tags,
		CreatedAt:       e.ScrapedAt,
		UpdatedAt:       e.ScrapedAt,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if !e.IsFree() {
		price := e.Price
		v.Price = &price
	}
	return v
}

// Views projects every event
func Views(events []*event.Event) []*View {
	views := make([]*View, len(events))
	for i, e := range events {
		views[i] = NewView(e)
	}
	return views
}

// IsFree reports whether the view is a free event
func (v *View) IsFree() bool {
	return v.PriceType == event.PriceFree
}

// PriceValue returns the price, treating nil as 0
func (v *View) PriceValue() int {
	if v.Price == nil {
		return 0
	}
	return *v.Price
}

// Filter is the presentation filter state
type Filter struct {
	Categories  []string  `json:"categories"`
	Cities      []string  `json:"cities"`
	PriceRange  [2]int    `json:"price_range"`
	DateFrom    time.Time `json:"date_from"`
	DateTo      time.Time `json:"date_to"`
	SearchQuery string    `json:"search_query,omitempty"`
}

// NewFilter creates the default state: the week containing now, the full
// price range and no category, city or search restriction.
func NewFilter(now time.Time) *Filter {
	from, to := event.WeekRange(now)
	return &Filter{
		Categories: []string{},
		Cities:     []string{},
		PriceRange: [2]int{0, PriceCeiling},
		DateFrom:   from,
		DateTo:     to,
	}
}

// IsEmpty reports whether nothing beyond the date range is restricted
func (f *Filter) IsEmpty() bool {
	return len(f.Categories) == 0 &&
		len(f.Cities) == 0 &&
		f.PriceRange == [2]int{0, PriceCeiling} &&
		f.SearchQuery == ""
}

// StartDate is the inclusive lower date bound as an ISO date
func (f *Filter) StartDate() string {
	return f.DateFrom.Format(event.DateLayout)
}

// EndDate is the inclusive upper date bound as an ISO date
func (f *Filter) EndDate() string {
	return f.DateTo.Format(event.DateLayout)
}

// Matches checks a view against every criterion.
//
// Matching logic:
//   - Date: must parse and fall within StartDate..EndDate
//   - Categories/Cities: token must be in the set when the set is non-empty
//   - Price: PriceValue must lie within PriceRange
//   - SearchQuery: case-insensitive substring of the joined searchable text
func (f *Filter) Matches(v *View) bool {
	if !event.IsValidDate(v.Date) {
		return false
	}
	if !event.InDateRange(v.Date, f.StartDate(), f.EndDate()) {
		return false
	}

	if len(f.Categories) > 0 && !slices.Contains(f.Categories, v.Category) {
		return false
	}

	if len(f.Cities) > 0 && !slices.Contains(f.Cities, v.City) {
		return false
	}

	price := v.PriceValue()
	if price < f.PriceRange[0] || price > f.PriceRange[1] {
		return false
	}

	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		if !strings.Contains(searchText(v), query) {
			return false
		}
	}

	return true
}

func searchText(v *View) string {
	parts := append([]string{v.Title, v.Description, v.Venue, v.Organizer}, v.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Apply returns the views that match, in their original order
func (f *Filter) Apply(views []*View) []*View {
	filtered := make([]*View, 0, len(views))
	for _, v := range views {
		if f.Matches(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// OutboundQuery builds the retrieval query parameters. Only the first
// selected category and city are sent, as stored labels; the remainder is
// enforced by Apply.
func (f *Filter) OutboundQuery() url.Values {
	params := url.Values{}
	params.Set("startDate", f.StartDate())
	params.Set("endDate", f.EndDate())

	if len(f.Categories) > 0 {
		params.Set("category", CategoryLabel(f.Categories[0]))
	}
	if len(f.Cities) > 0 {
		params.Set("city", CityLabel(f.Cities[0]))
	}
	if f.PriceRange[1] < PriceCeiling {
		params.Set("maxPrice", strconv.Itoa(f.PriceRange[1]))
	}
	if f.SearchQuery != "" {
		params.Set("search", f.SearchQuery)
	}

	return params
}

// String returns a human-readable summary of the state.
// Format: "Mar 9 - Mar 15, 2026 | Categories: chess | Max price: ₹500"
func (f *Filter) String() string {
	parts := []string{
		fmt.Sprintf("%s - %s", f.DateFrom.Format("Jan 2"), f.DateTo.Format("Jan 2, 2006")),
	}

	if len(f.Categories) > 0 {
		parts = append(parts, fmt.Sprintf("Categories: %s", strings.Join(f.Categories, ", ")))
	}

	if len(f.Cities) > 0 {
		parts = append(parts, fmt.Sprintf("Cities: %s", strings.Join(f.Cities, ", ")))
	}

	if f.PriceRange[0] > 0 {
		parts = append(parts, fmt.Sprintf("Min price: ₹%d", f.PriceRange[0]))
	}

	if f.PriceRange[1] < PriceCeiling {
		parts = append(parts, fmt.Sprintf("Max price: ₹%d", f.PriceRange[1]))
	}

	if f.SearchQuery != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", f.SearchQuery))
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter
func (f *Filter) Clone() *Filter {
	clone := *f
	clone.Categories = append([]string{}, f.Categories...)
	clone.Cities = append([]string{}, f.Cities...)
	return &clone
}
