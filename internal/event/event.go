package event

import (
	"strings"
	"time"
)

// Known categories as stored in the event table
const (
	CategoryChess      = "Chess"
	CategoryBoardGames = "Board Games"
	CategoryBookClub   = "Book Club"
	CategoryDiscussion = "Discussion"
)

// Known cities as stored in the event table
const (
	CityDelhi   = "Delhi"
	CityGurgaon = "Gurgaon"
)

// AllValue is the sentinel meaning "no category/city restriction"
const AllValue = "All"

// Price type tokens emitted to clients
const (
	PriceFree = "free"
	PricePaid = "paid"
)

// TimestampLayout is the ISO layout used for scraped_at and created_at
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the ISO calendar date layout used for Record.Date
const DateLayout = "2006-01-02"

// Record is the canonical, store-side event record produced by gatherers
type Record struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Venue           string   `json:"venue"`
	Location        string   `json:"location"`
	City            string   `json:"city"`
	Price           int      `json:"price"`
	IsFree          bool     `json:"is_free"`
	Category        string   `json:"category"`
	Organizer       string   `json:"organizer"`
	RegistrationURL string   `json:"registration_url,omitempty"`
	Tags            []string `json:"tags"`
	SourcePlatform  string   `json:"source_platform"`
	ScrapedAt       string   `json:"scraped_at"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

// Row is a raw event row as read back from a store. Values keep whatever
// shape the backend holds: price may be a string, tags a comma-joined string,
// and legacy camelCase aliases may appear instead of snake_case keys.
type Row map[string]any

// Row converts the record into its store-side row shape
func (r *Record) Row() Row {
	tags := make([]any, len(r.Tags))
	for i, t := range r.Tags {
		tags[i] = t
	}
	row := Row{
		"id":               r.ID,
		"title":            r.Title,
		"description":      r.Description,
		"date":             r.Date,
		"time":             r.Time,
		"venue":            r.Venue,
		"location":         r.Location,
		"city":             r.City,
		"price":            r.Price,
		"is_free":          r.IsFree,
		"category":         r.Category,
		"organizer":        r.Organizer,
		"registration_url": r.RegistrationURL,
		"tags":             tags,
		"source_platform":  r.SourcePlatform,
		"scraped_at":       r.ScrapedAt,
	}
	if r.CreatedAt != "" {
		row["created_at"] = r.CreatedAt
	}
	return row
}

// Event is the normalized event returned by the retrieval endpoint
type Event struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	Venue           string   `json:"venue"`
	Location        string   `json:"location"`
	City            string   `json:"city"`
	Price           int      `json:"price"`
	PriceType       string   `json:"priceType"`
	Category        string   `json:"category"`
	Organizer       string   `json:"organizer"`
	RegistrationURL string   `json:"registrationUrl,omitempty"`
	Tags            []string `json:"tags"`
	SourcePlatform  string   `json:"sourcePlatform,omitempty"`
	ScrapedAt       string   `json:"scrapedAt,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
}

// IsFree reports whether the event was normalized as free
func (e *Event) IsFree() bool {
	return e.PriceType == PriceFree
}

// InferCategory maps a free-text title onto one of the known categories
// by keyword containment. Unmatched titles fall back to Discussion.
func InferCategory(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "chess"):
		return CategoryChess
	case strings.Contains(lower, "board"), strings.Contains(lower, "game"):
		return CategoryBoardGames
	case strings.Contains(lower, "book"), strings.Contains(lower, "read"):
		return CategoryBookClub
	default:
		return CategoryDiscussion
	}
}

// InferCity returns Gurgaon when the title mentions Gurgaon or Gurugram,
// Delhi otherwise
func InferCity(title string) string {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "gurgaon") || strings.Contains(lower, "gurugram") {
		return CityGurgaon
	}
	return CityDelhi
}

// FormatTimestamp formats t in the ISO layout used for scraped_at
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
