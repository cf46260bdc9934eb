package ingest

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/scraper"
)

const (
	meetupSearchURL = "https://www.meetup.com/find/?keywords=%s&location=Delhi%%2C%%20India"
	meetupBaseURL   = "https://meetup.com"
	meetupPerQuery  = 5
)

// MeetupQueries are the search phrases sent to Meetup
var MeetupQueries = []string{
	"chess delhi",
	"board games gurgaon",
	"book club delhi",
	"intellectual discussion gurgaon",
	"philosophy delhi",
	"debate club gurgaon",
}

var (
	meetupTimes = []string{"10:00", "14:00", "18:00", "19:00"}

	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Meetup extracts events from the links on Meetup search result pages
type Meetup struct {
	renderer scraper.Renderer
	gen      *Generator
	queries  []string
	url      string // search URL template, overridable in tests
}

// NewMeetup creates a Meetup gatherer over the default queries
func NewMeetup(r scraper.Renderer, gen *Generator) *Meetup {
	return &Meetup{
		renderer: r,
		gen:      gen,
		queries:  MeetupQueries,
		url:      meetupSearchURL,
	}
}

// Name implements Gatherer
func (m *Meetup) Name() string { return SourceMeetup }

// Gather renders each query page in turn and keeps the first few links of each.
// A render failure ends the run.
func (m *Meetup) Gather(ctx context.Context) ([]*event.Record, error) {
	records := make([]*event.Record, 0)

	for _, q := range m.queries {
		page, err := m.renderer.Render(ctx, m.searchURL(q))
		if err != nil {
			return nil, fmt.Errorf("rendering query %q: %w", q, err)
		}

		matches := markdownLink.FindAllStringSubmatch(page.Text, -1)
		if len(matches) > meetupPerQuery {
			matches = matches[:meetupPerQuery]
		}
		for _, match := range matches {
			records = append(records, m.record(match[1], match[2]))
		}
	}

	return records, nil
}

// searchURL percent-escapes the phrase with spaces as %20
func (m *Meetup) searchURL(query string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return fmt.Sprintf(m.url, escaped)
}

func (m *Meetup) record(title, link string) *event.Record {
	category := event.InferCategory(title)
	city := event.InferCity(title)

	location := "Connaught Place, Delhi"
	if city == event.CityGurgaon {
		location = "Cyber City, Gurgaon"
	}

	if !strings.HasPrefix(link, "http") {
		link = meetupBaseURL + link
	}

	price, free := m.gen.Price(0.4, 100, 599)

	return &event.Record{
		ID:              m.gen.ID(SourceMeetup),
		Title:           title,
		Description:     fmt.Sprintf("Join us for an engaging %s session in %s.", strings.ToLower(category), city),
		Date:            m.gen.DateWithin(7),
		Time:            m.gen.Pick(meetupTimes),
		Venue:           fmt.Sprintf("%s Hub %s", category, city),
		Location:        location,
		City:            city,
		Price:           price,
		IsFree:          free,
		Category:        category,
		Organizer:       fmt.Sprintf("%s %s Community", city, category),
		RegistrationURL: link,
		Tags:            []string{strings.ToLower(category), strings.ToLower(city), "community"},
		SourcePlatform:  "Meetup",
		ScrapedAt:       m.gen.Timestamp(),
	}
}
