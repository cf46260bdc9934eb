package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
)

// LocalCount is how many events one Local run produces
const LocalCount = 12

const localRegisterURL = "https://forms.google.com/register"

// Venue is a known community venue
type Venue struct {
	Name     string
	Location string
	City     string
}

// EventType is a category with the titles it is offered under
type EventType struct {
	Category string
	Titles   []string
}

// LocalVenues are the venues Local events are placed at
var LocalVenues = []Venue{
	{"India Habitat Centre", "Lodhi Road, Delhi", event.CityDelhi},
	{"DLF CyberHub", "Cyber City, Gurgaon", event.CityGurgaon},
	{"Khan Market Community Center", "Khan Market, Delhi", event.CityDelhi},
	{"Ambience Mall", "Ambience Island, Gurgaon", event.CityGurgaon},
	{"Connaught Place Chess Club", "CP, Delhi", event.CityDelhi},
}

// LocalEventTypes are the categories and titles Local events draw from
var LocalEventTypes = []EventType{
	{event.CategoryChess, []string{"Delhi Chess Championship", "Weekend Chess Tournament", "Rapid Chess Battle"}},
	{event.CategoryBoardGames, []string{"Board Game Cafe Meetup", "Strategy Games Night", "Tabletop Gaming Session"}},
	{event.CategoryBookClub, []string{"Philosophy Book Discussion", "Contemporary Literature Club", "Non-Fiction Reading Circle"}},
	{event.CategoryDiscussion, []string{"Tech Talk: AI & Society", "Startup Founders Meetup", "Philosophy Cafe Discussion"}},
}

var localTimes = []string{"10:00", "14:00", "16:00", "18:00", "19:30"}

// Local synthesizes community events at known venues. It needs no network.
type Local struct {
	gen *Generator
}

// NewLocal creates a Local gatherer
func NewLocal(gen *Generator) *Local {
	return &Local{gen: gen}
}

// Name implements Gatherer
func (l *Local) Name() string { return SourceLocal }

// Gather returns exactly LocalCount records
func (l *Local) Gather(ctx context.Context) ([]*event.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms := l.gen.Now().UnixMilli()
	records := make([]*event.Record, 0, LocalCount)

	for i := 0; i < LocalCount; i++ {
		venue := LocalVenues[l.gen.Intn(len(LocalVenues))]
		kind := LocalEventTypes[l.gen.Intn(len(LocalEventTypes))]
		title := l.gen.Pick(kind.Titles)
		price, free := l.gen.Price(0.6, 200, 999)
		category := strings.ToLower(kind.Category)

		records = append(records, &event.Record{
			ID:    fmt.Sprintf("%s_%d_%d", SourceLocal, ms, i),
			Title: title,
			Description: fmt.Sprintf("Join us for an engaging %s session at %s. Perfect for enthusiasts and beginners alike.",
				category, venue.Name),
			Date:            l.gen.DateWithin(21),
			Time:            l.gen.Pick(localTimes),
			Venue:           venue.Name,
			Location:        venue.Location,
			City:            venue.City,
			Price:           price,
			IsFree:          free,
			Category:        kind.Category,
			Organizer:       fmt.Sprintf("%s %s Society", venue.City, kind.Category),
			RegistrationURL: localRegisterURL,
			Tags:            []string{category, strings.ToLower(venue.City), "community", "intellectual"},
			SourcePlatform:  "Local Community",
			ScrapedAt:       l.gen.Timestamp(),
		})
	}

	return records, nil
}
