package client

import "github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"

const (
	placeholderRegister = "https://example.com/register"
	placeholderStamp    = "2025-01-24T10:00:00.000Z"
)

// Placeholder returns a fresh copy of the bundled sample events shown when
// the API is unavailable
func Placeholder() []*event.Event {
	events := []*event.Event{
		{
			ID:          "1",
			Title:       "Delhi Chess Championship - Weekly Tournament",
			Description: "Join us for an exciting weekly chess tournament featuring players of all skill levels. Prizes for top 3 winners and rating points for all participants.",
			Category:    event.CategoryChess,
			Date:        "2025-01-27",
			Time:        "6:00 PM - 10:00 PM",
			Location:    "Connaught Place",
			Venue:       "Chess Academy Delhi, CP Metro Station",
			City:        event.CityDelhi,
			Price:       200,
			PriceType:   event.PricePaid,
			Organizer:   "Delhi Chess Club",
			Tags:        []string{"tournament", "rated", "prizes"},
		},
		{
			ID:          "2",
			Title:       "Board Game Cafe Meetup - Strategy Night",
			Description: "Explore modern board games in a cozy cafe setting. We have Catan, Ticket to Ride, Azul, and many more. Perfect for beginners and experienced players.",
			Category:    event.CategoryBoardGames,
			Date:        "2025-01-25",
			Time:        "7:00 PM - 11:00 PM",
			Location:    "Cyber Hub",
			Venue:       "Game Theory Cafe, Cyber Hub",
			City:        event.CityGurgaon,
			PriceType:   event.PriceFree,
			Organizer:   "Gurgaon Board Game Society",
			Tags:        []string{"strategy", "social", "beginners-welcome"},
		},
		{
			ID:          "3",
			Title:       `Philosophy Book Club - "Sapiens" Discussion`,
			Description: `Monthly discussion on Yuval Noah Harari's "Sapiens". We'll explore chapters 10-15 focusing on the Agricultural Revolution and its impact on human society.`,
			Category:    event.CategoryBookClub,
			Date:        "2025-01-26",
			Time:        "4:00 PM - 6:00 PM",
			Location:    "Khan Market",
			Venue:       "Cafe Turtle, Khan Market",
			City:        event.CityDelhi,
			Price:       150,
			PriceType:   event.PricePaid,
			Organizer:   "Delhi Philosophy Circle",
			Tags:        []string{"philosophy", "history", "discussion"},
		},
		{
			ID:          "4",
			Title:       "AI & Future of Work - Open Discussion",
			Description: "Join tech professionals and enthusiasts for an engaging discussion about artificial intelligence and its impact on the future of work. Share insights and network.",
			Category:    event.CategoryDiscussion,
			Date:        "2025-01-28",
			Time:        "7:30 PM - 9:30 PM",
			Location:    "Sector 29",
			Venue:       "WeWork Galaxy, Sector 29",
			City:        event.CityGurgaon,
			PriceType:   event.PriceFree,
			Organizer:   "Tech Talks Gurgaon",
			Tags:        []string{"technology", "AI", "networking", "career"},
		},
		{
			ID:          "5",
			Title:       "Speed Chess Tournament - Blitz Format",
			Description: "Fast-paced chess tournament with 5+3 time control. Open to all ratings. Entry includes refreshments and analysis session with a master.",
			Category:    event.CategoryChess,
			Date:        "2025-01-29",
			Time:        "2:00 PM - 6:00 PM",
			Location:    "Lajpat Nagar",
			Venue:       "Chess Point Academy",
			City:        event.CityDelhi,
			Price:       300,
			PriceType:   event.PricePaid,
			Organizer:   "Speed Chess Delhi",
			Tags:        []string{"blitz", "tournament", "all-levels"},
		},
		{
			ID:          "6",
			Title:       "Dungeons & Dragons Beginner Session",
			Description: "New to D&D? Join our beginner-friendly session with pre-made characters and an experienced DM. All materials provided. Adventure awaits!",
			Category:    event.CategoryBoardGames,
			Date:        "2025-01-30",
			Time:        "6:00 PM - 10:00 PM",
			Location:    "Golf Course Road",
			Venue:       "The Boardroom Cafe",
			City:        event.CityGurgaon,
			Price:       400,
			PriceType:   event.PricePaid,
			Organizer:   "Gurgaon RPG Guild",
			Tags:        []string{"RPG", "beginners", "storytelling"},
		},
	}

	for _, e := range events {
		e.RegistrationURL = placeholderRegister
		e.ScrapedAt = placeholderStamp
		e.CreatedAt = placeholderStamp
	}
	return events
}
