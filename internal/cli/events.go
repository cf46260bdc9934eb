package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/client"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/filter"
)

// filterFlags are the browse criteria shared by events and ics
type filterFlags struct {
	dateRange  string
	categories []string
	cities     []string
	minPrice   int
	maxPrice   int
	search     string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.dateRange, "range", "", "Date range: 'week', '2026-03-01..2026-03-15', 'Mar 1-15', 'March 1 - April 15' or 'March' (default this week)")
	flags.StringSliceVar(&f.categories, "category", nil, "Category: chess, boardgames, bookclub, discussion (repeatable)")
	flags.StringSliceVar(&f.cities, "city", nil, "City: delhi, gurgaon (repeatable)")
	flags.IntVar(&f.minPrice, "min-price", 0, "Minimum price in rupees")
	flags.IntVar(&f.maxPrice, "max-price", filter.PriceCeiling, "Maximum price in rupees")
	flags.StringVar(&f.search, "search", "", "Search title, description, venue, organizer and tags")
}

// build turns the flags into filter state relative to now
func (f *filterFlags) build(now time.Time) (*filter.Filter, error) {
	state := filter.NewFilter(now)

	if f.dateRange != "" {
		from, to, err := filter.ParseDateRange(f.dateRange, now)
		if err != nil {
			return nil, err
		}
		state.DateFrom, state.DateTo = from, to
	}

	if f.minPrice < 0 || f.maxPrice < f.minPrice {
		return nil, fmt.Errorf("invalid price range: %d..%d", f.minPrice, f.maxPrice)
	}
	state.PriceRange = [2]int{f.minPrice, f.maxPrice}

	for _, c := range f.categories {
		state.Categories = append(state.Categories, token(c))
	}
	for _, c := range f.cities {
		state.Cities = append(state.Cities, filter.CityToken(strings.TrimSpace(c)))
	}
	state.SearchQuery = strings.TrimSpace(f.search)

	return state, nil
}

// token accepts either a token ("bookclub") or a label ("Book Club")
func token(s string) string {
	return strings.ReplaceAll(filter.CategoryToken(strings.TrimSpace(s)), " ", "")
}

// browse queries the API with state and re-filters the answer locally,
// keeping the retrieval events alongside their views
func browse(cmd *cobra.Command, c *client.Client, state *filter.Filter) ([]*filter.View, map[string]*event.Event, bool) {
	events, placeholder := c.Browse(cmd.Context(), state.OutboundQuery())

	byID := make(map[string]*event.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	return state.Apply(filter.Views(events)), byID, placeholder
}

func newEventsCmd(root *rootOptions) *cobra.Command {
	var (
		criteria  filterFlags
		format    string
		sortOrder string
		stats     bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events from the API",
		Long: `List events for a date range, by default the current Monday-Sunday week.
The API receives the first category and city; every criterion is then
applied again locally. Sample events are shown when the API is unavailable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := ParseFormat(format)
			if err != nil {
				return err
			}
			order, err := ParseSortOrder(sortOrder)
			if err != nil {
				return err
			}

			now := time.Now()
			state, err := criteria.build(now)
			if err != nil {
				return err
			}

			views, _, placeholder := browse(cmd, client.New(root.cfg.APIURL), state)
			sortViews(views, order)

			result := &OutputResult{
				GeneratedAt: now.UTC(),
				Filter:      state.String(),
				Placeholder: placeholder,
				Events:      views,
				Count:       len(views),
			}
			if stats {
				s := filter.ComputeStats(views)
				result.Stats = &s
			}

			if err := WriteOutput(cmd.OutOrStdout(), result, outFormat, verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	criteria.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&sortOrder, "sort", "date", "Sort order: date, title or price")
	cmd.Flags().BoolVar(&stats, "stats", false, "Include totals of free events, organizers and venues")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show venue, organizer, link and tags")

	return cmd
}
