package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/calendar"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/client"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/store"
)

const calendarName = "NCR Intellectual Events"

func newICSCmd(root *rootOptions) *cobra.Command {
	var (
		criteria filterFlags
		output   string
	)

	cmd := &cobra.Command{
		Use:   "ics [event-id]",
		Short: "Export events as an iCalendar file",
		Long: `With an event id, export that stored event from the configured store.
Without one, export every event the filter flags select from the API.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			var body string
			if len(args) == 1 {
				evt, err := storedEvent(cmd, root, args[0])
				if err != nil {
					return err
				}
				body = calendar.GenerateICS(evt, now)
			} else {
				state, err := criteria.build(now)
				if err != nil {
					return err
				}
				views, byID, _ := browse(cmd, client.New(root.cfg.APIURL), state)
				events := make([]*event.Event, 0, len(views))
				for _, v := range views {
					events = append(events, byID[v.ID])
				}
				body = calendar.GenerateBulkICS(events, calendarName, now)
				if body == "" {
					return errors.New("no events match the filters")
				}
			}

			return writeICS(cmd.OutOrStdout(), output, body)
		},
	}

	criteria.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func storedEvent(cmd *cobra.Command, root *rootOptions, id string) (*event.Event, error) {
	st, err := openStore(cmd.Context(), root.cfg.Store)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	row, err := store.FindByID(cmd.Context(), st, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("event %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}
	return event.Normalize(row), nil
}

func writeICS(stdout io.Writer, path, body string) error {
	if path == "" {
		_, err := io.WriteString(stdout, body)
		return err
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
