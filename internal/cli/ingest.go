package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/client"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/service"
)

func newIngestCmd(root *rootOptions) *cobra.Command {
	var (
		remote bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run one ingestion pass",
		Long: `Gather events from Meetup, Eventbrite and the local community list,
purge rows older than 24 hours and store the new batch. By default the pass
runs in-process against the configured store; --remote asks the API to do it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := ParseFormat(format)
			if err != nil {
				return err
			}

			var summary *service.Summary
			if remote {
				summary, err = client.New(root.cfg.APIURL).Scrape(cmd.Context())
			} else {
				summary, err = ingestLocal(cmd, root)
			}
			if err != nil {
				return err
			}

			if err := writeSummary(cmd.OutOrStdout(), summary, outFormat); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Trigger POST /scrape-events on the API instead")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func ingestLocal(cmd *cobra.Command, root *rootOptions) (*service.Summary, error) {
	st, err := openStore(cmd.Context(), root.cfg.Store)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	ingestion, err := newIngestion(root.cfg, st, nil)
	if err != nil {
		return nil, err
	}
	return ingestion.Run(cmd.Context())
}
