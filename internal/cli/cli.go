package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/config"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

// rootOptions carries the persistent flags and the loaded configuration
// down to every subcommand
type rootOptions struct {
	configPath string
	logLevel   string

	storeDriver string
	dataDir     string
	dsn         string
	renderer    string
	chromePath  string
	seed        int64
	apiURL      string

	cfg *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ncr-events",
		Short: "Find intellectual events in Delhi and Gurgaon",
		Long: `A service and CLI for chess, board game, book club and discussion events
in Delhi and Gurgaon. "serve" runs the events API with periodic ingestion;
"events" browses it with client-side filters.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.load,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.storeDriver, "store", "", "Store driver: memory, file or postgres")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Data directory of the file store")
	flags.StringVar(&opts.dsn, "dsn", "", "PostgreSQL connection string")
	flags.StringVar(&opts.renderer, "renderer", "", "Page renderer: http or chromium")
	flags.StringVar(&opts.chromePath, "chrome-path", "", "Chromium binary for the chromium renderer")
	flags.Int64Var(&opts.seed, "seed", 0, "Seed for synthetic fields (0 seeds from the clock)")
	flags.StringVar(&opts.apiURL, "api-url", "", "Base URL of the events API")

	cmd.AddCommand(
		newServeCmd(opts),
		newIngestCmd(opts),
		newEventsCmd(opts),
		newICSCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// load reads the config file, applies flag overrides and configures the
// default logger. Logs go to stderr so stdout stays parseable.
func (o *rootOptions) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("store") {
		cfg.Store.Driver = o.storeDriver
	}
	if flags.Changed("data-dir") {
		cfg.Store.Path = o.dataDir
	}
	if flags.Changed("dsn") {
		cfg.Store.DSN = o.dsn
	}
	if flags.Changed("renderer") {
		cfg.Renderer.Kind = o.renderer
	}
	if flags.Changed("chrome-path") {
		cfg.Renderer.ChromePath = o.chromePath
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("api-url") {
		cfg.APIURL = o.apiURL
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr()))
	o.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ncr-events %s\n", Version)
		},
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
