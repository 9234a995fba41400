package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/retailgrid/internal/config"
	"github.com/roach88/retailgrid/internal/dataset"
	"github.com/roach88/retailgrid/internal/source"
	"github.com/roach88/retailgrid/internal/store"
)

// DatasetLoader produces the canonical dataset snapshot for one
// invocation. Overridable for testing.
type DatasetLoader func(ctx context.Context) (*dataset.Dataset, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	CacheDir   string
	SourceURL  string
	Refresh    time.Duration

	// Loader allows overriding the dataset source (for testing).
	// If nil, the configured source cache is used.
	Loader DatasetLoader
}

// NewRootCommand creates the root command for the retailgrid CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retailgrid",
		Short: "Query retail electricity supply statistics",
		Long: `retailgrid queries the published retail electricity dataset: customers,
sales, revenue, and price by year, month, state, and sector.

The query command consumes directives in the order given, selects and
aggregates the data, and renders the result in a registered output format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation prints the one-line syntax summary.
			fmt.Fprintln(cmd.OutOrStdout(), "Syntax: retailgrid query [DIRECTIVE ...]")
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.CacheDir, "cache", "", "cache directory (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.SourceURL, "source", "", "source workbook URL (overrides config)")
	cmd.PersistentFlags().DurationVar(&opts.Refresh, "refresh", 0, "snapshot refresh interval (overrides config)")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewKeysCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// configureLogging installs the process logger: text on stderr, debug
// level under --verbose, every record stamped with this invocation's run
// token.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)
	if token, err := uuid.NewV7(); err == nil {
		logger = logger.With("run", token.String())
	}
	slog.SetDefault(logger)
}

// loadDataset resolves configuration and produces the canonical snapshot.
func loadDataset(ctx context.Context, opts *RootOptions) (*dataset.Dataset, error) {
	if opts.Loader != nil {
		return opts.Loader(ctx)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.CacheDir != "" {
		cfg.Cache.Dir = opts.CacheDir
	}
	if opts.SourceURL != "" {
		cfg.Source.URL = opts.SourceURL
	}
	if opts.Refresh > 0 {
		cfg.Source.Refresh = config.Duration(opts.Refresh)
	}

	if err := os.MkdirAll(cfg.Cache.Dir, 0o755); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create cache dir", err)
	}

	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open snapshot cache", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing snapshot cache", "error", closeErr)
		}
	}()

	cache := source.New(st, cfg.Source.URL, cfg.Source.Refresh.Std())
	cache.RawDir = cfg.Cache.Dir
	d, err := cache.Load(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load dataset", err)
	}
	return d, nil
}
