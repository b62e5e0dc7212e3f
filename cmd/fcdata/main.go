// Command fcdata fetches football datasets and writes them as JSON or Excel.
//
// Usage:
//
//	fcdata matches --tournament 17 --season 61627 --week 1 --json
//	fcdata match-stats --tournament 17 --season 61627 --week 1 --excel
//	fcdata matches --tournament 7 --season 61644 --week 8 --type uefa --stage round_of_16
//	fcdata standings --tournament 52 --season 63814 --source sofavpn --json
//	fcdata player-stats --tournament 52 --season 63814 --timeout 20s --json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/fcdata/internal/app"
	"github.com/riskibarqy/fcdata/internal/config"
	"github.com/riskibarqy/fcdata/internal/domain/tournament"
	"github.com/riskibarqy/fcdata/internal/platform/logging"
	"github.com/riskibarqy/fcdata/internal/platform/tabular"
	"github.com/riskibarqy/fcdata/internal/usecase"
)

type globalFlags struct {
	source    string
	timeout   time.Duration
	json      bool
	excel     bool
	exportDir string
	fetchMode string
}

func main() {
	_ = godotenv.Load(".env")

	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "fcdata",
		Short:         "Football data fetcher",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.source, "source", "", "data source: sofascore or sofavpn (default DATA_SOURCE)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "per-fetch element load timeout (default ELEMENT_LOAD_TIMEOUT)")
	root.PersistentFlags().BoolVar(&flags.json, "json", false, "write a JSON file")
	root.PersistentFlags().BoolVar(&flags.excel, "excel", false, "write an Excel file")
	root.PersistentFlags().StringVar(&flags.exportDir, "out", "", "export directory (default EXPORT_DIR)")
	root.PersistentFlags().StringVar(&flags.fetchMode, "fetch-mode", "", "browser or http (default FETCH_MODE)")

	root.AddCommand(
		matchesCmd(flags),
		matchStatsCmd(flags),
		shotsCmd(flags),
		pastMatchesCmd(flags),
		standingsCmd(flags),
		squadsCmd(flags),
		teamStatsCmd(flags),
		playerStatsCmd(flags),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run loads configuration, applies flag overrides and hands fn a ready
// data service together with the fetch options of this invocation.
func run(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, svc *usecase.DataService, opts usecase.FetchOptions) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.exportDir != "" {
		cfg.ExportDir = flags.exportDir
	}
	if flags.fetchMode != "" {
		switch flags.fetchMode {
		case config.FetchModeBrowser, config.FetchModeHTTP:
			cfg.FetchMode = flags.fetchMode
		default:
			return fmt.Errorf("--fetch-mode must be %s or %s", config.FetchModeBrowser, config.FetchModeHTTP)
		}
	}

	logger := logging.NewConsole(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	opts, err := fetchOptions(cmd, cfg, flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runtime, err := app.NewRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runtime.Close(); err != nil {
			logger.Warn("close runtime", "error", err)
		}
	}()

	return fn(ctx, runtime.Service, opts)
}

func fetchOptions(cmd *cobra.Command, cfg config.Config, flags *globalFlags) (usecase.FetchOptions, error) {
	opts := app.DefaultFetchOptions(cfg)
	if flags.source != "" {
		source, err := tournament.ParseSource(flags.source)
		if err != nil {
			return opts, err
		}
		opts.Source = source
	}
	if flags.timeout != 0 {
		if flags.timeout < 0 {
			return opts, fmt.Errorf("--timeout must be > 0")
		}
		opts.Timeout = flags.timeout
	}
	if cmd.Flags().Changed("json") {
		opts.Export.JSON = flags.json
	}
	if cmd.Flags().Changed("excel") {
		opts.Export.Excel = flags.excel
	}
	return opts, nil
}

func report[T tabular.Rower](cmd *cobra.Command, dataset usecase.Dataset[T]) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d rows\n", dataset.Kind, len(dataset.Items))
	for _, path := range dataset.Exported {
		fmt.Fprintf(out, "  saved %s\n", path)
	}
}
