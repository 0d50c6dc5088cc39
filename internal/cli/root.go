package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stock-folio/internal/config"
	"stock-folio/internal/feed"
	"stock-folio/internal/logging"
	"stock-folio/internal/recommend"
	"stock-folio/internal/store"
	"stock-folio/internal/valuation"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Audit     *store.AuditLog
	Portfolio *store.PortfolioStore
	Feed      feed.Client
	Valuation *valuation.Engine
	Recommend *recommend.Engine
}

// NewRootCmd creates the root command for the CLI and wires up the
// engine behind it.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) (*cobra.Command, error) {
	app := &App{Config: cfg, Logger: logger}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	audit, err := store.NewAuditLog(cfg.Storage.AuditPath(), logger)
	if err != nil {
		return nil, err
	}
	app.Audit = audit
	app.Portfolio = store.NewPortfolioStore(cfg.Storage.PortfolioPath(), audit, logger)

	var feedClient feed.Client = feed.NewYahooClient(cfg.Feed.BaseURL, cfg.Feed.Timeout, logger)
	if cfg.Feed.CacheEnabled {
		cache, err := store.NewPriceCache(cfg.Storage.CachePath())
		if err != nil {
			logger.Warn().Err(err).Msg("Price cache unavailable, fetching live")
		} else {
			feedClient = feed.NewCachedClient(feedClient, cache, logger)
		}
	}
	app.Feed = feedClient
	app.Valuation = valuation.NewEngine(app.Portfolio, feedClient, cfg.Feed.QuoteLookback, logger)
	app.Recommend = recommend.NewEngine(feedClient, audit, cfg.Feed.TrendLookback, logger)

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Track equity holdings and spot price trends",
		Long: `Folio tracks a portfolio of NSE/BSE equity holdings, values it
against live market prices, and issues a simple moving-average
buy/sell signal per symbol.

Holdings and the audit trail live in plain CSV files under
~/.config/folio, so they stay easy to inspect and back up.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")

	addPortfolioCommands(rootCmd, app)
	addAnalysisCommands(rootCmd, app)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", Version)
		},
	}
}
