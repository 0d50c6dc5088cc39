package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stock-folio/internal/models"
	"stock-folio/pkg/utils"
)

// addAnalysisCommands adds valuation and recommendation commands.
func addAnalysisCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newValueCmd(app))
	rootCmd.AddCommand(newSnapshotCmd(app))
	rootCmd.AddCommand(newRecommendCmd(app))
}

func newValueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "value",
		Short: "Show the total portfolio value",
		Long: `Show the total current value of the portfolio. Holdings whose
price cannot be fetched contribute zero and are left out of the sum.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			total, err := app.Valuation.PortfolioValue(ctx)
			if err != nil {
				output.Error("Could not value portfolio: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]float64{"total_value": total})
			}

			output.Bold("Portfolio value: %s", FormatIndianCurrency(total))
			if !utils.IsMarketOpen() {
				output.Dim("Market is closed, prices are the last available close. Next open %s.",
					utils.GetNextMarketOpen().Format("Mon 02 Jan 15:04"))
			}
			return nil
		},
	}
}

func newSnapshotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Show per-holding valuation and P&L",
		Long: `Value every holding against its latest close and show profit and
loss plus portfolio composition. Holdings whose price cannot be
fetched are omitted and reported as skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
			defer cancel()

			snap, err := app.Valuation.Snapshot(ctx)
			if err != nil {
				output.Error("Could not compute snapshot: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(snap)
			}

			if len(snap.Rows) == 0 && snap.Skipped == 0 {
				output.Dim("No holdings yet. Use 'folio add' to start tracking.")
				return nil
			}

			output.Bold("%-16s %10s %12s %14s %14s %9s %7s",
				"SYMBOL", "SHARES", "PRICE", "VALUE", "P&L", "P&L %", "WEIGHT")
			for _, row := range snap.Rows {
				output.Printf("%-16s %10s %12s %14s %14s %9s %7s\n",
					row.Symbol,
					FormatQuantity(row.Quantity),
					FormatIndianCurrency(row.Price),
					FormatIndianCurrency(row.Value),
					FormatPnL(row.PnL),
					FormatPercent(row.PnLPercent),
					FormatWeight(row.Weight))
			}

			output.Println()
			output.Bold("Total value: %s", FormatIndianCurrency(snap.TotalValue))
			output.Bold("Total P&L:   %s", FormatPnL(snap.TotalPnL))
			if snap.Skipped > 0 {
				output.Warning("%d holding(s) skipped: price unavailable", snap.Skipped)
			}
			return nil
		},
	}
}

func newRecommendCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <ticker>",
		Short: "Evaluate the moving-average trend signal for a symbol",
		Long: `Fetch three months of daily closes and compare the latest close to
its 50-day simple moving average. A close above the average reads
bullish, at or below reads bearish. Fewer than 50 observations is
reported as not enough data. Every evaluation is appended to the
audit log.`,
		Example: `  folio recommend RELIANCE
  folio recommend 500325 --market BSE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			marketFlag, _ := cmd.Flags().GetString("market")
			market := models.Market(strings.ToUpper(marketFlag))

			rec, err := app.Recommend.Recommend(ctx, args[0], market)
			if err != nil {
				output.Error("Could not record recommendation: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}

			switch rec.Verdict {
			case models.VerdictBullish:
				output.Bullish("%s: BULLISH", rec.Symbol)
				output.Printf("  Close %s vs SMA-50 %s\n",
					FormatIndianCurrency(rec.LatestClose), FormatIndianCurrency(rec.MovingAverage))
				output.Dim("  %s", rec.Advice)
			case models.VerdictBearish:
				output.Bearish("%s: BEARISH", rec.Symbol)
				output.Printf("  Close %s vs SMA-50 %s\n",
					FormatIndianCurrency(rec.LatestClose), FormatIndianCurrency(rec.MovingAverage))
				output.Dim("  %s", rec.Advice)
			case models.VerdictInsufficientData:
				output.Warning("%s: %s (%d observations, need 50)", rec.Symbol, rec.Advice, rec.Observations)
			default:
				output.Error("%s: %s", rec.Symbol, rec.Advice)
			}
			return nil
		},
	}
	cmd.Flags().String("market", string(models.NSE), "market (NSE or BSE)")
	return cmd
}
