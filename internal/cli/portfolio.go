package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "stock-folio/internal/errors"
	"stock-folio/internal/models"
	"stock-folio/pkg/utils"
)

// addPortfolioCommands adds holdings management commands.
func addPortfolioCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAddCmd(app))
	rootCmd.AddCommand(newRemoveCmd(app))
	rootCmd.AddCommand(newListCmd(app))
}

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <ticker> <quantity> <buy-price>",
		Short: "Add or replace a holding",
		Long: `Add a holding to the portfolio. Adding a ticker that is already
held replaces the stored quantity and buy price.`,
		Example: `  folio add RELIANCE 10 2000
  folio add 500325 5 2400 --market BSE`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			qty, err := strconv.ParseFloat(args[1], 64)
			if err != nil || qty < 0 {
				output.Error("Invalid quantity: %s", args[1])
				return apperrors.NewValidationError("quantity", args[1], "must be a non-negative number")
			}
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				output.Error("Invalid buy price: %s", args[2])
				return apperrors.NewValidationError("buy-price", args[2], "must be a number")
			}

			marketFlag, _ := cmd.Flags().GetString("market")
			market := models.Market(strings.ToUpper(marketFlag))

			holding, err := app.Portfolio.Upsert(args[0], qty, price, market)
			if err != nil {
				output.Error("Could not save holding: %v", err)
				return err
			}

			output.Success("Added %s: %s shares at %s",
				holding.Symbol, FormatQuantity(holding.Quantity), FormatIndianCurrency(holding.BuyPrice))
			return nil
		},
	}
	cmd.Flags().String("market", string(models.NSE), "market (NSE or BSE)")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <ticker>",
		Short: "Remove a holding",
		Example: `  folio remove RELIANCE.NS
  folio remove RELIANCE --market NSE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			marketFlag, _ := cmd.Flags().GetString("market")
			market := models.Market(strings.ToUpper(marketFlag))
			symbol := utils.NormalizeSymbol(args[0], market)

			found, err := app.Portfolio.Remove(symbol)
			if err != nil {
				output.Error("Could not remove holding: %v", err)
				return err
			}
			if !found {
				output.Warning("Not holding %s", symbol)
				return nil
			}

			output.Success("Removed %s", symbol)
			return nil
		},
	}
	cmd.Flags().String("market", string(models.NSE), "market (NSE or BSE)")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored holdings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			portfolio, skipped, err := app.Portfolio.Load()
			if err != nil {
				output.Error("Could not load portfolio: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(portfolio)
			}

			if skipped > 0 {
				output.Warning("Skipped %d malformed row(s) in the holdings file", skipped)
			}
			if len(portfolio) == 0 {
				output.Dim("No holdings yet. Use 'folio add' to start tracking.")
				return nil
			}

			output.Bold("%-16s %12s %14s %8s", "SYMBOL", "SHARES", "BUY PRICE", "MARKET")
			for _, symbol := range sortedSymbols(portfolio) {
				h := portfolio[symbol]
				output.Printf("%-16s %12s %14s %8s\n",
					h.Symbol, FormatQuantity(h.Quantity), FormatIndianCurrency(h.BuyPrice), h.Market)
			}
			return nil
		},
	}
}

func sortedSymbols(portfolio models.Portfolio) []string {
	symbols := make([]string, 0, len(portfolio))
	for symbol := range portfolio {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
