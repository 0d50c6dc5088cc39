// Package valuation computes per-holding and portfolio-level analytics
// from the holdings store and the market data feed.
package valuation

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"stock-folio/internal/feed"
	"stock-folio/internal/models"
	"stock-folio/internal/store"
)

// Engine values the portfolio against live market prices.
type Engine struct {
	store         *store.PortfolioStore
	feed          feed.Client
	quoteLookback int // days of history to tolerate holidays
	logger        zerolog.Logger
}

// NewEngine creates a valuation engine. quoteLookback is the number of
// calendar days to look back for the most recent close.
func NewEngine(portfolioStore *store.PortfolioStore, feedClient feed.Client, quoteLookback int, logger zerolog.Logger) *Engine {
	return &Engine{
		store:         portfolioStore,
		feed:          feedClient,
		quoteLookback: quoteLookback,
		logger:        logger.With().Str("component", "valuation").Logger(),
	}
}

// CurrentPrice returns the most recent close for symbol over the
// lookback window. The second return value is false when the feed
// fails or returns no data; the two cases are not distinguished.
func (e *Engine) CurrentPrice(ctx context.Context, symbol string) (float64, bool) {
	now := time.Now()
	points, err := e.feed.History(ctx, feed.Request{
		Symbol: symbol,
		From:   now.AddDate(0, 0, -e.quoteLookback),
		To:     now,
	})
	if err != nil || len(points) == 0 {
		e.logger.Debug().Err(err).Str("symbol", symbol).Msg("Price unavailable")
		return 0, false
	}
	return points[len(points)-1].Close, true
}

// PortfolioValue sums current price times quantity over all holdings
// with an available price. Holdings whose price cannot be fetched
// contribute zero; that approximation is deliberate, not an error.
func (e *Engine) PortfolioValue(ctx context.Context) (float64, error) {
	portfolio, _, err := e.store.Load()
	if err != nil {
		return 0, err
	}

	var total float64
	for symbol, holding := range portfolio {
		price, ok := e.CurrentPrice(ctx, symbol)
		if !ok {
			continue
		}
		total += price * holding.Quantity
	}
	return total, nil
}

// Snapshot values every holding and aggregates totals and composition
// weights. Holdings with an unavailable price are omitted from the
// rows entirely and counted in Skipped, so totals and weights are
// computed only over priced holdings.
func (e *Engine) Snapshot(ctx context.Context) (*models.PortfolioSnapshot, error) {
	portfolio, _, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(portfolio))
	for symbol := range portfolio {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	snap := &models.PortfolioSnapshot{At: time.Now()}
	for _, symbol := range symbols {
		holding := portfolio[symbol]

		price, ok := e.CurrentPrice(ctx, symbol)
		if !ok {
			snap.Skipped++
			continue
		}

		value := price * holding.Quantity
		pnl := (price - holding.BuyPrice) * holding.Quantity
		pnlPercent := 0.0
		if holding.BuyPrice != 0 {
			pnlPercent = (price - holding.BuyPrice) / holding.BuyPrice * 100
		}

		snap.Rows = append(snap.Rows, models.HoldingValuation{
			Symbol:     holding.Symbol,
			Market:     holding.Market,
			Quantity:   holding.Quantity,
			BuyPrice:   holding.BuyPrice,
			Price:      price,
			Value:      value,
			PnL:        pnl,
			PnLPercent: pnlPercent,
		})
		snap.TotalValue += value
		snap.TotalPnL += pnl
	}

	if snap.TotalValue > 0 {
		for i := range snap.Rows {
			snap.Rows[i].Weight = snap.Rows[i].Value / snap.TotalValue
		}
	}

	e.logger.Debug().
		Int("holdings", len(snap.Rows)).
		Int("skipped", snap.Skipped).
		Float64("total_value", snap.TotalValue).
		Msg("Snapshot computed")
	return snap, nil
}
