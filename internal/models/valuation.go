package models

import "time"

// HoldingValuation is the derived valuation of a single holding at a
// point in time. It is never persisted.
type HoldingValuation struct {
	Symbol     string
	Market     Market
	Quantity   float64
	BuyPrice   float64
	Price      float64 // latest available close
	Value      float64 // Price * Quantity
	PnL        float64 // (Price - BuyPrice) * Quantity
	PnLPercent float64 // zero when BuyPrice is zero
	Weight     float64 // Value / portfolio total, in [0, 1]
}

// PortfolioSnapshot aggregates per-holding valuations. Holdings whose
// price could not be fetched are omitted from Rows and counted in
// Skipped so totals and weights stay consistent.
type PortfolioSnapshot struct {
	At         time.Time
	Rows       []HoldingValuation
	TotalValue float64
	TotalPnL   float64
	Skipped    int
}
