// Package models provides domain models for the portfolio tracker.
package models

import (
	"time"
)

// Market represents a stock exchange.
type Market string

const (
	NSE Market = "NSE"
	BSE Market = "BSE"
)

// Suffix returns the exchange-qualifying ticker suffix for the market.
// The second return value is false for markets without a known suffix.
func (m Market) Suffix() (string, bool) {
	switch m {
	case NSE:
		return ".NS", true
	case BSE:
		return ".BO", true
	default:
		return "", false
	}
}

// MarketStatus represents the current market session status.
type MarketStatus string

const (
	MarketOpen    MarketStatus = "OPEN"
	MarketPreOpen MarketStatus = "PRE_OPEN"
	MarketClosed  MarketStatus = "CLOSED"
)

// Holding represents one portfolio position, keyed by its normalized symbol.
type Holding struct {
	Symbol   string  // exchange-qualified, e.g. RELIANCE.NS
	Quantity float64 // share count, non-negative
	BuyPrice float64 // acquisition price per share, may be zero
	Market   Market
}

// Portfolio is the full mapping of normalized symbol to holding.
type Portfolio map[string]Holding

// PricePoint is one observation of a daily closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// AuditEntry is an immutable, serially numbered record of a portfolio
// action or recommendation. Serial is assigned by the audit log at
// append time; callers leave it zero.
type AuditEntry struct {
	Serial    int
	Timestamp time.Time
	ShareName string // user-entered ticker
	Symbol    string // normalized ticker, may equal ShareName
	Market    Market // empty for entries not tied to a market action
	Price     float64
	HasPrice  bool // false renders as "N/A" in the log
	Info      string
}
