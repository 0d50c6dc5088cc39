package utils

import (
	"strings"
	"time"

	"stock-folio/internal/models"
)

// IndiaLocation is the timezone for Indian markets.
var IndiaLocation *time.Location

func init() {
	var err error
	IndiaLocation, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback to UTC+5:30
		IndiaLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// NormalizeSymbol maps a user-entered ticker and a market to the
// exchange-qualified symbol used everywhere else: the ticker is
// upper-cased and the market's suffix appended unless already present.
// Markets without a known suffix pass the ticker through unsuffixed.
// Normalizing an already-normalized symbol is a no-op.
func NormalizeSymbol(raw string, market models.Market) string {
	ticker := strings.ToUpper(strings.TrimSpace(raw))

	suffix, ok := market.Suffix()
	if !ok {
		return ticker
	}
	if strings.HasSuffix(ticker, suffix) {
		return ticker
	}
	return ticker + suffix
}

// GetMarketStatus returns the current market session status.
func GetMarketStatus() models.MarketStatus {
	now := time.Now().In(IndiaLocation)

	// Check if weekend
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return models.MarketClosed
	}

	hour := now.Hour()
	minute := now.Minute()
	timeMinutes := hour*60 + minute

	// Pre-open: 9:00 - 9:15
	if timeMinutes >= 540 && timeMinutes < 555 {
		return models.MarketPreOpen
	}

	// Market open: 9:15 - 15:30
	if timeMinutes >= 555 && timeMinutes < 930 {
		return models.MarketOpen
	}

	return models.MarketClosed
}

// IsMarketOpen returns true if the market is currently open.
func IsMarketOpen() bool {
	return GetMarketStatus() == models.MarketOpen
}

// GetNextMarketOpen returns the next market opening time.
func GetNextMarketOpen() time.Time {
	now := time.Now().In(IndiaLocation)

	// Start with today at 9:15
	next := time.Date(now.Year(), now.Month(), now.Day(), 9, 15, 0, 0, IndiaLocation)

	// If already past today's open, move to tomorrow
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	// Skip weekends
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
