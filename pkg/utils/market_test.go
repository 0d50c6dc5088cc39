package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stock-folio/internal/models"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		market models.Market
		want   string
	}{
		{"nse adds suffix", "RELIANCE", models.NSE, "RELIANCE.NS"},
		{"bse adds suffix", "500325", models.BSE, "500325.BO"},
		{"lower case upper cased", "infy", models.NSE, "INFY.NS"},
		{"already suffixed is no-op", "RELIANCE.NS", models.NSE, "RELIANCE.NS"},
		{"already suffixed bse", "TCS.BO", models.BSE, "TCS.BO"},
		{"whitespace trimmed", "  tcs ", models.NSE, "TCS.NS"},
		{"unknown market passes through", "AAPL", models.Market("NASDAQ"), "AAPL"},
		{"empty market passes through", "AAPL", models.Market(""), "AAPL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSymbol(tt.raw, tt.market))
		})
	}
}

func TestNormalizeSymbolCrossMarketSuffix(t *testing.T) {
	// A BSE-suffixed ticker normalized for NSE still gets the NSE
	// suffix appended; the normalizer only checks its own suffix.
	assert.Equal(t, "TCS.BO.NS", NormalizeSymbol("TCS.BO", models.NSE))
}
