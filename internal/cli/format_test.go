package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIndianCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{100000, "₹1,00,000.00"},       // 1 lakh
		{10000000, "₹1,00,00,000.00"},  // 1 crore
		{12345678.9, "₹1,23,45,678.90"},
		{-2500.5, "-₹2,500.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatIndianCurrency(tt.amount))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+12.50%", FormatPercent(12.5))
	assert.Equal(t, "-3.25%", FormatPercent(-3.25))
	assert.Equal(t, "0.00%", FormatPercent(0))
}

func TestFormatPnL(t *testing.T) {
	assert.Equal(t, "+₹200.00", FormatPnL(200))
	assert.Equal(t, "-₹500.00", FormatPnL(-500))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "10", FormatQuantity(10))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "25.0%", FormatWeight(0.25))
	assert.Equal(t, "100.0%", FormatWeight(1))
}
