// Package feed provides market data clients.
package feed

import (
	"context"
	"time"

	"stock-folio/internal/models"
)

// Request describes a historical price query for one symbol.
type Request struct {
	Symbol string
	From   time.Time
	To     time.Time
}

// Client supplies time-ordered daily closing prices for a symbol.
// An empty series is reported as an error wrapping
// errors.ErrNoPriceData, never as a nil slice with a nil error.
type Client interface {
	History(ctx context.Context, req Request) ([]models.PricePoint, error)
}
