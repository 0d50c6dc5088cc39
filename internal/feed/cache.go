package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"stock-folio/internal/models"
	"stock-folio/internal/store"
)

// CachedClient decorates a Client with a same-day SQLite cache. A
// request is served from the cache only when the symbol was fetched
// today and the cached window reaches back to the requested start, so
// a short quote lookup never shadows a later, longer trend window.
// Anything else goes back to the wrapped client. Cache write failures
// are logged, not returned, so a broken cache never blocks a valuation.
type CachedClient struct {
	inner  Client
	cache  *store.PriceCache
	logger zerolog.Logger
}

// NewCachedClient wraps inner with cache.
func NewCachedClient(inner Client, cache *store.PriceCache, logger zerolog.Logger) *CachedClient {
	return &CachedClient{
		inner:  inner,
		cache:  cache,
		logger: logger.With().Str("component", "feed_cache").Logger(),
	}
}

// History implements Client.
func (c *CachedClient) History(ctx context.Context, req Request) ([]models.PricePoint, error) {
	if cov, err := c.cache.CoverageFor(ctx, req.Symbol); err == nil && covers(cov, req) {
		points, err := c.cache.Closes(ctx, req.Symbol, req.From, req.To)
		if err == nil && len(points) > 0 {
			c.logger.Debug().Str("symbol", req.Symbol).Int("points", len(points)).Msg("Cache hit")
			return points, nil
		}
	}

	points, err := c.inner.History(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SaveHistory(ctx, req.Symbol, req.From, req.To, points); err != nil {
		c.logger.Warn().Err(err).Str("symbol", req.Symbol).Msg("Failed to cache closes")
	}
	return points, nil
}

// covers reports whether the cached window can answer req: fetched
// today and starting no later than the requested start. Coverage dates
// carry day precision, so the comparison tolerates req.From's
// time of day.
func covers(cov store.Coverage, req Request) bool {
	return !cov.FetchedAt.IsZero() &&
		sameDay(cov.FetchedAt, time.Now()) &&
		!req.From.Before(cov.From)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
