package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-folio/internal/models"
)

func newTestCache(t *testing.T) *PriceCache {
	t.Helper()
	cache, err := NewPriceCache(filepath.Join(t.TempDir(), "prices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPriceCacheSaveAndQuery(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	points := []models.PricePoint{
		{Date: day(2024, 3, 11), Close: 2800},
		{Date: day(2024, 3, 12), Close: 2825},
		{Date: day(2024, 3, 13), Close: 2790},
	}
	require.NoError(t, cache.SaveHistory(ctx, "RELIANCE.NS", day(2024, 3, 11), day(2024, 3, 13), points))

	got, err := cache.Closes(ctx, "RELIANCE.NS", day(2024, 3, 11), day(2024, 3, 13))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 2800.0, got[0].Close)
	assert.Equal(t, 2790.0, got[2].Close)

	// Range excludes the first day.
	got, err = cache.Closes(ctx, "RELIANCE.NS", day(2024, 3, 12), day(2024, 3, 13))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPriceCacheSaveIsUpsert(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveHistory(ctx, "INFY.NS", day(2024, 3, 11), day(2024, 3, 11),
		[]models.PricePoint{{Date: day(2024, 3, 11), Close: 1500}}))
	require.NoError(t, cache.SaveHistory(ctx, "INFY.NS", day(2024, 3, 11), day(2024, 3, 11),
		[]models.PricePoint{{Date: day(2024, 3, 11), Close: 1510}}))

	got, err := cache.Closes(ctx, "INFY.NS", day(2024, 3, 11), day(2024, 3, 11))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1510.0, got[0].Close)
}

func TestPriceCacheCoverageForUnknownSymbol(t *testing.T) {
	cache := newTestCache(t)

	cov, err := cache.CoverageFor(context.Background(), "UNKNOWN.NS")
	require.NoError(t, err)
	assert.True(t, cov.FetchedAt.IsZero())
	assert.True(t, cov.From.IsZero())
}

func TestPriceCacheCoverageTracksRequestedWindow(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	// The requested window is wider than the dates that hold closes.
	require.NoError(t, cache.SaveHistory(ctx, "TCS.NS", day(2024, 3, 9), day(2024, 3, 12),
		[]models.PricePoint{{Date: day(2024, 3, 11), Close: 3500}}))

	cov, err := cache.CoverageFor(ctx, "TCS.NS")
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 9), cov.From)
	assert.Equal(t, day(2024, 3, 12), cov.To)
	assert.WithinDuration(t, time.Now().UTC(), cov.FetchedAt, time.Minute)
}

func TestPriceCacheCoverageWidensAcrossFetches(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveHistory(ctx, "SBIN.NS", day(2024, 3, 10), day(2024, 3, 12),
		[]models.PricePoint{{Date: day(2024, 3, 11), Close: 750}}))
	require.NoError(t, cache.SaveHistory(ctx, "SBIN.NS", day(2024, 1, 1), day(2024, 3, 1),
		[]models.PricePoint{{Date: day(2024, 1, 2), Close: 640}}))

	cov, err := cache.CoverageFor(ctx, "SBIN.NS")
	require.NoError(t, err)

	// Union of both requested windows, not just the last one.
	assert.Equal(t, day(2024, 1, 1), cov.From)
	assert.Equal(t, day(2024, 3, 12), cov.To)
}
