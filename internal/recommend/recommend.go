// Package recommend implements the moving-average trend rule.
package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"stock-folio/internal/feed"
	"stock-folio/internal/models"
	"stock-folio/internal/store"
	"stock-folio/pkg/utils"
)

// smaPeriod is the moving-average window. The rule is a single SMA-50
// crossover: latest close above the average reads bullish, at or below
// reads bearish. Equality resolves bearish.
const smaPeriod = 50

const (
	adviceInsufficientData = "not enough data"
	adviceBullish          = "consider buying, trend is upward"
	adviceBearish          = "consider selling, price is below the moving average"
)

// Engine evaluates the trend rule and records every outcome in the
// audit log, including feed failures.
type Engine struct {
	feed         feed.Client
	audit        *store.AuditLog
	lookbackDays int
	logger       zerolog.Logger
}

// NewEngine creates a recommendation engine. lookbackDays is the
// historical window fetched per evaluation, three months by default.
func NewEngine(feedClient feed.Client, audit *store.AuditLog, lookbackDays int, logger zerolog.Logger) *Engine {
	return &Engine{
		feed:         feedClient,
		audit:        audit,
		lookbackDays: lookbackDays,
		logger:       logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend evaluates the trend rule for rawTicker on market. Feed
// failures are recovered locally: the result carries the error text
// with VerdictError and a nil error, and the failure is still written
// to the audit log with its price marked unavailable. Only an audit
// write failure is returned as an error.
func (e *Engine) Recommend(ctx context.Context, rawTicker string, market models.Market) (*models.Recommendation, error) {
	shareName := strings.ToUpper(strings.TrimSpace(rawTicker))
	symbol := utils.NormalizeSymbol(rawTicker, market)

	rec := &models.Recommendation{
		Symbol: symbol,
		Market: market,
	}

	now := time.Now()
	points, err := e.feed.History(ctx, feed.Request{
		Symbol: symbol,
		From:   now.AddDate(0, 0, -e.lookbackDays),
		To:     now,
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("symbol", symbol).Msg("Trend evaluation failed")
		rec.Verdict = models.VerdictError
		rec.Advice = err.Error()

		if _, auditErr := e.audit.Append(models.AuditEntry{
			ShareName: shareName,
			Symbol:    symbol,
			Market:    market,
			Info:      err.Error(),
		}); auditErr != nil {
			return rec, auditErr
		}
		return rec, nil
	}

	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}

	rec.Observations = len(closes)
	rec.LatestClose = closes[len(closes)-1]

	if len(closes) < smaPeriod {
		rec.Verdict = models.VerdictInsufficientData
		rec.Advice = adviceInsufficientData
	} else {
		sma := talib.Sma(closes, smaPeriod)
		rec.MovingAverage = sma[len(sma)-1]

		if rec.LatestClose > rec.MovingAverage {
			rec.Verdict = models.VerdictBullish
			rec.Advice = adviceBullish
		} else {
			rec.Verdict = models.VerdictBearish
			rec.Advice = adviceBearish
		}
	}

	e.logger.Info().
		Str("symbol", symbol).
		Str("verdict", string(rec.Verdict)).
		Float64("close", rec.LatestClose).
		Float64("sma", rec.MovingAverage).
		Int("observations", rec.Observations).
		Msg("Trend evaluated")

	if _, auditErr := e.audit.Append(models.AuditEntry{
		ShareName: shareName,
		Symbol:    symbol,
		Market:    market,
		Price:     rec.LatestClose,
		HasPrice:  true,
		Info:      rec.Advice,
	}); auditErr != nil {
		return rec, auditErr
	}
	return rec, nil
}
