package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	apperrors "stock-folio/internal/errors"
	"stock-folio/internal/models"
)

// chartResponse mirrors the Yahoo Finance v8 chart payload, reduced to
// the fields this client reads.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamps []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooClient fetches daily closes from the Yahoo Finance chart API.
// Normalized NSE/BSE symbols (.NS/.BO suffixes) are Yahoo identifiers
// already, so they go on the wire unchanged.
type YahooClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewYahooClient creates a Yahoo Finance client. Requests are bounded
// by timeout; a timed-out call surfaces as an ordinary feed failure.
func NewYahooClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *YahooClient {
	return &YahooClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "yahoo_feed").Logger(),
	}
}

// History fetches the daily close series for req.Symbol between
// req.From and req.To. Days without a close (holidays, halts) are
// dropped from the series.
func (y *YahooClient) History(ctx context.Context, req Request) ([]models.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		y.baseURL, url.PathEscape(req.Symbol), req.From.Unix(), req.To.Unix())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewFeedError(req.Symbol, "history", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewFeedError(req.Symbol, "history", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewFeedError(req.Symbol, "history", fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewFeedError(req.Symbol, "history", err)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewFeedError(req.Symbol, "history", err)
	}

	if parsed.Chart.Error != nil {
		return nil, apperrors.NewFeedError(req.Symbol, "history",
			fmt.Errorf("%s: %s", parsed.Chart.Error.Code, parsed.Chart.Error.Description))
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, apperrors.NewFeedError(req.Symbol, "history", apperrors.ErrNoPriceData)
	}

	result := parsed.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	points := make([]models.PricePoint, 0, len(result.Timestamps))
	for i, ts := range result.Timestamps {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, models.PricePoint{
			Date:  time.Unix(ts, 0),
			Close: *closes[i],
		})
	}

	if len(points) == 0 {
		return nil, apperrors.NewFeedError(req.Symbol, "history", apperrors.ErrNoPriceData)
	}

	y.logger.Debug().
		Str("symbol", req.Symbol).
		Int("points", len(points)).
		Msg("Fetched price history")
	return points, nil
}
