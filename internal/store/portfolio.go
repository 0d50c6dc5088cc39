// Package store provides durable persistence for holdings, the audit
// log, and cached prices.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	apperrors "stock-folio/internal/errors"
	"stock-folio/internal/models"
	"stock-folio/pkg/utils"
)

// holdingRow mirrors one row of the holdings CSV. Numeric columns stay
// strings so that a malformed row can be skipped on load instead of
// failing the whole table.
type holdingRow struct {
	Ticker   string `csv:"Ticker"`
	Shares   string `csv:"Shares"`
	BuyPrice string `csv:"Buy Price"`
	Market   string `csv:"Market"`
}

// PortfolioStore owns the holdings table. The durable file is fully
// rewritten on every mutation, through a temp file and rename so a
// crash mid-write leaves either the old or the new table. Every
// mutation appends one entry to the audit log.
type PortfolioStore struct {
	path   string
	audit  *AuditLog
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewPortfolioStore creates a portfolio store backed by the CSV at path.
func NewPortfolioStore(path string, audit *AuditLog, logger zerolog.Logger) *PortfolioStore {
	return &PortfolioStore{
		path:   path,
		audit:  audit,
		logger: logger.With().Str("component", "portfolio_store").Logger(),
	}
}

// Load reads the holdings table. A missing or empty file yields an
// empty portfolio. Rows whose numeric columns fail coercion are
// skipped and counted; the rest of the table still loads.
func (s *PortfolioStore) Load() (models.Portfolio, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *PortfolioStore) load() (models.Portfolio, int, error) {
	portfolio := models.Portfolio{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return portfolio, 0, nil
		}
		return nil, 0, apperrors.NewStoreError(s.path, "load", err)
	}
	if len(data) == 0 {
		return portfolio, 0, nil
	}

	var rows []*holdingRow
	if err := gocsv.UnmarshalString(string(data), &rows); err != nil {
		return nil, 0, apperrors.NewStoreError(s.path, "parse", err)
	}

	skipped := 0
	for _, row := range rows {
		qty, qtyErr := strconv.ParseFloat(strings.TrimSpace(row.Shares), 64)
		price, priceErr := strconv.ParseFloat(strings.TrimSpace(row.BuyPrice), 64)
		if qtyErr != nil || priceErr != nil {
			skipped++
			s.logger.Warn().
				Str("ticker", row.Ticker).
				Str("shares", row.Shares).
				Str("buy_price", row.BuyPrice).
				Msg("Skipping malformed holdings row")
			continue
		}

		market := models.Market(strings.ToUpper(strings.TrimSpace(row.Market)))
		symbol := utils.NormalizeSymbol(row.Ticker, market)
		portfolio[symbol] = models.Holding{
			Symbol:   symbol,
			Quantity: qty,
			BuyPrice: price,
			Market:   market,
		}
	}

	return portfolio, skipped, nil
}

// Upsert inserts or replaces the holding for the normalized form of
// rawTicker. The whole table is persisted and an audit entry appended.
func (s *PortfolioStore) Upsert(rawTicker string, quantity, buyPrice float64, market models.Market) (models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, _, err := s.load()
	if err != nil {
		return models.Holding{}, err
	}

	symbol := utils.NormalizeSymbol(rawTicker, market)
	holding := models.Holding{
		Symbol:   symbol,
		Quantity: quantity,
		BuyPrice: buyPrice,
		Market:   market,
	}
	portfolio[symbol] = holding

	if err := s.save(portfolio); err != nil {
		return models.Holding{}, err
	}

	s.logger.Info().
		Str("symbol", symbol).
		Float64("quantity", quantity).
		Float64("buy_price", buyPrice).
		Msg("Holding saved")

	_, err = s.audit.Append(models.AuditEntry{
		ShareName: strings.ToUpper(strings.TrimSpace(rawTicker)),
		Symbol:    symbol,
		Market:    market,
		Price:     buyPrice,
		HasPrice:  true,
		Info:      fmt.Sprintf("Added %s shares", strconv.FormatFloat(quantity, 'f', -1, 64)),
	})
	return holding, err
}

// Remove deletes the holding for symbol if present; removing an
// absent symbol is a no-op, not an error. The table is persisted and
// an audit entry with description "Deleted stock" appended either way.
func (s *PortfolioStore) Remove(symbol string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	portfolio, _, err := s.load()
	if err != nil {
		return false, err
	}

	holding, found := portfolio[symbol]
	delete(portfolio, symbol)

	if err := s.save(portfolio); err != nil {
		return false, err
	}

	if found {
		s.logger.Info().Str("symbol", symbol).Msg("Holding removed")
	}

	_, err = s.audit.Append(models.AuditEntry{
		ShareName: symbol,
		Symbol:    symbol,
		Market:    holding.Market,
		Info:      "Deleted stock",
	})
	return found, err
}

// save rewrites the full table, sorted by symbol for a stable layout.
func (s *PortfolioStore) save(portfolio models.Portfolio) error {
	symbols := make([]string, 0, len(portfolio))
	for symbol := range portfolio {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	rows := make([]*holdingRow, 0, len(portfolio))
	for _, symbol := range symbols {
		h := portfolio[symbol]
		rows = append(rows, &holdingRow{
			Ticker:   h.Symbol,
			Shares:   strconv.FormatFloat(h.Quantity, 'f', -1, 64),
			BuyPrice: strconv.FormatFloat(h.BuyPrice, 'f', -1, 64),
			Market:   string(h.Market),
		})
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return apperrors.NewStoreError(s.path, "encode", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStoreError(s.path, "save", err)
	}

	tmp, err := os.CreateTemp(dir, ".portfolio-*.csv")
	if err != nil {
		return apperrors.NewStoreError(s.path, "save", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewStoreError(s.path, "save", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStoreError(s.path, "save", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStoreError(s.path, "save", err)
	}
	return nil
}
