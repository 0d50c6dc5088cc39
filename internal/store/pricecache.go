package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"stock-folio/internal/models"
)

const cacheDateFormat = "2006-01-02"

// PriceCache stores fetched daily closes in SQLite so repeated
// valuations within a day do not refetch from the network.
type PriceCache struct {
	db *sql.DB
}

// NewPriceCache opens (or creates) the cache database at dbPath.
func NewPriceCache(dbPath string) (*PriceCache, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	cache := &PriceCache{db: db}
	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return cache, nil
}

func (c *PriceCache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS closes (
		symbol TEXT NOT NULL,
		date TEXT NOT NULL,
		close REAL NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (symbol, date)
	);
	CREATE INDEX IF NOT EXISTS idx_closes_symbol ON closes(symbol);
	CREATE TABLE IF NOT EXISTS fetches (
		symbol TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Coverage describes the window of daily closes cached for a symbol.
// From and To are the union of all requested ranges, which may be wider
// than the dates actually holding closes (weekends, holidays).
type Coverage struct {
	From      time.Time
	To        time.Time
	FetchedAt time.Time
}

// SaveHistory upserts the daily closes fetched for symbol over the
// requested from/to window and widens the recorded coverage to include
// it. Coverage tracks the requested range, not the returned dates, so
// a window ending on a holiday still counts as covered.
func (c *PriceCache) SaveHistory(ctx context.Context, symbol string, from, to time.Time, points []models.PricePoint) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO closes (symbol, date, close, fetched_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, symbol, p.Date.Format(cacheDateFormat), p.Close, fetchedAt); err != nil {
			return err
		}
	}

	start, end := from, to
	var startStr, endStr string
	err = tx.QueryRowContext(ctx,
		`SELECT start_date, end_date FROM fetches WHERE symbol = ?`, symbol).Scan(&startStr, &endStr)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if err == nil {
		if prev, perr := time.Parse(cacheDateFormat, startStr); perr == nil && prev.Before(start) {
			start = prev
		}
		if prev, perr := time.Parse(cacheDateFormat, endStr); perr == nil && prev.After(end) {
			end = prev
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO fetches (symbol, start_date, end_date, fetched_at)
		VALUES (?, ?, ?, ?)`,
		symbol, start.Format(cacheDateFormat), end.Format(cacheDateFormat), fetchedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// Closes returns the cached closes for symbol between from and to,
// ordered by date.
func (c *PriceCache) Closes(ctx context.Context, symbol string, from, to time.Time) ([]models.PricePoint, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT date, close FROM closes
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		symbol, from.Format(cacheDateFormat), to.Format(cacheDateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var dateStr string
		var closePrice float64
		if err := rows.Scan(&dateStr, &closePrice); err != nil {
			return nil, err
		}
		date, err := time.Parse(cacheDateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		points = append(points, models.PricePoint{Date: date, Close: closePrice})
	}
	return points, rows.Err()
}

// CoverageFor returns the cached window for symbol, or a zero Coverage
// when nothing has been fetched for it yet.
func (c *PriceCache) CoverageFor(ctx context.Context, symbol string) (Coverage, error) {
	var startStr, endStr, fetchedStr string
	err := c.db.QueryRowContext(ctx,
		`SELECT start_date, end_date, fetched_at FROM fetches WHERE symbol = ?`, symbol).
		Scan(&startStr, &endStr, &fetchedStr)
	if err == sql.ErrNoRows {
		return Coverage{}, nil
	}
	if err != nil {
		return Coverage{}, err
	}

	var cov Coverage
	if cov.From, err = time.Parse(cacheDateFormat, startStr); err != nil {
		return Coverage{}, err
	}
	if cov.To, err = time.Parse(cacheDateFormat, endStr); err != nil {
		return Coverage{}, err
	}
	if cov.FetchedAt, err = time.Parse(time.RFC3339, fetchedStr); err != nil {
		return Coverage{}, err
	}
	return cov, nil
}

// Close closes the underlying database.
func (c *PriceCache) Close() error {
	return c.db.Close()
}
