package store

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	apperrors "stock-folio/internal/errors"
	"stock-folio/internal/models"
)

// auditHeader is the fixed 8-column header of the audit log.
var auditHeader = []string{
	"Sl.No", "Date", "Time", "Share Name", "Ticker", "Market", "Price at log", "Additional Info",
}

const (
	auditDateFormat = "2006-01-02"
	auditTimeFormat = "15:04:05"

	// priceUnavailable marks entries logged without a price.
	priceUnavailable = "N/A"
)

// AuditLog is an append-only CSV of portfolio events with gapless,
// monotonically increasing serial numbers starting at 1. The serial is
// the current row count of the file, header included, so the log
// assumes a single writer per file; a process-local mutex guards the
// count-then-append window within this process.
//
// Entries are never mutated or deleted once written, and append
// failures propagate to the caller.
type AuditLog struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewAuditLog opens the audit log at path, creating it with the fixed
// header if it does not exist yet.
func NewAuditLog(path string, logger zerolog.Logger) (*AuditLog, error) {
	log := &AuditLog{
		path:   path,
		logger: logger.With().Str("component", "audit_log").Logger(),
	}
	if err := log.initIfAbsent(); err != nil {
		return nil, err
	}
	return log, nil
}

func (l *AuditLog) initIfAbsent() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return apperrors.NewStoreError(l.path, "stat", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return apperrors.NewStoreError(l.path, "init", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return apperrors.NewStoreError(l.path, "init", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(auditHeader); err != nil {
		f.Close()
		return apperrors.NewStoreError(l.path, "init", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return apperrors.NewStoreError(l.path, "init", err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewStoreError(l.path, "init", err)
	}

	l.logger.Debug().Str("path", l.path).Msg("Audit log created")
	return nil
}

// Append assigns the next serial to entry, stamps it with the current
// local time if unset, and writes one row. The entry as written is
// returned.
func (l *AuditLog) Append(entry models.AuditEntry) (models.AuditEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count, err := l.rowCount()
	if err != nil {
		return entry, err
	}
	// The header row counts, which puts the first entry at serial 1.
	entry.Serial = count

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	price := priceUnavailable
	if entry.HasPrice {
		price = strconv.FormatFloat(entry.Price, 'f', 2, 64)
	}

	record := []string{
		strconv.Itoa(entry.Serial),
		entry.Timestamp.Format(auditDateFormat),
		entry.Timestamp.Format(auditTimeFormat),
		entry.ShareName,
		entry.Symbol,
		string(entry.Market),
		price,
		entry.Info,
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return entry, apperrors.NewStoreError(l.path, "append", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		f.Close()
		return entry, apperrors.NewStoreError(l.path, "append", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return entry, apperrors.NewStoreError(l.path, "append", err)
	}
	if err := f.Close(); err != nil {
		return entry, apperrors.NewStoreError(l.path, "append", err)
	}

	l.logger.Debug().
		Int("serial", entry.Serial).
		Str("symbol", entry.Symbol).
		Str("info", entry.Info).
		Msg("Audit entry appended")
	return entry, nil
}

// rowCount returns the number of CSV records in the log, header
// included.
func (l *AuditLog) rowCount() (int, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return 0, apperrors.NewStoreError(l.path, "count", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	count := 0
	for {
		if _, err := r.Read(); err == io.EOF {
			break
		} else if err != nil {
			return 0, apperrors.NewStoreError(l.path, "count", err)
		}
		count++
	}
	return count, nil
}
