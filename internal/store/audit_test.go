package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-folio/internal/models"
)

// readAuditRows returns the data rows of the audit CSV, header excluded.
func readAuditRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	return records[1:]
}

func newTestAuditLog(t *testing.T) *AuditLog {
	t.Helper()
	log, err := NewAuditLog(filepath.Join(t.TempDir(), "audit.csv"), zerolog.Nop())
	require.NoError(t, err)
	return log
}

func TestNewAuditLogWritesHeader(t *testing.T) {
	log := newTestAuditLog(t)

	f, err := os.Open(log.path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, auditHeader, records[0])
}

func TestNewAuditLogKeepsExistingEntries(t *testing.T) {
	log := newTestAuditLog(t)
	_, err := log.Append(models.AuditEntry{ShareName: "RELIANCE", Info: "Added 10 shares"})
	require.NoError(t, err)

	// Reopening must not rewrite the header or lose rows.
	reopened, err := NewAuditLog(log.path, zerolog.Nop())
	require.NoError(t, err)

	entry, err := reopened.Append(models.AuditEntry{ShareName: "INFY", Info: "Added 5 shares"})
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Serial)
}

func TestAppendAssignsSerialsFromOne(t *testing.T) {
	log := newTestAuditLog(t)

	for i := 1; i <= 5; i++ {
		entry, err := log.Append(models.AuditEntry{ShareName: "TCS", Info: "Added 1 shares"})
		require.NoError(t, err)
		assert.Equal(t, i, entry.Serial)
	}

	rows := readAuditRows(t, log.path)
	require.Len(t, rows, 5)
	for i, row := range rows {
		assert.Equal(t, 8, len(row))
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}[i], row[0])
	}
}

func TestAppendFormatsPriceAndTimestamp(t *testing.T) {
	log := newTestAuditLog(t)

	at := time.Date(2024, 3, 15, 9, 30, 5, 0, time.Local)
	_, err := log.Append(models.AuditEntry{
		Timestamp: at,
		ShareName: "RELIANCE",
		Symbol:    "RELIANCE.NS",
		Market:    models.NSE,
		Price:     2875.5,
		HasPrice:  true,
		Info:      "consider buying, trend is upward",
	})
	require.NoError(t, err)

	rows := readAuditRows(t, log.path)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "2024-03-15", row[1])
	assert.Equal(t, "09:30:05", row[2])
	assert.Equal(t, "RELIANCE", row[3])
	assert.Equal(t, "RELIANCE.NS", row[4])
	assert.Equal(t, "NSE", row[5])
	assert.Equal(t, "2875.50", row[6])
	assert.Equal(t, "consider buying, trend is upward", row[7])
}

func TestAppendMarksMissingPriceNA(t *testing.T) {
	log := newTestAuditLog(t)

	_, err := log.Append(models.AuditEntry{
		ShareName: "GHOST",
		Symbol:    "GHOST.NS",
		Market:    models.NSE,
		Info:      "feed error [GHOST.NS] history: no price data available",
	})
	require.NoError(t, err)

	rows := readAuditRows(t, log.path)
	require.Len(t, rows, 1)
	assert.Equal(t, "N/A", rows[0][6])
}
