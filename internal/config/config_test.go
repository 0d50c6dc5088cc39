package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stock-folio/internal/errors"
)

func TestLoadMissingConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(dir, "portfolio.csv"), cfg.Storage.PortfolioPath())
	assert.Equal(t, filepath.Join(dir, "audit.csv"), cfg.Storage.AuditPath())
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Feed.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, 7, cfg.Feed.QuoteLookback)
	assert.Equal(t, 90, cfg.Feed.TrendLookback)
	assert.True(t, cfg.Feed.CacheEnabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
feed:
  timeout: 5s
  trend_lookback_days: 120
  cache_enabled: false
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, 120, cfg.Feed.TrendLookback)
	assert.False(t, cfg.Feed.CacheEnabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 7, cfg.Feed.QuoteLookback)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative timeout", "feed:\n  timeout: -5s\n"},
		{"zero trend lookback", "feed:\n  trend_lookback_days: 0\n"},
		{"empty base url", "feed:\n  base_url: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.yaml), 0644))

			_, err := Load(dir)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrConfigInvalid))
		})
	}
}
