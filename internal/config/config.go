// Package config provides configuration management for the portfolio tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "stock-folio/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StorageConfig holds durable storage configuration.
type StorageConfig struct {
	DataDir       string `mapstructure:"data_dir"`
	PortfolioFile string `mapstructure:"portfolio_file"`
	AuditFile     string `mapstructure:"audit_file"`
	CacheFile     string `mapstructure:"cache_file"`
}

// PortfolioPath returns the full path of the holdings CSV.
func (s StorageConfig) PortfolioPath() string {
	return filepath.Join(s.DataDir, s.PortfolioFile)
}

// AuditPath returns the full path of the audit log CSV.
func (s StorageConfig) AuditPath() string {
	return filepath.Join(s.DataDir, s.AuditFile)
}

// CachePath returns the full path of the price cache database.
func (s StorageConfig) CachePath() string {
	return filepath.Join(s.DataDir, s.CacheFile)
}

// FeedConfig holds market data feed configuration.
type FeedConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	QuoteLookback int           `mapstructure:"quote_lookback_days"`
	TrendLookback int           `mapstructure:"trend_lookback_days"`
	CacheEnabled  bool          `mapstructure:"cache_enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/folio"
	}
	return filepath.Join(home, ".config", "folio")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
// A missing config file yields the defaults, not an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("%w: feed.base_url must not be empty", apperrors.ErrConfigInvalid)
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("%w: feed.timeout must be positive", apperrors.ErrConfigInvalid)
	}
	if c.Feed.QuoteLookback < 1 {
		return fmt.Errorf("%w: feed.quote_lookback_days must be at least 1", apperrors.ErrConfigInvalid)
	}
	if c.Feed.TrendLookback < 1 {
		return fmt.Errorf("%w: feed.trend_lookback_days must be at least 1", apperrors.ErrConfigInvalid)
	}
	return nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("storage.data_dir", configDir)
	v.SetDefault("storage.portfolio_file", "portfolio.csv")
	v.SetDefault("storage.audit_file", "audit.csv")
	v.SetDefault("storage.cache_file", "prices.db")

	v.SetDefault("feed.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("feed.timeout", 15*time.Second)
	v.SetDefault("feed.quote_lookback_days", 7)
	v.SetDefault("feed.trend_lookback_days", 90)
	v.SetDefault("feed.cache_enabled", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.time_format", "15:04:05")
}
