package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/rebalance"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for rebal.
type Config struct {
	BaseCurrency    string        `toml:"base_currency"`    // currency holdings are priced in
	DisplayCurrency string        `toml:"display_currency"` // defaults to the base currency
	Rate            string        `toml:"rate"`             // display units per base unit
	Holdings        HoldingsFile  `toml:"holdings"`
	HistoryFile     string        `toml:"history_file"`
	Logging         LoggingConfig `toml:"logging"`
}

// HoldingsFile locates the holdings array.
type HoldingsFile struct {
	File string `toml:"file"`
	Path string `toml:"path"` // JSONPath of the array in the file, empty for a bare array
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"` // debug, info, warn, error
	Pretty bool   `toml:"pretty"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		BaseCurrency: "EUR",
		Rate:         "1",
		Holdings: HoldingsFile{
			File: "holdings.json",
		},
		HistoryFile: "history.jsonl",
		Logging: LoggingConfig{
			Level:  "warn",
			Pretty: true,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies REBAL_* environment variables to config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("REBAL_BASE_CURRENCY"); v != "" {
		config.BaseCurrency = v
	}
	if v := os.Getenv("REBAL_DISPLAY_CURRENCY"); v != "" {
		config.DisplayCurrency = v
	}
	if v := os.Getenv("REBAL_RATE"); v != "" {
		config.Rate = v
	}
	if v := os.Getenv("REBAL_HOLDINGS_FILE"); v != "" {
		config.Holdings.File = v
	}
	if v := os.Getenv("REBAL_HOLDINGS_PATH"); v != "" {
		config.Holdings.Path = v
	}
	if v := os.Getenv("REBAL_HISTORY_FILE"); v != "" {
		config.HistoryFile = v
	}
	if v := os.Getenv("REBAL_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("REBAL_LOG_PRETTY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Logging.Pretty = b
		}
	}
}

// normalize upper-cases and checks the currencies.
func (c *Config) normalize() error {
	c.BaseCurrency = strings.ToUpper(strings.TrimSpace(c.BaseCurrency))
	c.DisplayCurrency = strings.ToUpper(strings.TrimSpace(c.DisplayCurrency))
	if err := rebalance.ValidateCurrency(c.BaseCurrency); err != nil {
		return fmt.Errorf("base_currency: %w", err)
	}
	if c.DisplayCurrency == "" {
		c.DisplayCurrency = c.BaseCurrency
	}
	if err := rebalance.ValidateCurrency(c.DisplayCurrency); err != nil {
		return fmt.Errorf("display_currency: %w", err)
	}
	if _, err := c.ExchangeRate(); err != nil {
		return err
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = zerolog.WarnLevel.String()
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// ExchangeRate parses Rate. It is 1 when the display currency is the base
// currency or when no rate is set.
func (c *Config) ExchangeRate() (decimal.Decimal, error) {
	if c.DisplayCurrency == c.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}
	r, err := rebalance.ParseDecimal(c.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate: %w", err)
	}
	if !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate: must be positive, got %s", r)
	}
	return r, nil
}
