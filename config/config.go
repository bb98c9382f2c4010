package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/devanshm/stockdash/market"
)

// Config represents the complete dashboard configuration.
type Config struct {
	Account   AccountConfig   `json:"account" yaml:"account"`
	Quote     QuoteConfig     `json:"quote" yaml:"quote"`
	News      NewsConfig      `json:"news" yaml:"news"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Auth      AuthConfig      `json:"auth" yaml:"auth"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// AccountConfig sets up the paper-trading wallet.
type AccountConfig struct {
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
	Currency        string  `json:"currency" yaml:"currency"`
}

// QuoteConfig points at the chart API.
type QuoteConfig struct {
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "30s"
}

// ParseTimeout converts the timeout string to a time.Duration.
func (q QuoteConfig) ParseTimeout() (time.Duration, error) {
	if q.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(q.Timeout)
}

// NewsConfig points at the headlines API. The key itself comes from the
// environment variable named by APIKeyEnv, never from the file.
type NewsConfig struct {
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKeyEnv string `json:"api_key_env" yaml:"api_key_env"`
	PageSize  int    `json:"page_size" yaml:"page_size"`
}

// DashboardConfig holds display defaults.
type DashboardConfig struct {
	DefaultRange       string   `json:"default_range" yaml:"default_range"`
	RefreshInterval    string   `json:"refresh_interval" yaml:"refresh_interval"` // e.g. "5s"
	ComparisonOptions  []string `json:"comparison_options" yaml:"comparison_options"`
	ComparisonDefaults []string `json:"comparison_defaults" yaml:"comparison_defaults"`
}

// ParseRefreshInterval converts the refresh interval string to a duration.
func (d DashboardConfig) ParseRefreshInterval() (time.Duration, error) {
	if d.RefreshInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(d.RefreshInterval)
}

// JournalConfig controls trade journaling.
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile   string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	BalancesFile string `json:"balances_file,omitempty" yaml:"balances_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ServerConfig holds the HTTP listener address. Metrics are served on the
// same listener at /metrics.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// AuthConfig holds the dashboard user table. Empty means no login required.
type AuthConfig struct {
	Users map[string]string `json:"users,omitempty" yaml:"users,omitempty"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // json or console
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.StartingBalance <= 0 {
		return fmt.Errorf("account.starting_balance must be positive")
	}
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if _, err := c.Quote.ParseTimeout(); err != nil {
		return fmt.Errorf("quote.timeout: %w", err)
	}
	if c.News.PageSize < 0 {
		return fmt.Errorf("news.page_size must not be negative")
	}
	if c.Dashboard.DefaultRange != "" {
		if _, err := market.ParseRange(c.Dashboard.DefaultRange); err != nil {
			return fmt.Errorf("dashboard.default_range: %w", err)
		}
	}
	if _, err := c.Dashboard.ParseRefreshInterval(); err != nil {
		return fmt.Errorf("dashboard.refresh_interval: %w", err)
	}
	switch c.Journal.Type {
	case "none", "":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.BalancesFile == "" {
			return fmt.Errorf("journal trades_file and balances_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults: a one-lakh paper
// wallet, 1D chart, 5 second refresh, journaling off.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			StartingBalance: 100000,
			Currency:        "INR",
		},
		Quote: QuoteConfig{
			Timeout: "30s",
		},
		News: NewsConfig{
			APIKeyEnv: "NEWS_API_KEY",
			PageSize:  5,
		},
		Dashboard: DashboardConfig{
			DefaultRange:       "1D",
			RefreshInterval:    "5s",
			ComparisonOptions:  []string{"RELIANCE.NS", "TCS.NS", "INFY.NS", "AAPL", "TSLA", "GOOG", "NIFTYBEES.NS"},
			ComparisonDefaults: []string{"RELIANCE.NS", "TCS.NS"},
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
