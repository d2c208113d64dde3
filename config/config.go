package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete console configuration.
type Config struct {
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Session SessionConfig `json:"session" yaml:"session"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Chart   ChartConfig   `json:"chart" yaml:"chart"`
}

// BackendConfig describes the remote trading backend.
type BackendConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "10s", "1m"
}

// ParseTimeout converts the timeout string to a time.Duration.
func (b BackendConfig) ParseTimeout() (time.Duration, error) {
	if b.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(b.Timeout)
}

// SessionConfig locates the persisted session file.
type SessionConfig struct {
	Path string `json:"path" yaml:"path"`
}

// JournalConfig contains local audit journal parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	OrdersFile string `json:"orders_file,omitempty" yaml:"orders_file,omitempty"`
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
}

// ChartConfig contains chart display parameters.
type ChartConfig struct {
	DefaultLimit int   `json:"default_limit" yaml:"default_limit"`
	MAWindows    []int `json:"ma_windows,omitempty" yaml:"ma_windows,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content).
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

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
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

// ApplyEnv overlays environment variables onto the configuration. Values
// from the environment win over the file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TRADEDESK_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("TRADEDESK_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := os.Getenv("TRADEDESK_SESSION_FILE"); v != "" {
		c.Session.Path = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute URL: %q", c.Backend.BaseURL)
	}
	if _, err := c.Backend.ParseTimeout(); err != nil {
		return fmt.Errorf("backend.timeout: %w", err)
	}
	if c.Session.Path == "" {
		return fmt.Errorf("session.path is required")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite type")
		}
	case "csv":
		if c.Journal.OrdersFile == "" || c.Journal.RunsFile == "" {
			return fmt.Errorf("journal orders_file and runs_file required for csv type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none'")
	}
	if c.Chart.DefaultLimit <= 0 {
		return fmt.Errorf("chart.default_limit must be positive")
	}
	for _, w := range c.Chart.MAWindows {
		if w <= 0 {
			return fmt.Errorf("chart.ma_windows must be positive, got %d", w)
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: "10s",
		},
		Session: SessionConfig{
			Path: "./.tradedesk-session.yaml",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradedesk.sqlite",
		},
		Chart: ChartConfig{
			DefaultLimit: 60,
			MAWindows:    []int{5, 20},
		},
	}
}
