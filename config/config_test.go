package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tradedesk.yaml")

	cfg := Default()
	cfg.Backend.BaseURL = "https://trade.example.com"
	cfg.Backend.APIKey = "k-123"
	cfg.Chart.MAWindows = []int{5, 20, 60}
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadJSONFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tradedesk.json")

	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.Backend.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.Backend.BaseURL = "trade.example.com" }},
		{"bad timeout", func(c *Config) { c.Backend.Timeout = "ten seconds" }},
		{"missing session path", func(c *Config) { c.Session.Path = "" }},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"zero chart limit", func(c *Config) { c.Chart.DefaultLimit = 0 }},
		{"negative ma window", func(c *Config) { c.Chart.MAWindows = []int{5, -1} }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRADEDESK_BASE_URL", "https://env.example.com")
	t.Setenv("TRADEDESK_API_KEY", "env-key")
	t.Setenv("TRADEDESK_SESSION_FILE", "/tmp/env-session.yaml")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "https://env.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "env-key", cfg.Backend.APIKey)
	assert.Equal(t, "/tmp/env-session.yaml", cfg.Session.Path)
}
