package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack21.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, 1000, cfg.Player.StartingBalance)
	assert.Equal(t, 5, cfg.Table.MinBet)
	assert.Equal(t, 500, cfg.Table.MaxBet)
	assert.Equal(t, 6, cfg.Table.DeckCount)
	assert.Equal(t, "warn", cfg.UI.LogLevel)
}

func TestLoadConfigParsesAndFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  url = "http://cards.example.com"
}

player {
  name             = "Alice"
  starting_balance = 250
}

table {
  min_bet = 10
}

ui {
  log_level = "debug"
  show_hints = true
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://cards.example.com", cfg.Server.URL)
	assert.Equal(t, "Alice", cfg.Player.Name)
	assert.Equal(t, 250, cfg.Player.StartingBalance)
	assert.Equal(t, 10, cfg.Table.MinBet)
	assert.True(t, cfg.UI.ShowHints)

	// Unset values come from defaults
	assert.Equal(t, 10, cfg.Server.RequestTimeout)
	assert.Equal(t, 500, cfg.Table.MaxBet)
	assert.Equal(t, 6, cfg.Table.DeckCount)
	assert.Equal(t, "blackjack21.log", cfg.UI.LogFile)
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `server { url = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Player.Name = "Alice"
		return cfg
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing name", func(c *Config) { c.Player.Name = "" }},
		{"missing url", func(c *Config) { c.Server.URL = "" }},
		{"negative balance", func(c *Config) { c.Player.StartingBalance = -1 }},
		{"zero min bet", func(c *Config) { c.Table.MinBet = 0 }},
		{"max below min", func(c *Config) { c.Table.MaxBet = 1 }},
		{"zero decks", func(c *Config) { c.Table.DeckCount = 0 }},
		{"bad log level", func(c *Config) { c.UI.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
