package client

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete client configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Player PlayerSettings `hcl:"player,block"`
	Table  TableSettings  `hcl:"table,block"`
	UI     UISettings     `hcl:"ui,block"`
}

// ServerSettings contains card-game service connection settings
type ServerSettings struct {
	URL            string `hcl:"url"`
	RequestTimeout int    `hcl:"request_timeout,optional"` // seconds
}

// PlayerSettings contains player-specific settings
type PlayerSettings struct {
	Name            string `hcl:"name"`
	StartingBalance int    `hcl:"starting_balance,optional"`
}

// TableSettings contains betting limits and remote game options
type TableSettings struct {
	MinBet     int    `hcl:"min_bet,optional"`
	MaxBet     int    `hcl:"max_bet,optional"`
	DeckCount  int    `hcl:"deck_count,optional"`
	CardSet    string `hcl:"card_set,optional"`
	MaxPlayers int    `hcl:"max_players,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel     string `hcl:"log_level,optional"`
	LogFile      string `hcl:"log_file,optional"`
	ShowHints    bool   `hcl:"show_hints,optional"`
	PollInterval int    `hcl:"poll_interval,optional"` // seconds
}

// DefaultConfig returns default client configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			URL:            "http://localhost:8080",
			RequestTimeout: 10,
		},
		Player: PlayerSettings{
			Name:            "",
			StartingBalance: 1000,
		},
		Table: TableSettings{
			MinBet:     5,
			MaxBet:     500,
			DeckCount:  6,
			CardSet:    "standard",
			MaxPlayers: 1,
		},
		UI: UISettings{
			LogLevel:     "warn",
			LogFile:      "blackjack21.log",
			ShowHints:    true,
			PollInterval: 2,
		},
	}
}

// LoadConfig loads client configuration from an HCL file, falling back to
// defaults when the file does not exist
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()

	if config.Server.URL == "" {
		config.Server.URL = defaults.Server.URL
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = defaults.Server.RequestTimeout
	}

	if config.Player.StartingBalance == 0 {
		config.Player.StartingBalance = defaults.Player.StartingBalance
	}

	if config.Table.MinBet == 0 {
		config.Table.MinBet = defaults.Table.MinBet
	}
	if config.Table.MaxBet == 0 {
		config.Table.MaxBet = defaults.Table.MaxBet
	}
	if config.Table.DeckCount == 0 {
		config.Table.DeckCount = defaults.Table.DeckCount
	}
	if config.Table.CardSet == "" {
		config.Table.CardSet = defaults.Table.CardSet
	}
	if config.Table.MaxPlayers == 0 {
		config.Table.MaxPlayers = defaults.Table.MaxPlayers
	}

	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}
	if config.UI.PollInterval == 0 {
		config.UI.PollInterval = defaults.UI.PollInterval
	}

	return &config, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server url is required")
	}
	if c.Player.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if c.Player.StartingBalance < 0 {
		return fmt.Errorf("starting balance must be non-negative, got %d", c.Player.StartingBalance)
	}
	if c.Table.MinBet <= 0 {
		return fmt.Errorf("min bet must be positive, got %d", c.Table.MinBet)
	}
	if c.Table.MaxBet < c.Table.MinBet {
		return fmt.Errorf("max bet %d below min bet %d", c.Table.MaxBet, c.Table.MinBet)
	}
	if c.Table.DeckCount <= 0 {
		return fmt.Errorf("deck count must be positive, got %d", c.Table.DeckCount)
	}
	switch c.UI.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.UI.LogLevel)
	}
	return nil
}
