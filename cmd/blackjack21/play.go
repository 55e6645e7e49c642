package main

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack21/internal/client"
)

type PlayCmd struct {
	Config  string `short:"c" default:"blackjack21.hcl" help:"Path to HCL configuration file"`
	Server  string `short:"s" help:"Card-game service URL (overrides config)"`
	Player  string `short:"p" help:"Player name (overrides config)"`
	Balance int    `help:"Starting balance (overrides config)"`
	// NoHints is the negative flag so hints stay on by default
	NoHints  bool   `help:"Disable basic-strategy hints"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	LogFile  string `help:"Log file path (overrides config)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := client.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Apply command line overrides
	if c.Server != "" {
		cfg.Server.URL = strings.TrimSpace(c.Server)
	}
	if c.Player != "" {
		cfg.Player.Name = strings.TrimSpace(c.Player)
	}
	if c.Balance > 0 {
		cfg.Player.StartingBalance = c.Balance
	}
	if c.NoHints {
		cfg.UI.ShowHints = false
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}

	// Prompt for a player name if the config didn't provide one
	if cfg.Player.Name == "" {
		fmt.Print("Enter your player name: ")
		var input string
		_, _ = fmt.Scanln(&input)
		cfg.Player.Name = strings.TrimSpace(input)
		if cfg.Player.Name == "" {
			return fmt.Errorf("player name is required")
		}
	}

	return client.Run(cfg)
}
