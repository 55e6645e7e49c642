package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack21/internal/gameservice"
)

// StateCmd prints a raw game snapshot, useful when debugging the remote
// service without a TUI in the way
type StateCmd struct {
	Server string `short:"s" default:"http://localhost:8080" help:"Card-game service URL"`
	GameID string `arg:"" help:"Game identifier"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *StateCmd) Run() error {
	svc, err := debugService(c.Server, c.Debug)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := svc.GameState(ctx, c.GameID)
	if err != nil {
		return err
	}
	return printJSON(snap)
}

// ResultsCmd prints raw settlement results for a finished game
type ResultsCmd struct {
	Server string `short:"s" default:"http://localhost:8080" help:"Card-game service URL"`
	GameID string `arg:"" help:"Game identifier"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *ResultsCmd) Run() error {
	svc, err := debugService(c.Server, c.Debug)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := svc.Results(ctx, c.GameID)
	if err != nil {
		return err
	}
	return printJSON(results)
}

func debugService(serverURL string, debug bool) (*gameservice.HTTPService, error) {
	logger := log.New(os.Stderr)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return gameservice.NewHTTPService(serverURL, gameservice.DefaultRequestTimeout, logger)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
