// Package client wires the orchestrator, service client, poller and TUI
// into a running interactive session.
package client

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack21/internal/gameservice"
	"github.com/lox/blackjack21/internal/round"
	"github.com/lox/blackjack21/internal/tui"
	"github.com/lox/blackjack21/internal/wallet"
)

// Run starts an interactive session with the given configuration. It
// returns when the user quits or a component fails.
func Run(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := NewLogger(logFile, cfg.UI.LogLevel)
	logger.Info("Starting blackjack client",
		"server", cfg.Server.URL,
		"player", cfg.Player.Name,
		"balance", cfg.Player.StartingBalance)

	svc, err := gameservice.NewHTTPService(cfg.Server.URL,
		time.Duration(cfg.Server.RequestTimeout)*time.Second, logger)
	if err != nil {
		return err
	}

	w, err := wallet.New(cfg.Player.StartingBalance)
	if err != nil {
		return err
	}

	orch, err := round.New(svc, w, round.Config{
		PlayerName: cfg.Player.Name,
		Limits: round.Limits{
			MinBet: cfg.Table.MinBet,
			MaxBet: cfg.Table.MaxBet,
		},
		Game: gameservice.GameOptions{
			DeckCount:  cfg.Table.DeckCount,
			CardSet:    cfg.Table.CardSet,
			MaxPlayers: cfg.Table.MaxPlayers,
		},
	}, logger)
	if err != nil {
		return err
	}

	model := tui.NewModel(orch, logger, cfg.UI.ShowHints)
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := round.NewPoller(orch, quartz.NewReal(),
		time.Duration(cfg.UI.PollInterval)*time.Second,
		func(state round.State) {
			program.Send(tui.StateMsg(state))
		}, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})

	return g.Wait()
}
