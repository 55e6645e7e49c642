package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack21/internal/gameservice"
	"github.com/lox/blackjack21/internal/round"
	"github.com/lox/blackjack21/internal/wallet"
)

// stubService satisfies gameservice.Service with canned responses; the
// TUI tests never reach the network layer
type stubService struct {
	snapshot gameservice.Snapshot
	results  gameservice.Results
}

func (s *stubService) CreateGame(ctx context.Context, opts gameservice.GameOptions) (string, error) {
	return "g1", nil
}

func (s *stubService) AddPlayer(ctx context.Context, gameID, name string) (string, error) {
	return "p1", nil
}

func (s *stubService) ShuffleDeck(ctx context.Context, gameID string) (int, error) {
	return 312, nil
}

func (s *stubService) StartGame(ctx context.Context, gameID string) (gameservice.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubService) Hit(ctx context.Context, gameID, playerID string) (gameservice.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubService) Stand(ctx context.Context, gameID, playerID string) (gameservice.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubService) GameState(ctx context.Context, gameID string) (gameservice.Snapshot, error) {
	return s.snapshot, nil
}

func (s *stubService) Results(ctx context.Context, gameID string) (gameservice.Results, error) {
	return s.results, nil
}

func newTestModel(t *testing.T, testMode bool) *Model {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	svc := &stubService{
		snapshot: gameservice.Snapshot{
			GameID: "g1",
			Status: gameservice.StatusInProgress,
			Players: []gameservice.PlayerState{
				{ID: "p1", Name: "Tester", Cards: []string{"AS", "7D"}, Value: 18},
			},
			Dealer: gameservice.DealerState{Cards: []string{"KH"}, Value: 10},
		},
	}

	w, err := wallet.New(100)
	require.NoError(t, err)

	orch, err := round.New(svc, w, round.Config{
		PlayerName: "Tester",
		Limits:     round.Limits{MinBet: 5, MaxBet: 100},
	}, logger)
	require.NoError(t, err)

	return NewModelWithOptions(orch, logger, true, testMode)
}

func TestTestModeCapturesLogEntries(t *testing.T) {
	m := newTestModel(t, true)

	assert.True(t, m.IsTestMode())
	assert.Empty(t, m.GetCapturedLog())

	m.AddLogEntry("Betting 10...")
	m.AddLogEntry("You hit")

	captured := m.GetCapturedLog()
	require.Len(t, captured, 2)
	assert.Equal(t, "Betting 10...", captured[0])
	assert.Equal(t, "You hit", captured[1])
}

func TestProductionModeDoesNotCapture(t *testing.T) {
	m := newTestModel(t, false)

	assert.False(t, m.IsTestMode())
	m.AddLogEntry("Some entry")
	assert.Nil(t, m.GetCapturedLog())
}

func TestPhaseTransitionsAreLogged(t *testing.T) {
	m := newTestModel(t, true)

	playing := m.orch.State()
	playing.Phase = round.Playing
	playing.GameID = "g1"
	_, _ = m.Update(StateMsg(playing))

	finished := playing
	finished.Phase = round.Finished
	finished.Settlement = &round.Settlement{
		Outcome: gameservice.ResultWin, Bet: 10, Winnings: 20, PlayerValue: 18, DealerValue: 17,
	}
	_, _ = m.Update(StateMsg(finished))

	captured := m.GetCapturedLog()
	require.Len(t, captured, 2)
	assert.Contains(t, captured[0], "Cards dealt")
	assert.Contains(t, captured[1], "You win 20")
}

func TestSettlementLines(t *testing.T) {
	m := newTestModel(t, true)

	tests := []struct {
		outcome string
		want    string
	}{
		{gameservice.ResultBlackjack, "Blackjack! You win 25"},
		{gameservice.ResultWin, "You win 20"},
		{gameservice.ResultPush, "Push, 10 returned"},
		{gameservice.ResultBust, "Bust at 22, bet lost"},
		{gameservice.ResultLose, "Dealer wins"},
	}

	for _, tt := range tests {
		s := round.Settlement{Outcome: tt.outcome, Bet: 10, PlayerValue: 22, DealerValue: 17}
		switch tt.outcome {
		case gameservice.ResultBlackjack:
			s.Winnings = 25
		case gameservice.ResultWin:
			s.Winnings = 20
		case gameservice.ResultPush:
			s.Winnings = 10
		}
		assert.Contains(t, m.settlementLine(s), tt.want)
	}
}

func TestInvalidBetInputRejectedLocally(t *testing.T) {
	m := newTestModel(t, true)

	m.betInput.SetValue("abc")
	cmd := m.submitBet()
	assert.Nil(t, cmd)
	assert.Contains(t, m.lastErr, "invalid bet")
}

func TestViewRendersBalanceAndPhase(t *testing.T) {
	m := newTestModel(t, false)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Balance: 100")
	assert.Contains(t, view, "betting")
}
