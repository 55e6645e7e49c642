// Package tui renders the blackjack table with Bubble Tea. It is a thin
// view over the round orchestrator: every user action becomes an
// orchestrator call issued from a tea.Cmd, and the resulting state copy
// drives the next render.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack21/internal/cards"
	"github.com/lox/blackjack21/internal/gameservice"
	"github.com/lox/blackjack21/internal/round"
	"github.com/lox/blackjack21/internal/strategy"
)

// StateMsg carries a fresh round state into the model. The poller sends
// these via Program.Send; internal commands return them directly.
type StateMsg round.State

type errMsg struct{ err error }

// Model is the Bubble Tea model for the blackjack table
type Model struct {
	orch      *round.Orchestrator
	logger    *log.Logger
	showHints bool

	state   round.State
	lastErr string
	busy    bool // a command is in flight, ignore further input

	logViewport viewport.Model
	betInput    textinput.Model
	gameLog     []string

	styles *Styles
	width  int
	height int

	quitting bool

	// Test support
	testMode    bool
	capturedLog []string
}

// NewModel creates a TUI model bound to the orchestrator
func NewModel(orch *round.Orchestrator, logger *log.Logger, showHints bool) *Model {
	return NewModelWithOptions(orch, logger, showHints, false)
}

// NewModelWithOptions creates a TUI model, optionally in test mode where
// log entries are captured for assertions instead of rendered
func NewModelWithOptions(orch *round.Orchestrator, logger *log.Logger, showHints, testMode bool) *Model {
	vp := viewport.New(80, 10)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = betPlaceholder(orch.Limits())
	ti.CharLimit = 8
	ti.Width = 20
	ti.Prompt = "bet> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Focus()

	return &Model{
		orch:        orch,
		logger:      logger.WithPrefix("tui"),
		showHints:   showHints,
		state:       orch.State(),
		logViewport: vp,
		betInput:    ti,
		styles:      DefaultStyles(),
		testMode:    testMode,
	}
}

func betPlaceholder(limits round.Limits) string {
	return fmt.Sprintf("amount (%d-%d), Enter to deal", limits.MinBet, limits.MaxBet)
}

// IsTestMode returns whether the model captures log entries for tests
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// GetCapturedLog returns captured log entries in test mode, nil otherwise
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	return m.capturedLog
}

// AddLogEntry adds an entry to the table log
func (m *Model) AddLogEntry(entry string) {
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()

	case StateMsg:
		m.applyState(round.State(msg))

	case errMsg:
		m.busy = false
		m.lastErr = msg.err.Error()
		m.state = m.orch.State()
		m.AddLogEntry(m.styles.Error.Render("Error: " + msg.err.Error()))

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.quitting {
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
	}

	var cmd tea.Cmd
	if m.state.Phase == round.Betting && !m.busy {
		m.betInput, cmd = m.betInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return nil
	}

	if m.busy {
		return nil
	}

	// An error line doubles as a "start over" prompt in any phase
	if m.lastErr != "" && msg.String() == "enter" && m.state.Phase != round.Betting {
		return m.newRound()
	}

	switch m.state.Phase {
	case round.Betting:
		if msg.String() == "enter" {
			return m.submitBet()
		}

	case round.Playing:
		switch msg.String() {
		case "h":
			return m.playerAction("hit", m.orch.Hit)
		case "s":
			return m.playerAction("stand", m.orch.Stand)
		}

	case round.Finished:
		switch msg.String() {
		case "enter", "n":
			return m.newRound()
		}
	}
	return nil
}

func (m *Model) submitBet() tea.Cmd {
	input := strings.TrimSpace(m.betInput.Value())
	if input == "" {
		return nil
	}

	bet, err := strconv.Atoi(input)
	if err != nil {
		m.lastErr = fmt.Sprintf("invalid bet %q", input)
		return nil
	}

	m.betInput.SetValue("")
	m.lastErr = ""
	m.busy = true
	m.AddLogEntry(fmt.Sprintf("Betting %d...", bet))

	return func() tea.Msg {
		if err := m.orch.PlaceBetAndDeal(context.Background(), bet); err != nil {
			return errMsg{err}
		}
		return StateMsg(m.orch.State())
	}
}

func (m *Model) playerAction(name string, action func(context.Context) error) tea.Cmd {
	m.lastErr = ""
	m.busy = true
	m.AddLogEntry("You " + name)

	return func() tea.Msg {
		if err := action(context.Background()); err != nil {
			return errMsg{err}
		}
		return StateMsg(m.orch.State())
	}
}

func (m *Model) newRound() tea.Cmd {
	m.lastErr = ""
	return func() tea.Msg {
		if err := m.orch.ResetRound(); err != nil {
			return errMsg{err}
		}
		return StateMsg(m.orch.State())
	}
}

// applyState folds a state copy into the model and logs transitions
func (m *Model) applyState(state round.State) {
	m.busy = false
	prev := m.state
	m.state = state

	if prev.Phase != state.Phase {
		switch state.Phase {
		case round.Playing:
			m.AddLogEntry(fmt.Sprintf("Cards dealt, game %s", state.GameID))
		case round.Finished:
			if state.Settlement != nil {
				m.AddLogEntry(m.settlementLine(*state.Settlement))
			}
		case round.Betting:
			m.AddLogEntry("New round, place your bet")
			m.betInput.Focus()
		}
	}
}

func (m *Model) settlementLine(s round.Settlement) string {
	switch s.Outcome {
	case gameservice.ResultBlackjack:
		return fmt.Sprintf("Blackjack! You win %d", s.Winnings)
	case gameservice.ResultWin:
		return fmt.Sprintf("You win %d (you %d, dealer %d)", s.Winnings, s.PlayerValue, s.DealerValue)
	case gameservice.ResultPush:
		return fmt.Sprintf("Push, %d returned", s.Winnings)
	case gameservice.ResultBust:
		return fmt.Sprintf("Bust at %d, bet lost", s.PlayerValue)
	default:
		return fmt.Sprintf("Dealer wins (you %d, dealer %d)", s.PlayerValue, s.DealerValue)
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTablePane(),
		m.renderActionPane(),
	)
}

func (m *Model) renderTablePane() string {
	var content strings.Builder

	header := fmt.Sprintf(" Blackjack  Balance: %d  Phase: %s ", m.state.Balance, m.state.Phase)
	content.WriteString(m.styles.Header.Render(header))
	content.WriteString("\n\n")

	if len(m.state.Snapshot.Players) > 0 || len(m.state.Snapshot.Dealer.Cards) > 0 {
		content.WriteString(m.renderHands())
		content.WriteString("\n")
	}

	content.WriteString(m.logViewport.View())

	style := m.styles.TablePane
	if m.width > 0 {
		style = style.Width(m.width - 4)
	}
	return style.Render(content.String())
}

func (m *Model) renderHands() string {
	var b strings.Builder

	dealer := m.state.Snapshot.Dealer
	b.WriteString(m.styles.HandInfo.Render("Dealer: "))
	b.WriteString(m.formatCards(dealer.Cards))
	if dealer.Value > 0 {
		b.WriteString(fmt.Sprintf("  (%d)", dealer.Value))
	}
	b.WriteString("\n")

	if player, ok := m.state.Player(); ok {
		b.WriteString(m.styles.HandInfo.Render("You:    "))
		b.WriteString(m.formatCards(player.Cards))
		b.WriteString(fmt.Sprintf("  (%d)", player.Value))
		if player.Blackjack {
			b.WriteString("  " + m.styles.Success.Render("blackjack"))
		}
		if player.Busted {
			b.WriteString("  " + m.styles.Error.Render("bust"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderActionPane() string {
	var content strings.Builder

	switch m.state.Phase {
	case round.Betting:
		content.WriteString(m.styles.Actions.Render(
			fmt.Sprintf("Place your bet (min %d, max %d)", m.orch.Limits().MinBet, m.orch.MaxBet())))
		content.WriteString("\n")
		content.WriteString(m.betInput.View())
		content.WriteString("\n")

	case round.Creating:
		content.WriteString(m.styles.Info.Render("Setting up round..."))
		content.WriteString("\n")

	case round.Playing:
		content.WriteString(m.styles.Actions.Render("Actions: ") +
			m.styles.Success.Render("[h]it ") +
			m.styles.Warning.Render("[s]tand"))
		content.WriteString("\n")
		if hint := m.hint(); hint != "" {
			content.WriteString(m.styles.Info.Render("Hint: " + hint))
			content.WriteString("\n")
		}

	case round.Finished:
		if m.state.Settlement != nil {
			content.WriteString(m.styles.Success.Render(m.settlementLine(*m.state.Settlement)))
			content.WriteString("\n")
		}
		content.WriteString(m.styles.Actions.Render("Press Enter for a new round"))
		content.WriteString("\n")
	}

	if m.lastErr != "" {
		content.WriteString(m.styles.Error.Render("Error: " + m.lastErr))
		content.WriteString("\n")
		if m.state.Phase != round.Betting {
			content.WriteString(m.styles.Info.Render("Press Enter to start over"))
			content.WriteString("\n")
		}
	}

	content.WriteString(m.styles.Info.Render("Ctrl+C to quit"))

	style := m.styles.ActionPane
	if m.width > 0 {
		style = style.Width(m.width - 4)
	}
	return style.Render(content.String())
}

// hint returns basic-strategy advice for the current hand, if enabled and
// the dealer's up-card is visible
func (m *Model) hint() string {
	if !m.showHints {
		return ""
	}
	player, ok := m.state.Player()
	if !ok || len(m.state.Snapshot.Dealer.Cards) == 0 {
		return ""
	}

	hand, err := cards.ParseAll(player.Cards)
	if err != nil {
		return ""
	}
	upCard, err := cards.Parse(m.state.Snapshot.Dealer.Cards[0])
	if err != nil {
		return ""
	}

	return strategy.Suggest(hand, upCard).String()
}

// formatCards renders service card codes with suit colors, falling back
// to the raw code if one fails to parse
func (m *Model) formatCards(codes []string) string {
	if len(codes) == 0 {
		return m.styles.Info.Render("--")
	}

	formatted := make([]string, 0, len(codes))
	for _, code := range codes {
		card, err := cards.Parse(code)
		if err != nil {
			formatted = append(formatted, code)
			continue
		}
		if card.IsRed() {
			formatted = append(formatted, m.styles.RedCard.Render(card.String()))
		} else {
			formatted = append(formatted, m.styles.BlackCard.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func (m *Model) updateDimensions() {
	if m.height <= 0 || m.width <= 0 {
		return
	}

	// Action pane runs 6-8 lines with border and padding; the rest of the
	// terminal goes to the table pane and its log viewport.
	actionPaneHeight := 8
	logHeight := m.height - actionPaneHeight - 8
	if logHeight < 3 {
		logHeight = 3
	}

	m.logViewport.Width = m.width - 8
	m.logViewport.Height = logHeight
	m.betInput.Width = m.width - 12
}
