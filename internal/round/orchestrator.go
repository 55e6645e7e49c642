// Package round owns the client-side state of a single blackjack round:
// the betting/creating/playing/finished phase machine, the player's bet
// and balance movements, and the sequencing of remote service calls. All
// game rules live on the remote service; this package only reconciles its
// snapshots into local state.
package round

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack21/internal/gameservice"
	"github.com/lox/blackjack21/internal/wallet"
)

var (
	// ErrInvalidBet is returned when a bet is outside the table limits
	ErrInvalidBet = errors.New("bet outside table limits")

	// ErrRoundInProgress is returned when an operation requires the betting
	// phase but a round is already underway
	ErrRoundInProgress = errors.New("round already in progress")

	// ErrNotPlaying is returned for hit/stand outside the playing phase
	ErrNotPlaying = errors.New("no hand in play")

	// ErrHandOver is returned for hit/stand after the player's hand is done
	ErrHandOver = errors.New("hand already finished")
)

// Limits are the table's betting bounds
type Limits struct {
	MinBet int
	MaxBet int
}

// Config configures an orchestrator
type Config struct {
	PlayerName string
	Limits     Limits
	Game       gameservice.GameOptions
}

// Settlement is the reconciled outcome of a finished round
type Settlement struct {
	Outcome     string // one of the gameservice result constants
	Bet         int
	Winnings    int // amount credited back, stake included
	PlayerValue int
	DealerValue int
}

// State is a copy of the orchestrator's current state, safe to hand to
// the UI layer
type State struct {
	Phase      Phase
	Balance    int
	Bet        int
	GameID     string
	PlayerID   string
	Snapshot   gameservice.Snapshot
	Settlement *Settlement
}

// Player returns the local player's view within the snapshot, if dealt
func (s State) Player() (gameservice.PlayerState, bool) {
	return s.Snapshot.Player(s.PlayerID)
}

// Orchestrator drives one round at a time against the remote service.
// Methods are safe to call from the UI and the poller concurrently; calls
// belonging to a round that has since been reset are discarded.
type Orchestrator struct {
	svc    gameservice.Service
	wallet *wallet.Wallet
	cfg    Config
	logger *log.Logger

	mu       sync.Mutex
	phase    Phase
	bet      int
	debited  bool
	settled  bool
	gameID   string
	playerID string
	snapshot gameservice.Snapshot
	result   *Settlement
}

// New creates an orchestrator in the betting phase
func New(svc gameservice.Service, w *wallet.Wallet, cfg Config, logger *log.Logger) (*Orchestrator, error) {
	if cfg.Limits.MinBet <= 0 {
		return nil, fmt.Errorf("min bet must be positive, got %d", cfg.Limits.MinBet)
	}
	if cfg.Limits.MaxBet < cfg.Limits.MinBet {
		return nil, fmt.Errorf("max bet %d below min bet %d", cfg.Limits.MaxBet, cfg.Limits.MinBet)
	}
	if cfg.PlayerName == "" {
		return nil, errors.New("player name is required")
	}

	return &Orchestrator{
		svc:    svc,
		wallet: w,
		cfg:    cfg,
		logger: logger.WithPrefix("round"),
		phase:  Betting,
	}, nil
}

// State returns a copy of the current round state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	state := State{
		Phase:    o.phase,
		Balance:  o.wallet.Balance(),
		Bet:      o.bet,
		GameID:   o.gameID,
		PlayerID: o.playerID,
		Snapshot: o.snapshot,
	}
	if o.result != nil {
		settlement := *o.result
		state.Settlement = &settlement
	}
	return state
}

// Limits returns the table's betting bounds
func (o *Orchestrator) Limits() Limits {
	return o.cfg.Limits
}

// MaxBet returns the largest bet currently placeable: the table maximum
// capped by the balance
func (o *Orchestrator) MaxBet() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if balance := o.wallet.Balance(); balance < o.cfg.Limits.MaxBet {
		return balance
	}
	return o.cfg.Limits.MaxBet
}

type setupStep struct {
	name string
	run  func(context.Context) error
}

// PlaceBetAndDeal debits the bet and runs the round setup sequence:
// create game, add player, shuffle, initial deal. The steps run strictly
// in order; each one observes the identifiers captured by the previous
// step. If any step fails the debit is refunded and the phase returns to
// betting, so a failed setup never leaves money on the table.
func (o *Orchestrator) PlaceBetAndDeal(ctx context.Context, bet int) error {
	o.mu.Lock()
	if o.phase != Betting {
		o.mu.Unlock()
		return ErrRoundInProgress
	}
	if bet < o.cfg.Limits.MinBet || bet > o.cfg.Limits.MaxBet {
		o.mu.Unlock()
		return fmt.Errorf("%w: bet %d, limits %d-%d",
			ErrInvalidBet, bet, o.cfg.Limits.MinBet, o.cfg.Limits.MaxBet)
	}
	if err := o.wallet.Debit(bet); err != nil {
		o.mu.Unlock()
		return err
	}
	o.phase = Creating
	o.bet = bet
	o.debited = true
	o.mu.Unlock()

	o.logger.Info("Placed bet", "bet", bet, "balance", o.wallet.Balance())

	steps := []setupStep{
		{"create game", o.createGame},
		{"add player", o.addPlayer},
		{"shuffle deck", o.shuffleDeck},
		{"start game", o.startGame},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			o.rollback()
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	o.mu.Lock()
	o.phase = Playing
	snap := o.snapshot
	gameID := o.gameID
	o.mu.Unlock()

	o.logger.Info("Round started", "game_id", gameID, "phase", Playing)

	// The initial deal can settle the round outright, e.g. a dealt
	// blackjack against a dealer ace check.
	if snap.Finished() {
		return o.apply(ctx, gameID, snap)
	}
	return nil
}

func (o *Orchestrator) createGame(ctx context.Context) error {
	gameID, err := o.svc.CreateGame(ctx, o.cfg.Game)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.gameID = gameID
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) addPlayer(ctx context.Context) error {
	o.mu.Lock()
	gameID := o.gameID
	o.mu.Unlock()

	playerID, err := o.svc.AddPlayer(ctx, gameID, o.cfg.PlayerName)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.playerID = playerID
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) shuffleDeck(ctx context.Context) error {
	o.mu.Lock()
	gameID := o.gameID
	o.mu.Unlock()

	remaining, err := o.svc.ShuffleDeck(ctx, gameID)
	if err != nil {
		return err
	}
	o.logger.Debug("Deck shuffled", "game_id", gameID, "remaining", remaining)
	return nil
}

func (o *Orchestrator) startGame(ctx context.Context) error {
	o.mu.Lock()
	gameID := o.gameID
	o.mu.Unlock()

	snap, err := o.svc.StartGame(ctx, gameID)
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.snapshot = snap
	o.mu.Unlock()
	return nil
}

// rollback refunds the debit, at most once, and returns to betting
func (o *Orchestrator) rollback() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.debited {
		_ = o.wallet.Credit(o.bet)
		o.debited = false
	}
	o.logger.Warn("Round setup failed, bet refunded",
		"bet", o.bet, "balance", o.wallet.Balance())

	o.gameID = ""
	o.playerID = ""
	o.bet = 0
	o.snapshot = gameservice.Snapshot{}
	o.phase = Betting
}

// Hit requests one more card. Rejected unless a hand is in play and the
// player's hand is still live.
func (o *Orchestrator) Hit(ctx context.Context) error {
	gameID, playerID, err := o.playableHand()
	if err != nil {
		return err
	}

	snap, err := o.svc.Hit(ctx, gameID, playerID)
	if err != nil {
		return fmt.Errorf("hit: %w", err)
	}
	return o.apply(ctx, gameID, snap)
}

// Stand ends the player's turn and lets the dealer play out. Rejected
// unless a hand is in play and the player's hand is still live.
func (o *Orchestrator) Stand(ctx context.Context) error {
	gameID, playerID, err := o.playableHand()
	if err != nil {
		return err
	}

	snap, err := o.svc.Stand(ctx, gameID, playerID)
	if err != nil {
		return fmt.Errorf("stand: %w", err)
	}
	return o.apply(ctx, gameID, snap)
}

func (o *Orchestrator) playableHand() (gameID, playerID string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase != Playing {
		return "", "", ErrNotPlaying
	}
	if p, ok := o.snapshot.Player(o.playerID); ok && (p.Busted || p.Finished) {
		return "", "", ErrHandOver
	}
	return o.gameID, o.playerID, nil
}

// Refresh re-reads the remote snapshot. It is a no-op outside the playing
// phase, and a refresh racing a reset is discarded.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	if o.phase != Playing {
		o.mu.Unlock()
		return nil
	}
	gameID := o.gameID
	o.mu.Unlock()

	snap, err := o.svc.GameState(ctx, gameID)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return o.apply(ctx, gameID, snap)
}

// apply folds a snapshot into local state. Snapshots for a game that is
// no longer the active round are discarded, which is what makes reset a
// safe cancellation point for in-flight calls. The transition into
// finished gates the settlement fetch so it fires at most once per round.
func (o *Orchestrator) apply(ctx context.Context, gameID string, snap gameservice.Snapshot) error {
	o.mu.Lock()
	if o.gameID != gameID {
		o.mu.Unlock()
		o.logger.Debug("Discarding snapshot for abandoned round", "game_id", gameID)
		return nil
	}
	o.snapshot = snap

	finished := snap.Finished() && o.phase == Playing
	if finished {
		o.phase = Finished
	}
	o.mu.Unlock()

	if !finished {
		return nil
	}

	o.logger.Info("Round finished", "game_id", gameID)

	results, err := o.svc.Results(ctx, gameID)
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}
	o.settle(gameID, results)
	return nil
}

// settle credits the payout, at most once per round
func (o *Orchestrator) settle(gameID string, results gameservice.Results) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.gameID != gameID || o.settled {
		return
	}
	o.settled = true

	outcome := gameservice.ResultLose
	playerValue := 0
	if res, ok := results.Player(o.playerID); ok {
		outcome = res.Result
		playerValue = res.HandValue
	}

	winnings := Payout(outcome, o.bet)
	if winnings > 0 {
		_ = o.wallet.Credit(winnings)
	}

	o.result = &Settlement{
		Outcome:     outcome,
		Bet:         o.bet,
		Winnings:    winnings,
		PlayerValue: playerValue,
		DealerValue: results.Dealer.HandValue,
	}

	o.logger.Info("Round settled",
		"outcome", outcome,
		"bet", o.bet,
		"winnings", winnings,
		"balance", o.wallet.Balance())
}

// ResetRound detaches the finished or failed round and returns to
// betting. Any response still in flight for the old game id will no
// longer match and gets discarded on arrival.
func (o *Orchestrator) ResetRound() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase == Creating {
		return ErrRoundInProgress
	}

	o.gameID = ""
	o.playerID = ""
	o.bet = 0
	o.debited = false
	o.settled = false
	o.result = nil
	o.snapshot = gameservice.Snapshot{}
	o.phase = Betting
	return nil
}
