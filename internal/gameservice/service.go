// Package gameservice defines the contract with the remote card-game
// service. The service owns all game rules — deck composition, shuffling,
// dealing and win/loss determination — and this client only reads
// snapshots of its state.
package gameservice

import "context"

// Game status values reported by the service
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Player result values reported by the service in a results payload
const (
	ResultBlackjack = "blackjack"
	ResultWin       = "win"
	ResultPush      = "push"
	ResultLose      = "lose"
	ResultBust      = "bust"
)

// GameOptions configures a new remote game
type GameOptions struct {
	DeckCount  int    `json:"deck_count"`
	CardSet    string `json:"card_set"`
	MaxPlayers int    `json:"max_players"`
}

// PlayerState is one player's view within a snapshot
type PlayerState struct {
	ID        string   `json:"player_id"`
	Name      string   `json:"name"`
	Cards     []string `json:"cards"`
	Value     int      `json:"hand_value"`
	Busted    bool     `json:"busted"`
	Blackjack bool     `json:"blackjack"`
	Finished  bool     `json:"finished"`
}

// DealerState is the dealer's view within a snapshot. While the game is in
// progress the service only exposes the up-card.
type DealerState struct {
	Cards []string `json:"cards"`
	Value int      `json:"hand_value"`
}

// Snapshot is a point-in-time read of a remote game's state
type Snapshot struct {
	GameID         string        `json:"game_id"`
	Players        []PlayerState `json:"players"`
	Dealer         DealerState   `json:"dealer"`
	Status         string        `json:"status"`
	RemainingCards int           `json:"remaining_cards"`
}

// Finished returns true once the service reports the game settled
func (s Snapshot) Finished() bool {
	return s.Status == StatusFinished
}

// Player returns the player with the given id, if present
func (s Snapshot) Player(id string) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerState{}, false
}

// PlayerResult is one player's outcome in a results payload
type PlayerResult struct {
	PlayerID  string `json:"player_id"`
	Result    string `json:"result"`
	HandValue int    `json:"hand_value"`
}

// DealerResult is the dealer's final total in a results payload
type DealerResult struct {
	HandValue int `json:"hand_value"`
}

// Results is the service's settlement for a finished game
type Results struct {
	Players []PlayerResult `json:"players"`
	Dealer  DealerResult   `json:"dealer"`
}

// Player returns the result row for the given player id, if present
func (r Results) Player(id string) (PlayerResult, bool) {
	for _, p := range r.Players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return PlayerResult{}, false
}

// Service is the remote card-game collaborator. Implementations must be
// safe for use from a single goroutine at a time; the orchestrator never
// issues concurrent calls for one round.
type Service interface {
	// CreateGame provisions a new game and returns its identifier
	CreateGame(ctx context.Context, opts GameOptions) (string, error)

	// AddPlayer seats a named player and returns the assigned player id
	AddPlayer(ctx context.Context, gameID, name string) (string, error)

	// ShuffleDeck shuffles the game's shoe and returns the remaining card count
	ShuffleDeck(ctx context.Context, gameID string) (int, error)

	// StartGame performs the initial deal and returns the resulting snapshot
	StartGame(ctx context.Context, gameID string) (Snapshot, error)

	// Hit deals one more card to the player
	Hit(ctx context.Context, gameID, playerID string) (Snapshot, error)

	// Stand ends the player's turn; the dealer then plays out their hand
	Stand(ctx context.Context, gameID, playerID string) (Snapshot, error)

	// GameState reads the current snapshot without acting
	GameState(ctx context.Context, gameID string) (Snapshot, error)

	// Results reads the settlement for a finished game
	Results(ctx context.Context, gameID string) (Results, error)
}
