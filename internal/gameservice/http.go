package gameservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultRequestTimeout bounds each individual call to the service
const DefaultRequestTimeout = 10 * time.Second

// HTTPService talks JSON over HTTP to the remote card-game service
type HTTPService struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTPService creates a service client for the given base URL
func NewHTTPService(baseURL string, timeout time.Duration, logger *log.Logger) (*HTTPService, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid service URL: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return &HTTPService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.WithPrefix("gameservice"),
	}, nil
}

type createGameResponse struct {
	GameID string `json:"game_id"`
}

// CreateGame provisions a new game and returns its identifier
func (s *HTTPService) CreateGame(ctx context.Context, opts GameOptions) (string, error) {
	var resp createGameResponse
	if err := s.do(ctx, http.MethodPost, "/games", opts, &resp); err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}
	s.logger.Debug("Created game", "game_id", resp.GameID)
	return resp.GameID, nil
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

type addPlayerResponse struct {
	PlayerID string `json:"player_id"`
}

// AddPlayer seats a named player and returns the assigned player id
func (s *HTTPService) AddPlayer(ctx context.Context, gameID, name string) (string, error) {
	var resp addPlayerResponse
	path := fmt.Sprintf("/games/%s/players", url.PathEscape(gameID))
	if err := s.do(ctx, http.MethodPost, path, addPlayerRequest{Name: name}, &resp); err != nil {
		return "", fmt.Errorf("add player: %w", err)
	}
	s.logger.Debug("Added player", "game_id", gameID, "player_id", resp.PlayerID)
	return resp.PlayerID, nil
}

type shuffleResponse struct {
	RemainingCards int `json:"remaining_cards"`
}

// ShuffleDeck shuffles the game's shoe and returns the remaining card count
func (s *HTTPService) ShuffleDeck(ctx context.Context, gameID string) (int, error) {
	var resp shuffleResponse
	path := fmt.Sprintf("/games/%s/shuffle", url.PathEscape(gameID))
	if err := s.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("shuffle deck: %w", err)
	}
	return resp.RemainingCards, nil
}

// StartGame performs the initial deal and returns the resulting snapshot
func (s *HTTPService) StartGame(ctx context.Context, gameID string) (Snapshot, error) {
	var snap Snapshot
	path := fmt.Sprintf("/games/%s/start", url.PathEscape(gameID))
	if err := s.do(ctx, http.MethodPost, path, nil, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("start game: %w", err)
	}
	return snap, nil
}

// Hit deals one more card to the player
func (s *HTTPService) Hit(ctx context.Context, gameID, playerID string) (Snapshot, error) {
	return s.playerAction(ctx, gameID, playerID, "hit")
}

// Stand ends the player's turn; the dealer then plays out their hand
func (s *HTTPService) Stand(ctx context.Context, gameID, playerID string) (Snapshot, error) {
	return s.playerAction(ctx, gameID, playerID, "stand")
}

func (s *HTTPService) playerAction(ctx context.Context, gameID, playerID, action string) (Snapshot, error) {
	var snap Snapshot
	path := fmt.Sprintf("/games/%s/players/%s/%s",
		url.PathEscape(gameID), url.PathEscape(playerID), action)
	if err := s.do(ctx, http.MethodPost, path, nil, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", action, err)
	}
	return snap, nil
}

// GameState reads the current snapshot without acting
func (s *HTTPService) GameState(ctx context.Context, gameID string) (Snapshot, error) {
	var snap Snapshot
	path := fmt.Sprintf("/games/%s", url.PathEscape(gameID))
	if err := s.do(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("game state: %w", err)
	}
	return snap, nil
}

// Results reads the settlement for a finished game
func (s *HTTPService) Results(ctx context.Context, gameID string) (Results, error) {
	var results Results
	path := fmt.Sprintf("/games/%s/results", url.PathEscape(gameID))
	if err := s.do(ctx, http.MethodGet, path, nil, &results); err != nil {
		return Results{}, fmt.Errorf("results: %w", err)
	}
	return results, nil
}

// StatusError reports a non-2xx response from the service
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service returned %d", e.StatusCode)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *HTTPService) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
