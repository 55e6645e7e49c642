package gameservice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestService(t *testing.T, handler http.HandlerFunc) *HTTPService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewHTTPService(server.URL, DefaultRequestTimeout, testLogger())
	require.NoError(t, err)
	return svc
}

func TestCreateGame(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var opts GameOptions
		require.NoError(t, json.NewDecoder(r.Body).Decode(&opts))
		assert.Equal(t, 6, opts.DeckCount)
		assert.Equal(t, "standard", opts.CardSet)
		assert.Equal(t, 1, opts.MaxPlayers)

		_ = json.NewEncoder(w).Encode(map[string]string{"game_id": "g-123"})
	})

	gameID, err := svc.CreateGame(context.Background(), GameOptions{
		DeckCount: 6, CardSet: "standard", MaxPlayers: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "g-123", gameID)
}

func TestAddPlayer(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/games/g-123/players", r.URL.Path)

		var req struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Alice", req.Name)

		_ = json.NewEncoder(w).Encode(map[string]string{"player_id": "p-1"})
	})

	playerID, err := svc.AddPlayer(context.Background(), "g-123", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "p-1", playerID)
}

func TestShuffleDeck(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/games/g-123/shuffle", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]int{"remaining_cards": 312})
	})

	remaining, err := svc.ShuffleDeck(context.Background(), "g-123")
	require.NoError(t, err)
	assert.Equal(t, 312, remaining)
}

func TestStartGameAndActions(t *testing.T) {
	snap := Snapshot{
		GameID: "g-123",
		Status: StatusInProgress,
		Players: []PlayerState{
			{ID: "p-1", Name: "Alice", Cards: []string{"AS", "7D"}, Value: 18},
		},
		Dealer:         DealerState{Cards: []string{"KH"}, Value: 10},
		RemainingCards: 307,
	}

	var gotPath string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(snap)
	})
	ctx := context.Background()

	got, err := svc.StartGame(ctx, "g-123")
	require.NoError(t, err)
	assert.Equal(t, "/games/g-123/start", gotPath)
	assert.Equal(t, snap, got)

	_, err = svc.Hit(ctx, "g-123", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "/games/g-123/players/p-1/hit", gotPath)

	_, err = svc.Stand(ctx, "g-123", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "/games/g-123/players/p-1/stand", gotPath)

	got, err = svc.GameState(ctx, "g-123")
	require.NoError(t, err)
	assert.Equal(t, "/games/g-123", gotPath)
	assert.False(t, got.Finished())
}

func TestResults(t *testing.T) {
	results := Results{
		Players: []PlayerResult{
			{PlayerID: "p-1", Result: ResultBlackjack, HandValue: 21},
		},
		Dealer: DealerResult{HandValue: 19},
	}

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/games/g-123/results", r.URL.Path)
		_ = json.NewEncoder(w).Encode(results)
	})

	got, err := svc.Results(context.Background(), "g-123")
	require.NoError(t, err)
	assert.Equal(t, results, got)

	res, ok := got.Player("p-1")
	require.True(t, ok)
	assert.Equal(t, ResultBlackjack, res.Result)
}

func TestErrorResponses(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "game already started"})
	})

	_, err := svc.StartGame(context.Background(), "g-123")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "game already started")
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GameState(ctx, "g-123")
	assert.Error(t, err)
}

func TestSnapshotHelpers(t *testing.T) {
	snap := Snapshot{
		Status: StatusFinished,
		Players: []PlayerState{
			{ID: "p-1", Name: "Alice"},
			{ID: "p-2", Name: "Bob"},
		},
	}

	assert.True(t, snap.Finished())

	p, ok := snap.Player("p-2")
	require.True(t, ok)
	assert.Equal(t, "Bob", p.Name)

	_, ok = snap.Player("p-3")
	assert.False(t, ok)
}
