package server

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"guesser-game/internal/database"
	"guesser-game/internal/game"
	"guesser-game/internal/protocol"
	"guesser-game/internal/shared"
	"guesser-game/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrGameStarted   = errors.New("game already started")
	ErrPlayerMissing = errors.New("player_id is required")
)

const defaultPlayerName = "Player"

// ResultStore archives finished games. *database.Service implements it.
type ResultStore interface {
	Insert(result database.GameResult) error
	GetAll() ([]database.GameResult, error)
	GetByPlayer(playerName string) ([]database.GameResult, error)
}

// Hub exposes the game operations to the transports and pushes state to
// websocket clients after every game event.
type Hub struct {
	games      store.Store
	results    ResultStore
	logger     *zap.Logger
	clients    map[string]map[*Client]bool // game ID -> connected clients
	clientMu   sync.RWMutex
	unregister chan *Client
	now        func() time.Time
}

// NewHub creates a new Hub instance. results may be nil.
func NewHub(games store.Store, results ResultStore, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		games:      games,
		results:    results,
		logger:     logger,
		clients:    make(map[string]map[*Client]bool),
		unregister: make(chan *Client),
		now:        time.Now,
	}
}

// Run processes client disconnects until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.unregister:
			h.clientMu.Lock()
			h.removeClientLocked(client)
			h.clientMu.Unlock()
		}
	}
}

// addClient subscribes a client to its game's state updates.
func (h *Hub) addClient(client *Client) {
	h.clientMu.Lock()
	if h.clients[client.gameID] == nil {
		h.clients[client.gameID] = make(map[*Client]bool)
	}
	h.clients[client.gameID][client] = true
	h.clientMu.Unlock()
	h.logger.Info("client connected",
		zap.String("game_id", client.gameID),
		zap.String("player_id", client.playerID),
	)
}

// removeClientLocked drops a client and closes its send channel once.
// Assumes clientMu is held for writing.
func (h *Hub) removeClientLocked(client *Client) {
	set, ok := h.clients[client.gameID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.gameID)
	}
	close(client.send)
	h.logger.Info("client disconnected",
		zap.String("game_id", client.gameID),
		zap.String("player_id", client.playerID),
	)
}

// --- Game operations ---

// newGame creates and registers an empty game.
func (h *Hub) newGame() (*game.Game, error) {
	g := game.NewGame(uuid.NewString(), h.logger)
	g.SetEventSender(func(ev game.Event) { h.onGameEvent(g, ev) })
	if err := h.games.Save(g); err != nil {
		return nil, err
	}
	h.logger.Info("game created", zap.String("game_id", g.ID()))
	return g, nil
}

// CreateGame creates a game and seats its creator.
func (h *Hub) CreateGame(playerName string) (gameID, playerID string, state game.State, err error) {
	g, err := h.newGame()
	if err != nil {
		return "", "", game.State{}, err
	}
	playerID = uuid.NewString()
	if err := g.AddPlayer(playerID, normalizeName(playerName)); err != nil {
		return "", "", game.State{}, err
	}
	return g.ID(), playerID, g.Snapshot(playerID), nil
}

// JoinGame seats a new player. Joins are only accepted while the game waits
// for players.
func (h *Hub) JoinGame(gameID, playerName string) (playerID string, state game.State, err error) {
	g, err := h.games.Get(gameID)
	if err != nil {
		return "", game.State{}, err
	}
	if g.Phase() != game.Waiting {
		return "", game.State{}, ErrGameStarted
	}
	playerID = uuid.NewString()
	if err := g.AddPlayer(playerID, normalizeName(playerName)); err != nil {
		return "", game.State{}, err
	}
	return playerID, g.Snapshot(playerID), nil
}

// LeaveGame removes a player before the game has started.
func (h *Hub) LeaveGame(gameID, playerID string) error {
	g, err := h.games.Get(gameID)
	if err != nil {
		return err
	}
	if g.Phase() != game.Waiting {
		return ErrGameStarted
	}
	return g.RemovePlayer(playerID)
}

func (h *Hub) StartGame(gameID string) (game.State, error) {
	g, err := h.games.Get(gameID)
	if err != nil {
		return game.State{}, err
	}
	if err := g.Start(); err != nil {
		return game.State{}, err
	}
	return g.Snapshot(""), nil
}

func (h *Hub) Bid(gameID, playerID string, value int) (game.State, error) {
	g, err := h.games.Get(gameID)
	if err != nil {
		return game.State{}, err
	}
	if err := g.Bid(playerID, value); err != nil {
		return game.State{}, err
	}
	return g.Snapshot(playerID), nil
}

func (h *Hub) PlayCard(gameID, playerID string, rank int, seedName string) (game.State, error) {
	g, err := h.games.Get(gameID)
	if err != nil {
		return game.State{}, err
	}
	seed, err := shared.ParseSeed(seedName)
	if err != nil {
		return game.State{}, err
	}
	if err := g.PlayCard(playerID, rank, seed); err != nil {
		return game.State{}, err
	}
	return g.Snapshot(playerID), nil
}

func (h *Hub) ValidBids(gameID, playerID string) ([]int, error) {
	g, err := h.games.Get(gameID)
	if err != nil {
		return nil, err
	}
	return g.ValidBids(playerID), nil
}

func (h *Hub) Snapshot(gameID, playerID string) (game.State, error) {
	g, err := h.games.Get(gameID)
	if err != nil {
		return game.State{}, err
	}
	return g.Snapshot(playerID), nil
}

// ListWaitingGames returns the games that can still be joined.
func (h *Hub) ListWaitingGames() []protocol.GameInfo {
	list := []protocol.GameInfo{}
	for _, g := range h.games.All() {
		if g.Phase() != game.Waiting {
			continue
		}
		list = append(list, protocol.GameInfo{
			GameID:     g.ID(),
			Players:    g.PlayerCount(),
			MaxPlayers: game.MaxPlayers,
		})
	}
	return list
}

// DeleteGame removes a game and disconnects its websocket clients.
func (h *Hub) DeleteGame(gameID string) error {
	if err := h.games.Delete(gameID); err != nil {
		return err
	}
	h.logger.Info("game deleted", zap.String("game_id", gameID))

	msg, err := protocol.NewMessage(protocol.TypeGameDeleted, protocol.GameDeletedPayload{GameID: gameID})
	if err != nil {
		h.logger.Error("encode game_deleted", zap.Error(err))
		return nil
	}
	h.clientMu.Lock()
	for client := range h.clients[gameID] {
		select {
		case client.send <- msg:
		default:
		}
		h.removeClientLocked(client)
	}
	h.clientMu.Unlock()
	return nil
}

// --- Event handling ---

func (h *Hub) onGameEvent(g *game.Game, ev game.Event) {
	h.broadcastState(g)
	if ev.Type == game.EventGameOver {
		h.archive(g)
	}
}

// broadcastState sends each client of g a snapshot personalised for it.
func (h *Hub) broadcastState(g *game.Game) {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()

	for client := range h.clients[g.ID()] {
		msg, err := protocol.NewMessage(protocol.TypeGameState, g.Snapshot(client.playerID))
		if err != nil {
			h.logger.Error("encode game state", zap.String("game_id", g.ID()), zap.Error(err))
			return
		}
		select {
		case client.send <- msg:
		default:
			h.logger.Warn("client send buffer full, dropping client",
				zap.String("game_id", g.ID()),
				zap.String("player_id", client.playerID),
			)
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// archive stores the final standings of a finished game.
func (h *Hub) archive(g *game.Game) {
	if h.results == nil {
		return
	}
	s := g.Snapshot("")
	result := database.GameResult{
		ID:           s.GameID,
		CreatedAt:    h.now().UTC().Format(time.RFC3339),
		RoundsPlayed: s.RoundsPlayed,
		Players:      make([]database.ResultPlayer, 0, len(s.Players)),
	}
	for _, p := range s.Players {
		if s.Winner != nil && p.PlayerID == *s.Winner {
			result.WinnerID = p.PlayerID
			result.WinnerName = p.Name
		}
		result.Players = append(result.Players, database.ResultPlayer{
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			Lives:      p.Lives,
			Eliminated: p.IsEliminated,
		})
	}
	if err := h.results.Insert(result); err != nil {
		h.logger.Error("failed to archive game", zap.String("game_id", s.GameID), zap.Error(err))
	}
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultPlayerName
	}
	return name
}
