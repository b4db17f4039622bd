package store

import (
	"errors"
	"sort"
	"sync"

	"guesser-game/internal/game"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Store defines the interface for game storage. Each stored *game.Game
// guards its own state; the store only guards the index.
type Store interface {
	// Save adds a new game to the store
	Save(g *game.Game) error

	// Get retrieves a game by ID
	Get(id string) (*game.Game, error)

	// Delete removes a game from the store
	Delete(id string) error

	// All returns every stored game ordered by ID
	All() []*game.Game
}

// Memory is a Store backed by a map. Live games are never written to disk.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string]*game.Game)}
}

func (m *Memory) Save(g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.games[g.ID()]; exists {
		return ErrGameExists
	}
	m.games[g.ID()] = g
	return nil
}

func (m *Memory) Get(id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (m *Memory) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Memory) All() []*game.Game {
	m.mu.RLock()
	out := make([]*game.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
