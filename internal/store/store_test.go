package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"guesser-game/internal/game"
)

func TestMemoryLifecycle(t *testing.T) {
	m := NewMemory()
	g := game.NewGame("b", nil)

	if err := m.Save(g); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.Save(g); !errors.Is(err, ErrGameExists) {
		t.Fatalf("expected ErrGameExists, got %v", err)
	}
	got, err := m.Get("b")
	if err != nil || got != g {
		t.Fatalf("get: %v", err)
	}
	_ = m.Save(game.NewGame("a", nil))
	all := m.All()
	if len(all) != 2 || all[0].ID() != "a" {
		t.Fatalf("all: %d games", len(all))
	}

	if err := m.Delete("b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get("b"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if err := m.Delete("b"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("g%d", i)
			g := game.NewGame(id, nil)
			if err := m.Save(g); err != nil {
				t.Errorf("save %s: %v", id, err)
				return
			}
			_ = g.AddPlayer("p", "P")
			_ = m.All()
		}(i)
	}
	wg.Wait()
	if len(m.All()) != 50 {
		t.Fatalf("expected 50 games, got %d", len(m.All()))
	}
}
