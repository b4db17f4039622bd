package database

import (
	"database/sql"
	"errors"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := New("sqlite3", ":memory:", nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndQuery(t *testing.T) {
	s := newTestService(t)

	r := GameResult{
		ID:           "g1",
		CreatedAt:    "2026-10-16T10:00:00Z",
		WinnerID:     "a",
		WinnerName:   "Ana",
		RoundsPlayed: 7,
		Players: []ResultPlayer{
			{PlayerID: "a", Name: "Ana", Lives: 2},
			{PlayerID: "b", Name: "Bruno", Lives: 0, Eliminated: true},
		},
	}
	if err := s.Insert(r); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert(r); err == nil {
		t.Fatalf("duplicate insert should fail")
	}

	got, err := s.GetByID("g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.WinnerName != "Ana" || got.RoundsPlayed != 7 || len(got.Players) != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if !got.Players[1].Eliminated || got.Players[1].Name != "Bruno" {
		t.Fatalf("players not in order: %+v", got.Players)
	}

	all, err := s.GetAll()
	if err != nil || len(all) != 1 {
		t.Fatalf("get all: %v, %d rows", err, len(all))
	}

	byPlayer, err := s.GetByPlayer("Bruno")
	if err != nil || len(byPlayer) != 1 {
		t.Fatalf("get by player: %v", err)
	}
	if _, err := s.GetByPlayer("Nobody"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if _, err := s.GetByID("missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestBindNumbersPlaceholdersForPostgres(t *testing.T) {
	s := &Service{driver: "pgx"}
	if got := s.bind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Fatalf("bind: %q", got)
	}
	s.driver = "sqlite3"
	if got := s.bind("a = ?"); got != "a = ?" {
		t.Fatalf("bind: %q", got)
	}
}
