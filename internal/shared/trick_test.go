package shared

import "testing"

func TestDetermineWinner(t *testing.T) {
	tr := NewTrick()
	if _, ok := tr.DetermineWinner(); ok {
		t.Fatalf("empty trick has no winner")
	}

	tr.AddCard("a", Card{7, Spade})
	tr.AddCard("b", Card{7, Denari})
	tr.AddCard("c", Card{3, Coppe})

	w, ok := tr.DetermineWinner()
	if !ok {
		t.Fatalf("expected a winner")
	}
	if w.PlayerID != "b" {
		t.Fatalf("expected the 7 of DENARI to win, got %s with %v", w.PlayerID, w.Card)
	}
}

func TestDetermineWinnerFirstMaximalWins(t *testing.T) {
	tr := NewTrick()
	tr.AddCard("a", Card{9, Coppe})
	tr.AddCard("b", Card{9, Coppe})
	w, _ := tr.DetermineWinner()
	if w.PlayerID != "a" {
		t.Fatalf("tie should go to the first card, got %s", w.PlayerID)
	}
}
