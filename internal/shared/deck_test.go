package shared

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNewDeckHasFortyDistinctCards(t *testing.T) {
	d := NewDeck()
	if d.Remaining() != DeckSize {
		t.Fatalf("deck size: got %d", d.Remaining())
	}
	seen := map[Card]bool{}
	for _, c := range d.Cards {
		if seen[c] {
			t.Fatalf("duplicate card: %v", c)
		}
		seen[c] = true
	}
	if d.Cards[0] != (Card{1, Bastoni}) || d.Cards[9] != (Card{10, Bastoni}) || d.Cards[10] != (Card{1, Spade}) {
		t.Fatalf("deck is not seed-major, rank-minor: %v", d.Cards[:11])
	}
}

func TestDealRemovesFromDeck(t *testing.T) {
	d := NewDeck()
	hand, err := d.Deal(3)
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	if len(hand) != 3 || d.Remaining() != DeckSize-3 {
		t.Fatalf("got hand %d, remaining %d", len(hand), d.Remaining())
	}
	for _, c := range hand {
		for _, left := range d.Cards {
			if c == left {
				t.Fatalf("dealt card %v still in deck", c)
			}
		}
	}
}

func TestDealInsufficientCards(t *testing.T) {
	d := NewDeck()
	if _, err := d.Deal(38); err != nil {
		t.Fatalf("deal: %v", err)
	}
	if _, err := d.Deal(3); !errors.Is(err, ErrInsufficientCards) {
		t.Fatalf("expected ErrInsufficientCards, got %v", err)
	}
	if d.Remaining() != 2 {
		t.Fatalf("failed deal changed the deck: %d left", d.Remaining())
	}
}

func TestShuffleAndReset(t *testing.T) {
	d := NewDeckWithRand(rand.New(rand.NewPCG(1, 2)))
	d.Shuffle()
	if d.Remaining() != DeckSize {
		t.Fatalf("shuffle changed size: %d", d.Remaining())
	}
	if _, err := d.Deal(25); err != nil {
		t.Fatalf("deal: %v", err)
	}
	d.Reset()
	fresh := NewDeck()
	if d.Remaining() != DeckSize {
		t.Fatalf("reset size: %d", d.Remaining())
	}
	for i := range fresh.Cards {
		if d.Cards[i] != fresh.Cards[i] {
			t.Fatalf("reset deck not in unshuffled order at %d", i)
		}
	}
}
