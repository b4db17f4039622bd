package shared

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrInsufficientCards = errors.New("not enough cards in deck")

// DeckSize is the number of distinct cards in a full deck.
const DeckSize = MaxRank * 4

// Deck represents the ordered pile cards are dealt from.
type Deck struct {
	Cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full, unshuffled 40-card deck, seed-major then rank-minor.
func NewDeck() *Deck {
	return &Deck{Cards: fullDeck()}
}

// NewDeckWithRand is like NewDeck but shuffles with the given source.
func NewDeckWithRand(rng *rand.Rand) *Deck {
	return &Deck{Cards: fullDeck(), rng: rng}
}

func fullDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, seed := range Seeds {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, Card{Rank: rank, Seed: seed})
		}
	}
	return cards
}

// Shuffle randomizes the order of cards in the deck.
func (d *Deck) Shuffle() {
	swap := func(i, j int) { d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(d.Cards), swap)
		return
	}
	rand.Shuffle(len(d.Cards), swap)
}

// Deal removes n cards from the end of the deck and hands them to the caller.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.Cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientCards, n, len(d.Cards))
	}
	cut := len(d.Cards) - n
	dealt := make([]Card, n)
	copy(dealt, d.Cards[cut:])
	d.Cards = d.Cards[:cut]
	return dealt, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// Reset restores the full unshuffled deck.
func (d *Deck) Reset() {
	d.Cards = fullDeck()
}
