package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeBid   = errors.New("bid cannot be negative")
	ErrCardNotInHand = errors.New("card not in hand")
)

// StartingLives is the number of lives every player joins with.
const StartingLives = 5

// Player represents a participant. Hand, Bid and TricksWon are round-scoped;
// Lives and Eliminated carry across rounds.
type Player struct {
	ID         string
	Name       string
	Lives      int
	Hand       []Card
	Bid        *int // nil until the player bids this round
	TricksWon  int
	Eliminated bool
}

// NewPlayer creates a new player with the given ID and name.
func NewPlayer(id string, name string) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Lives: StartingLives,
		Hand:  []Card{},
	}
}

// AddCards appends dealt cards to the hand.
func (p *Player) AddCards(cards []Card) {
	p.Hand = append(p.Hand, cards...)
}

// HasCard reports whether the hand holds the given card.
func (p *Player) HasCard(rank int, seed Seed) bool {
	for _, c := range p.Hand {
		if c.Rank == rank && c.Seed == seed {
			return true
		}
	}
	return false
}

// PlayCardByValue removes and returns the first card matching rank and seed.
// The hand is untouched when the card is absent.
func (p *Player) PlayCardByValue(rank int, seed Seed) (Card, error) {
	for i, c := range p.Hand {
		if c.Rank == rank && c.Seed == seed {
			p.Hand = append(p.Hand[:i:i], p.Hand[i+1:]...)
			return c, nil
		}
	}
	return Card{}, fmt.Errorf("%w: %d of %s", ErrCardNotInHand, rank, seed)
}

// MakeBid records the player's prediction for the round. Upper bounds are
// the game's business.
func (p *Player) MakeBid(bid int) error {
	if bid < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeBid, bid)
	}
	p.Bid = &bid
	return nil
}

// HasBid reports whether a bid was placed this round.
func (p *Player) HasBid() bool {
	return p.Bid != nil
}

func (p *Player) WinTrick() {
	p.TricksWon++
}

// LoseLife takes one life and eliminates the player at zero.
func (p *Player) LoseLife() {
	if p.Eliminated {
		return
	}
	p.Lives--
	if p.Lives <= 0 {
		p.Lives = 0
		p.Eliminated = true
	}
}

// ResetForNewRound clears round-scoped state. Lives are kept.
func (p *Player) ResetForNewRound() {
	p.Hand = []Card{}
	p.Bid = nil
	p.TricksWon = 0
}
