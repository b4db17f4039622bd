package shared

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRank = errors.New("card rank must be between 1 and 10")
	ErrInvalidSeed = errors.New("unknown seed")
)

const (
	MinRank = 1
	MaxRank = 10
)

// Seed represents the suit of a card. The numeric value is also the
// tie-break precedence between two cards of the same rank.
type Seed int

const (
	Bastoni Seed = iota + 1
	Spade
	Coppe
	Denari
)

// Seeds lists every seed in precedence order.
var Seeds = []Seed{Bastoni, Spade, Coppe, Denari}

var seedNames = map[Seed]string{
	Bastoni: "BASTONI",
	Spade:   "SPADE",
	Coppe:   "COPPE",
	Denari:  "DENARI",
}

func (s Seed) String() string {
	if name, ok := seedNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Seed(%d)", int(s))
}

func (s Seed) Valid() bool {
	_, ok := seedNames[s]
	return ok
}

// ParseSeed accepts a seed name in any letter case.
func ParseSeed(name string) (Seed, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for seed, n := range seedNames {
		if n == upper {
			return seed, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, name)
}

func (s Seed) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeed, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Seed) UnmarshalText(text []byte) error {
	seed, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = seed
	return nil
}

// Card is an immutable value. Cards are ordered by rank first, then by seed.
type Card struct {
	Rank int  `json:"number"`
	Seed Seed `json:"seed"`
}

// NewCard validates rank and seed.
func NewCard(rank int, seed Seed) (Card, error) {
	if rank < MinRank || rank > MaxRank {
		return Card{}, fmt.Errorf("%w: got %d", ErrInvalidRank, rank)
	}
	if !seed.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSeed, int(seed))
	}
	return Card{Rank: rank, Seed: seed}, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%d of %s", c.Rank, c.Seed)
}

// Compare returns 1 if a ranks above b, -1 if below, 0 if they are the same card.
// There is no trump: the seed only breaks rank ties.
func Compare(a, b Card) int {
	switch {
	case a.Rank > b.Rank:
		return 1
	case a.Rank < b.Rank:
		return -1
	case a.Seed > b.Seed:
		return 1
	case a.Seed < b.Seed:
		return -1
	}
	return 0
}

// Beats reports whether c is strictly stronger than other.
func (c Card) Beats(other Card) bool {
	return Compare(c, other) > 0
}
