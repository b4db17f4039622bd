package shared

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewCardRejectsInvalidRank(t *testing.T) {
	for _, rank := range []int{0, -1, 11} {
		if _, err := NewCard(rank, Spade); !errors.Is(err, ErrInvalidRank) {
			t.Fatalf("rank %d: expected ErrInvalidRank, got %v", rank, err)
		}
	}
	if _, err := NewCard(5, Seed(9)); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("expected ErrInvalidSeed, got %v", err)
	}
	c, err := NewCard(10, Denari)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.String() != "10 of DENARI" {
		t.Fatalf("unexpected string %q", c.String())
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		name string
		a, b Card
		want int
	}{
		{"higher rank wins regardless of seed", Card{8, Bastoni}, Card{7, Denari}, 1},
		{"lower rank loses", Card{3, Denari}, Card{4, Bastoni}, -1},
		{"seed breaks rank tie", Card{7, Denari}, Card{7, Spade}, 1},
		{"bastoni is the weakest seed", Card{1, Bastoni}, Card{1, Spade}, -1},
		{"same card", Card{5, Coppe}, Card{5, Coppe}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compare(tc.a, tc.b); got != tc.want {
				t.Fatalf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestParseSeed(t *testing.T) {
	s, err := ParseSeed("spade")
	if err != nil || s != Spade {
		t.Fatalf("ParseSeed(spade) = %v, %v", s, err)
	}
	if _, err := ParseSeed("Kope"); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("expected ErrInvalidSeed, got %v", err)
	}
}

func TestCardJSONShape(t *testing.T) {
	data, err := json.Marshal(Card{Rank: 7, Seed: Coppe})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"number":7,"seed":"COPPE"}` {
		t.Fatalf("unexpected json %s", data)
	}

	var c Card
	if err := json.Unmarshal([]byte(`{"number":2,"seed":"denari"}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != (Card{Rank: 2, Seed: Denari}) {
		t.Fatalf("unexpected card %v", c)
	}
}
