package game

import (
	"encoding/json"

	"guesser-game/internal/shared"
)

// PlayerState is the public view of one player. The hand itself is only
// filled in for the player the snapshot was requested by.
type PlayerState struct {
	PlayerID     string        `json:"player_id"`
	Name         string        `json:"name"`
	Lives        int           `json:"lives"`
	Guess        *int          `json:"guess"`
	TurnsWon     int           `json:"turns_won"`
	IsEliminated bool          `json:"is_eliminated"`
	Hand         []shared.Card `json:"-"`
	HandSize     int           `json:"-"`
	HandVisible  bool          `json:"-"`
}

// MarshalJSON emits either "hand" or "hand_size", never both.
func (p PlayerState) MarshalJSON() ([]byte, error) {
	type plain PlayerState
	if p.HandVisible {
		hand := p.Hand
		if hand == nil {
			hand = []shared.Card{}
		}
		return json.Marshal(struct {
			plain
			Hand []shared.Card `json:"hand"`
		}{plain(p), hand})
	}
	return json.Marshal(struct {
		plain
		HandSize int `json:"hand_size"`
	}{plain(p), p.HandSize})
}

// State is the read model served to the UI.
type State struct {
	GameID                  string              `json:"game_id"`
	Phase                   Phase               `json:"phase"`
	CurrentPhaseIndex       int                 `json:"current_phase_index"`
	CardsInCurrentPhase     int                 `json:"cards_in_current_phase"`
	CurrentTurn             int                 `json:"current_turn"`
	PlayedCards             []shared.PlayedCard `json:"played_cards"`
	TurnResults             []string            `json:"turn_results"`
	Winner                  *string             `json:"winner"`
	CurrentGuessingPlayerID *string             `json:"current_guessing_player_id"`
	ValidGuesses            []int               `json:"valid_guesses"`
	CurrentPlayerID         *string             `json:"current_player_id"`
	Players                 []PlayerState       `json:"players"`

	RoundsPlayed int `json:"-"`
}

// Snapshot projects the game for requestingID, which may be empty for an
// anonymous view. It has no side effects.
func (g *Game) Snapshot(requestingID string) State {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := State{
		GameID:              g.id,
		Phase:               g.phase,
		CurrentPhaseIndex:   g.roundIndex,
		CardsInCurrentPhase: g.cardsThisRound(),
		CurrentTurn:         g.turnIndex,
		PlayedCards:         g.trick.Snapshot(),
		TurnResults:         append([]string{}, g.trickResults...),
		ValidGuesses:        []int{},
		Players:             make([]PlayerState, 0, len(g.players)),
		RoundsPlayed:        g.roundsPlayed,
	}
	if g.winnerID != "" {
		s.Winner = strPtr(g.winnerID)
	}
	if id, ok := g.currentBidderID(); ok {
		s.CurrentGuessingPlayerID = strPtr(id)
		if requestingID == id {
			s.ValidGuesses = g.validBids(requestingID)
		}
	}
	if id, ok := g.currentPlayerID(); ok {
		s.CurrentPlayerID = strPtr(id)
	}

	for _, p := range g.players {
		ps := PlayerState{
			PlayerID:     p.ID,
			Name:         p.Name,
			Lives:        p.Lives,
			TurnsWon:     p.TricksWon,
			IsEliminated: p.Eliminated,
			HandSize:     len(p.Hand),
		}
		if p.Bid != nil {
			bid := *p.Bid
			ps.Guess = &bid
		}
		if requestingID != "" && p.ID == requestingID {
			ps.HandVisible = true
			ps.Hand = append([]shared.Card{}, p.Hand...)
		}
		s.Players = append(s.Players, ps)
	}
	return s
}

func strPtr(s string) *string {
	return &s
}
