package shared

// PlayedCard stores a card along with the ID of the player who played it.
type PlayedCard struct {
	PlayerID string `json:"player_id"`
	Card     Card   `json:"card"`
}

// Trick holds the cards played in the current exchange, in play order.
type Trick struct {
	Cards []PlayedCard
}

// NewTrick creates a new trick instance.
func NewTrick() *Trick {
	return &Trick{Cards: []PlayedCard{}}
}

// AddCard adds a card and the player's ID to the trick.
func (t *Trick) AddCard(playerID string, card Card) {
	t.Cards = append(t.Cards, PlayedCard{PlayerID: playerID, Card: card})
}

func (t *Trick) Len() int {
	return len(t.Cards)
}

// DetermineWinner returns the entry holding the strongest card. On equal
// strength the first one seen wins. ok is false for an empty trick.
func (t *Trick) DetermineWinner() (winner PlayedCard, ok bool) {
	for i, pc := range t.Cards {
		if i == 0 || pc.Card.Beats(winner.Card) {
			winner = pc
		}
	}
	return winner, len(t.Cards) > 0
}

// Snapshot returns a copy of the played cards.
func (t *Trick) Snapshot() []PlayedCard {
	out := make([]PlayedCard, len(t.Cards))
	copy(out, t.Cards)
	return out
}
