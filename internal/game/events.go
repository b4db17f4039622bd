package game

import "guesser-game/internal/shared"

// EventType names something that happened inside a game.
type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventRoundStarted EventType = "round_started"
	EventBidPlaced    EventType = "bid_placed"
	EventCardPlayed   EventType = "card_played"
	EventTrickWon     EventType = "trick_won"
	EventRoundEnded   EventType = "round_ended"
	EventGameOver     EventType = "game_over"
)

// Event is reported to the EventSender after the operation that produced it
// has released the game lock.
type Event struct {
	Type     EventType
	GameID   string
	PlayerID string
	Round    int
	Trick    int
	Bid      int
	Card     *shared.Card
	LostLife []string // round_ended: players who missed their bid
	WinnerID string   // trick_won, game_over
}

// EventSender receives game events. The Hub provides an implementation.
type EventSender func(Event)
