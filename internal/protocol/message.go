package protocol

import (
	"encoding/json"

	"guesser-game/internal/game"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // e.g. "guess", "play_card", "game_state"
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, decoded per type
}

// WebSocket message types.
const (
	TypePing         = "ping"
	TypePong         = "pong"
	TypeRequestState = "request_state"
	TypeStart        = "start"
	TypeGuess        = "guess"
	TypePlayCard     = "play_card"
	TypeGameState    = "game_state"
	TypeGameDeleted  = "game_deleted"
	TypeError        = "error"
)

// --- Client -> Server Payload Structs ---

type CreateGameRequest struct {
	PlayerName string `json:"player_name"`
}

type JoinGameRequest struct {
	PlayerName string `json:"player_name"`
}

type LeaveGameRequest struct {
	PlayerID string `json:"player_id"`
}

type GuessRequest struct {
	PlayerID string `json:"player_id"`
	Guess    *int   `json:"guess"`
}

type PlayCardRequest struct {
	PlayerID   string `json:"player_id"`
	CardNumber int    `json:"card_number"`
	CardSeed   string `json:"card_seed"`
}

// GuessPayload and PlayCardPayload arrive over the websocket, where the
// player is already known from the connection.
type GuessPayload struct {
	Guess int `json:"guess"`
}

type PlayCardPayload struct {
	Number int    `json:"number"`
	Seed   string `json:"seed"`
}

// --- Server -> Client Structs ---

// Response is the envelope most game endpoints answer with.
type Response struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	GameID    string      `json:"game_id,omitempty"`
	PlayerID  string      `json:"player_id,omitempty"`
	GameState *game.State `json:"game_state,omitempty"`
}

type GameListResponse struct {
	Success bool       `json:"success"`
	Games   []GameInfo `json:"games"`
}

type ValidGuessesResponse struct {
	Success      bool  `json:"success"`
	ValidGuesses []int `json:"valid_guesses"`
}

// GameInfo describes a game that can still be joined.
type GameInfo struct {
	GameID     string `json:"game_id"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type GameDeletedPayload struct {
	GameID string `json:"game_id"`
}

// NewMessage creates a JSON message.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}
