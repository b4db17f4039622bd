package server

import (
	"encoding/json"
	"net/http"

	"guesser-game/internal/protocol"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs upgrades a request for /ws?game_id=..&player_id=.. and streams
// state updates for that game.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	playerID := r.URL.Query().Get("player_id")

	g, err := hub.games.Get(gameID)
	if err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		gameID:   gameID,
		playerID: playerID,
	}
	// The channel is not shared yet, so the first state can go straight in.
	if msg, err := protocol.NewMessage(protocol.TypeGameState, g.Snapshot(playerID)); err == nil {
		client.send <- msg
	}
	hub.addClient(client)

	go client.WritePump()
	go client.ReadPump()
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(c *Client, msg protocol.Message) {
	var err error
	switch msg.Type {
	case protocol.TypePing:
		pong, _ := protocol.NewMessage(protocol.TypePong, nil)
		h.sendTo(c, pong)
		return

	case protocol.TypeRequestState:
		state, serr := h.Snapshot(c.gameID, c.playerID)
		if serr != nil {
			err = serr
			break
		}
		out, _ := protocol.NewMessage(protocol.TypeGameState, state)
		h.sendTo(c, out)
		return

	case protocol.TypeStart:
		_, err = h.StartGame(c.gameID)

	case protocol.TypeGuess:
		var payload protocol.GuessPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(c, "Invalid guess message.")
			return
		}
		_, err = h.Bid(c.gameID, c.playerID, payload.Guess)

	case protocol.TypePlayCard:
		var payload protocol.PlayCardPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendError(c, "Invalid play_card message.")
			return
		}
		_, err = h.PlayCard(c.gameID, c.playerID, payload.Number, payload.Seed)

	default:
		h.logger.Debug("unknown message type", zap.String("type", msg.Type), zap.String("player_id", c.playerID))
		h.sendError(c, "Unknown message type.")
		return
	}

	// Successful actions reach every client through the game's events.
	if err != nil {
		h.sendError(c, err.Error())
	}
}

// sendTo queues a message for a client that is still registered.
func (h *Hub) sendTo(c *Client, msg []byte) {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	if !h.clients[c.gameID][c] {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.logger.Warn("client send buffer full", zap.String("player_id", c.playerID))
	}
}

func (h *Hub) sendError(c *Client, errorMsg string) {
	msg, err := protocol.NewMessage(protocol.TypeError, protocol.ErrorPayload{Message: errorMsg})
	if err != nil {
		h.logger.Error("encode error message", zap.Error(err))
		return
	}
	h.sendTo(c, msg)
}
