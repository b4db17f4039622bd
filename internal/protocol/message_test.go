package protocol

import (
	"encoding/json"
	"testing"
)

func TestNewMessage(t *testing.T) {
	data, err := NewMessage(TypePong, nil)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	if string(data) != `{"type":"pong"}` {
		t.Fatalf("unexpected encoding: %s", data)
	}

	data, err = NewMessage(TypeError, ErrorPayload{Message: "nope"})
	if err != nil {
		t.Fatalf("new message: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var payload ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if msg.Type != TypeError || payload.Message != "nope" {
		t.Fatalf("got %+v / %+v", msg, payload)
	}
}

func TestGuessRequestDistinguishesMissingGuess(t *testing.T) {
	var req GuessRequest
	if err := json.Unmarshal([]byte(`{"player_id":"a"}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Guess != nil {
		t.Fatalf("missing guess should decode as nil")
	}
	if err := json.Unmarshal([]byte(`{"player_id":"a","guess":0}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.Guess == nil || *req.Guess != 0 {
		t.Fatalf("zero guess lost: %v", req.Guess)
	}
}
