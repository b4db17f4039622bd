package game

import (
	"errors"

	"guesser-game/internal/shared"
)

// Expected rule violations. A game that returns one of these is unchanged.
var (
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrUnknownPlayer    = errors.New("player not found")
	ErrPlayerEliminated = errors.New("player is eliminated")
	ErrBidOutOfRange    = errors.New("bid out of range")
	ErrInvalidBid       = errors.New("bid would make the total equal the cards in the round")
	ErrGameFull         = errors.New("game is full")
	ErrDuplicatePlayer  = errors.New("player already in game")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrCardNotInHand    = shared.ErrCardNotInHand
)
