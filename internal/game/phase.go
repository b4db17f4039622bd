package game

import "fmt"

// Phase represents the current stage of the game. The string values are the
// ones the UI reads from the snapshot.
type Phase string

const (
	Waiting  Phase = "waiting"   // Lobby, players may join
	Bidding  Phase = "guessing"  // Active players declare their bids
	Playing  Phase = "playing"   // Tricks are being played
	RoundEnd Phase = "phase_end" // Bids are being settled
	GameOver Phase = "game_over" // Terminal
)

// action is a player-initiated operation that is only legal in some phases.
type action int

const (
	actionStart action = iota
	actionBid
	actionPlay
)

var phaseActions = map[Phase]map[action]bool{
	Waiting: {actionStart: true},
	Bidding: {actionBid: true},
	Playing: {actionPlay: true},
}

func (p Phase) allows(a action) bool {
	return phaseActions[p][a]
}

// trigger is an internal event that moves the game between phases.
type trigger int

const (
	triggerStart trigger = iota
	triggerAllBid
	triggerRoundDone
	triggerNextRound
	triggerLastStanding
)

func (t trigger) String() string {
	switch t {
	case triggerStart:
		return "start"
	case triggerAllBid:
		return "all_bid"
	case triggerRoundDone:
		return "round_done"
	case triggerNextRound:
		return "next_round"
	case triggerLastStanding:
		return "last_standing"
	}
	return fmt.Sprintf("trigger(%d)", int(t))
}

// A completed trick that does not finish the round leaves the phase at
// Playing, so it needs no entry here. GameOver has no way out.
var transitions = map[Phase]map[trigger]Phase{
	Waiting:  {triggerStart: Bidding},
	Bidding:  {triggerAllBid: Playing},
	Playing:  {triggerRoundDone: RoundEnd},
	RoundEnd: {triggerNextRound: Bidding, triggerLastStanding: GameOver},
}

// next returns the phase reached from p on t.
func (p Phase) next(t trigger) (Phase, error) {
	to, ok := transitions[p][t]
	if !ok {
		return p, fmt.Errorf("no transition from %s on %s", p, t)
	}
	return to, nil
}
