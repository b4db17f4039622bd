package game

import "testing"

func TestPhaseTransitions(t *testing.T) {
	cases := []struct {
		from Phase
		on   trigger
		to   Phase
		ok   bool
	}{
		{Waiting, triggerStart, Bidding, true},
		{Bidding, triggerAllBid, Playing, true},
		{Playing, triggerRoundDone, RoundEnd, true},
		{RoundEnd, triggerNextRound, Bidding, true},
		{RoundEnd, triggerLastStanding, GameOver, true},
		{Waiting, triggerAllBid, Waiting, false},
		{Bidding, triggerRoundDone, Bidding, false},
		{Playing, triggerStart, Playing, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+tc.on.String(), func(t *testing.T) {
			got, err := tc.from.next(tc.on)
			if (err == nil) != tc.ok {
				t.Fatalf("err = %v, want ok=%v", err, tc.ok)
			}
			if got != tc.to {
				t.Fatalf("got %s, want %s", got, tc.to)
			}
		})
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	for _, tr := range []trigger{triggerStart, triggerAllBid, triggerRoundDone, triggerNextRound, triggerLastStanding} {
		if _, err := GameOver.next(tr); err == nil {
			t.Fatalf("GameOver left on %s", tr)
		}
	}
	for _, a := range []action{actionStart, actionBid, actionPlay} {
		if GameOver.allows(a) {
			t.Fatalf("GameOver allows action %d", a)
		}
	}
}

func TestPhaseActions(t *testing.T) {
	if !Waiting.allows(actionStart) || Waiting.allows(actionBid) {
		t.Fatalf("Waiting allows only start")
	}
	if !Bidding.allows(actionBid) || Bidding.allows(actionPlay) {
		t.Fatalf("Bidding allows only bid")
	}
	if !Playing.allows(actionPlay) || Playing.allows(actionBid) {
		t.Fatalf("Playing allows only play")
	}
	if RoundEnd.allows(actionBid) || RoundEnd.allows(actionPlay) {
		t.Fatalf("RoundEnd is not interactive")
	}
}
