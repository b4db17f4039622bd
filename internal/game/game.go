package game

import (
	"sync"

	"guesser-game/internal/shared"

	"go.uber.org/zap"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// RoundSchedule is the number of cards dealt per player in each round. After
// the last entry the schedule starts over.
var RoundSchedule = []int{2, 3, 4, 5, 4, 3}

// Game represents the main game state machine. It owns its players and deck;
// callers only see copies through Snapshot.
type Game struct {
	id                  string
	players             []*shared.Player // join order, defines the rotation
	deck                *shared.Deck
	phase               Phase
	roundIndex          int
	turnIndex           int
	currentPlayerIndex  int // into activePlayers()
	biddingStartIndex   int // into activePlayers()
	currentBiddingIndex int // into activePlayers()
	trick               *shared.Trick
	trickResults        []string
	winnerID            string
	roundsPlayed        int

	mu        sync.RWMutex
	logger    *zap.Logger
	sendEvent EventSender
	pending   []Event
}

// NewGame initializes a new game instance in the Waiting phase.
func NewGame(id string, logger *zap.Logger) *Game {
	return newGame(id, logger, shared.NewDeck())
}

// NewGameWithDeck is like NewGame but deals from the given deck.
func NewGameWithDeck(id string, logger *zap.Logger, deck *shared.Deck) *Game {
	return newGame(id, logger, deck)
}

func newGame(id string, logger *zap.Logger, deck *shared.Deck) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		id:           id,
		players:      []*shared.Player{},
		deck:         deck,
		phase:        Waiting,
		trick:        shared.NewTrick(),
		trickResults: []string{},
		logger:       logger.With(zap.String("game_id", id)),
	}
}

// SetEventSender registers the callback that receives game events.
func (g *Game) SetEventSender(sender EventSender) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sendEvent = sender
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Phase() Phase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.phase
}

func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.players)
}

// CardsThisRound returns the hand size of the current round.
func (g *Game) CardsThisRound() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cardsThisRound()
}

// CurrentPlayer returns the player due to play a card.
func (g *Game) CurrentPlayer() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.currentPlayerID()
}

// CurrentBidder returns the player due to bid.
func (g *Game) CurrentBidder() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.currentBidderID()
}

// Winner returns the last player standing once the game is over.
func (g *Game) Winner() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.winnerID, g.winnerID != ""
}

// mutate runs fn under the write lock and delivers the events it produced
// once the lock is released.
func (g *Game) mutate(fn func() error) error {
	g.mu.Lock()
	err := fn()
	events := g.pending
	g.pending = nil
	sender := g.sendEvent
	g.mu.Unlock()

	if sender != nil {
		for _, ev := range events {
			sender(ev)
		}
	}
	return err
}

func (g *Game) emit(ev Event) {
	ev.GameID = g.id
	g.pending = append(g.pending, ev)
}

// reject logs an expected rule violation and passes the error through.
func (g *Game) reject(op, playerID string, err error) error {
	g.logger.Debug("action rejected",
		zap.String("op", op),
		zap.String("player_id", playerID),
		zap.String("phase", string(g.phase)),
		zap.Error(err),
	)
	return err
}

// transition moves the game along the phase table. An unknown pair is a bug.
func (g *Game) transition(t trigger) {
	to, err := g.phase.next(t)
	if err != nil {
		g.logger.Panic("invalid phase transition", zap.Error(err))
	}
	g.phase = to
}

// AddPlayer appends a player in join order. The engine does not look at the
// phase here; the Hub only admits joins while the game is Waiting.
func (g *Game) AddPlayer(id, name string) error {
	return g.mutate(func() error {
		if len(g.players) >= MaxPlayers {
			return g.reject("add_player", id, ErrGameFull)
		}
		if g.player(id) != nil {
			return g.reject("add_player", id, ErrDuplicatePlayer)
		}
		g.players = append(g.players, shared.NewPlayer(id, name))
		g.logger.Info("player joined", zap.String("player_id", id), zap.String("name", name))
		g.emit(Event{Type: EventPlayerJoined, PlayerID: id})
		return nil
	})
}

// RemovePlayer drops a player by ID. Rebalancing an in-progress round is the
// caller's problem.
func (g *Game) RemovePlayer(id string) error {
	return g.mutate(func() error {
		for i, p := range g.players {
			if p.ID == id {
				g.players = append(g.players[:i:i], g.players[i+1:]...)
				g.logger.Info("player left", zap.String("player_id", id))
				g.emit(Event{Type: EventPlayerLeft, PlayerID: id})
				return nil
			}
		}
		return g.reject("remove_player", id, ErrUnknownPlayer)
	})
}

// Start shuffles the deck and deals the first round.
func (g *Game) Start() error {
	return g.mutate(func() error {
		if !g.phase.allows(actionStart) {
			return g.reject("start", "", ErrWrongPhase)
		}
		if len(g.players) < MinPlayers {
			return g.reject("start", "", ErrNotEnoughPlayers)
		}
		g.logger.Info("starting game", zap.Int("players", len(g.players)))
		g.deck.Shuffle()
		g.beginRound()
		g.transition(triggerStart)
		return nil
	})
}

// Bid records a player's prediction for the round.
func (g *Game) Bid(playerID string, value int) error {
	return g.mutate(func() error {
		if !g.phase.allows(actionBid) {
			return g.reject("bid", playerID, ErrWrongPhase)
		}
		p, err := g.activePlayer(playerID)
		if err != nil {
			return g.reject("bid", playerID, err)
		}
		active := g.activePlayers()
		if due, ok := at(active, g.currentBiddingIndex); !ok || due.ID != playerID {
			return g.reject("bid", playerID, ErrNotYourTurn)
		}
		cards := g.cardsThisRound()
		if value < 0 || value > cards {
			return g.reject("bid", playerID, ErrBidOutOfRange)
		}
		if !g.bidAllowed(value, active) {
			return g.reject("bid", playerID, ErrInvalidBid)
		}
		if err := p.MakeBid(value); err != nil {
			return g.reject("bid", playerID, err)
		}

		// Bidding goes anti-clockwise.
		g.currentBiddingIndex = mod(g.currentBiddingIndex-1, len(active))
		g.logger.Info("bid placed", zap.String("player_id", playerID), zap.Int("bid", value))
		g.emit(Event{Type: EventBidPlaced, PlayerID: playerID, Round: g.roundIndex, Bid: value})

		for _, ap := range active {
			if !ap.HasBid() {
				return nil
			}
		}
		g.transition(triggerAllBid)
		g.logger.Info("bidding complete, play begins", zap.Int("round", g.roundIndex))
		return nil
	})
}

// ValidBids lists the bids the player may place right now. It is empty when
// the player is not the one due to bid.
func (g *Game) ValidBids(playerID string) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.validBids(playerID)
}

func (g *Game) validBids(playerID string) []int {
	valid := []int{}
	if !g.phase.allows(actionBid) {
		return valid
	}
	if _, err := g.activePlayer(playerID); err != nil {
		return valid
	}
	active := g.activePlayers()
	if due, ok := at(active, g.currentBiddingIndex); !ok || due.ID != playerID {
		return valid
	}
	for v := 0; v <= g.cardsThisRound(); v++ {
		if g.bidAllowed(v, active) {
			valid = append(valid, v)
		}
	}
	return valid
}

// bidAllowed applies the one structural rule: after the first bid, no bid may
// bring the running total to exactly the number of cards in the round, unless
// the total has already gone past it.
func (g *Game) bidAllowed(value int, active []*shared.Player) bool {
	cards := g.cardsThisRound()
	priorSum, priorCount := 0, 0
	for _, p := range active {
		if p.Bid != nil {
			priorSum += *p.Bid
			priorCount++
		}
	}
	if priorCount == 0 {
		return true
	}
	if priorSum > cards {
		return true
	}
	return priorSum+value != cards
}

// PlayCard plays the named card from the hand of the player whose turn it is.
func (g *Game) PlayCard(playerID string, rank int, seed shared.Seed) error {
	return g.mutate(func() error {
		if !g.phase.allows(actionPlay) {
			return g.reject("play_card", playerID, ErrWrongPhase)
		}
		p, err := g.activePlayer(playerID)
		if err != nil {
			return g.reject("play_card", playerID, err)
		}
		active := g.activePlayers()
		if due, ok := at(active, g.currentPlayerIndex); !ok || due.ID != playerID {
			return g.reject("play_card", playerID, ErrNotYourTurn)
		}
		card, err := p.PlayCardByValue(rank, seed)
		if err != nil {
			return g.reject("play_card", playerID, err)
		}

		g.trick.AddCard(playerID, card)
		g.currentPlayerIndex = (g.currentPlayerIndex + 1) % len(active)
		g.logger.Info("card played", zap.String("player_id", playerID), zap.Stringer("card", card))
		g.emit(Event{Type: EventCardPlayed, PlayerID: playerID, Round: g.roundIndex, Trick: g.turnIndex, Card: &card})

		if g.trick.Len() >= len(active) {
			g.endTrick(active)
		}
		return nil
	})
}

// endTrick awards the completed trick. Assumes lock is held.
func (g *Game) endTrick(active []*shared.Player) {
	winning, ok := g.trick.DetermineWinner()
	if !ok {
		g.logger.Panic("cannot determine winner of an empty trick")
	}
	winner := g.player(winning.PlayerID)
	if winner == nil {
		g.logger.Panic("trick winner is not in the game", zap.String("player_id", winning.PlayerID))
	}
	winner.WinTrick()
	g.trickResults = append(g.trickResults, winner.ID)
	g.trick = shared.NewTrick()
	g.logger.Info("trick won",
		zap.String("player_id", winner.ID),
		zap.Stringer("card", winning.Card),
		zap.Int("trick", g.turnIndex),
	)
	g.emit(Event{Type: EventTrickWon, PlayerID: winner.ID, WinnerID: winner.ID, Round: g.roundIndex, Trick: g.turnIndex})
	g.turnIndex++

	if g.turnIndex >= g.cardsThisRound() {
		g.endRound()
		return
	}
	// Winner leads the next trick.
	for i, p := range active {
		if p.ID == winner.ID {
			g.currentPlayerIndex = i
			break
		}
	}
}

// endRound settles bids and either deals the next round or ends the game.
// Assumes lock is held.
func (g *Game) endRound() {
	g.transition(triggerRoundDone)
	g.roundsPlayed++

	lost := []string{}
	for _, p := range g.players {
		if p.Eliminated || p.Bid == nil {
			continue
		}
		if p.TricksWon != *p.Bid {
			p.LoseLife()
			lost = append(lost, p.ID)
			g.logger.Info("player missed bid",
				zap.String("player_id", p.ID),
				zap.Int("bid", *p.Bid),
				zap.Int("tricks_won", p.TricksWon),
				zap.Int("lives", p.Lives),
				zap.Bool("eliminated", p.Eliminated),
			)
		}
	}
	g.emit(Event{Type: EventRoundEnded, Round: g.roundIndex, LostLife: lost})

	active := g.activePlayers()
	if len(active) <= 1 {
		g.transition(triggerLastStanding)
		if len(active) == 1 {
			g.winnerID = active[0].ID
		}
		g.logger.Info("game over", zap.String("winner_id", g.winnerID), zap.Int("rounds", g.roundsPlayed))
		g.emit(Event{Type: EventGameOver, WinnerID: g.winnerID, Round: g.roundIndex})
		return
	}

	g.roundIndex = (g.roundIndex + 1) % len(RoundSchedule)
	g.beginRound()
	g.transition(triggerNextRound)
}

// beginRound resets hands, refills the deck when needed, deals, and moves the
// bidding cursor one seat on. Assumes lock is held.
func (g *Game) beginRound() {
	for _, p := range g.players {
		if !p.Eliminated {
			p.ResetForNewRound()
		}
	}

	cards := g.cardsThisRound()
	active := g.activePlayers()
	if g.deck.Remaining() < len(active)*cards {
		g.logger.Info("deck exhausted, reshuffling",
			zap.Int("remaining", g.deck.Remaining()),
			zap.Int("needed", len(active)*cards),
		)
		g.deck.Reset()
		g.deck.Shuffle()
	}
	for _, p := range active {
		hand, err := g.deck.Deal(cards)
		if err != nil {
			g.logger.Panic("deal failed after reshuffle", zap.Error(err))
		}
		p.AddCards(hand)
	}

	g.turnIndex = 0
	g.currentPlayerIndex = 0
	g.trick = shared.NewTrick()
	g.trickResults = []string{}
	g.biddingStartIndex = (g.biddingStartIndex + 1) % len(active)
	g.currentBiddingIndex = g.biddingStartIndex

	g.logger.Info("round started",
		zap.Int("round", g.roundIndex),
		zap.Int("cards", cards),
		zap.Int("active_players", len(active)),
		zap.Int("deck_remaining", g.deck.Remaining()),
	)
	g.emit(Event{Type: EventRoundStarted, Round: g.roundIndex})
}

// --- Utility Helpers (assume lock is held) ---

func (g *Game) cardsThisRound() int {
	return RoundSchedule[g.roundIndex]
}

// activePlayers is recomputed on every call so no index survives an elimination.
func (g *Game) activePlayers() []*shared.Player {
	active := make([]*shared.Player, 0, len(g.players))
	for _, p := range g.players {
		if !p.Eliminated {
			active = append(active, p)
		}
	}
	return active
}

func (g *Game) player(id string) *shared.Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) activePlayer(id string) (*shared.Player, error) {
	p := g.player(id)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Eliminated {
		return nil, ErrPlayerEliminated
	}
	return p, nil
}

func (g *Game) currentPlayerID() (string, bool) {
	if g.phase != Playing {
		return "", false
	}
	p, ok := at(g.activePlayers(), g.currentPlayerIndex)
	if !ok {
		return "", false
	}
	return p.ID, true
}

func (g *Game) currentBidderID() (string, bool) {
	if g.phase != Bidding {
		return "", false
	}
	p, ok := at(g.activePlayers(), g.currentBiddingIndex)
	if !ok {
		return "", false
	}
	return p.ID, true
}

func at(players []*shared.Player, i int) (*shared.Player, bool) {
	if i < 0 || i >= len(players) {
		return nil, false
	}
	return players[i], true
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
