package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-arena/internal/handid"
	"github.com/lox/holdem-arena/poker"
)

// HandID identifies one simulated hand across agents and historians.
type HandID = handid.ID

// raiseCap sizes the per-hand safety cap on player actions (4 × seats ×
// raiseCap). Real betting is stack bounded well before this; tripping the cap
// means the engine is broken.
const raiseCap = 64

// HoldemSimulation drives one hand of no-limit hold'em to completion: it
// deals, posts forced bets, asks agents for decisions, validates them,
// mutates the GameState and emits the recorded action stream to historians.
//
// The simulation is single-threaded and cooperative: agents are invoked
// synchronously in clockwise seat order and must return before the engine
// continues.
type HoldemSimulation struct {
	ID        HandID
	GameState *GameState

	agents     []Agent
	historians []Historian
	deck       *poker.Deck
	seeded     poker.Hand // pre-seeded board cards not yet revealed
	rng        *rand.Rand
	clock      quartz.Clock
	logger     *log.Logger

	panicOnHistorianError bool
	checkInvariants       bool
	actionsTaken          int
}

// SimulationOption configures a HoldemSimulation.
type SimulationOption func(*HoldemSimulation)

// WithHistorians attaches sinks for the recorded action stream.
func WithHistorians(historians ...Historian) SimulationOption {
	return func(s *HoldemSimulation) {
		s.historians = append(s.historians, historians...)
	}
}

// WithClock injects the clock used to stamp records. Tests use quartz mocks.
func WithClock(clock quartz.Clock) SimulationOption {
	return func(s *HoldemSimulation) {
		s.clock = clock
	}
}

// WithLogger sets the simulation logger.
func WithLogger(logger *log.Logger) SimulationOption {
	return func(s *HoldemSimulation) {
		s.logger = logger
	}
}

// WithPanicOnHistorianError makes historian failures fatal instead of
// dropping the historian.
func WithPanicOnHistorianError() SimulationOption {
	return func(s *HoldemSimulation) {
		s.panicOnHistorianError = true
	}
}

// WithInvariantChecks asserts the GameState invariants at every action
// boundary. Off by default; tests turn it on.
func WithInvariantChecks() SimulationOption {
	return func(s *HoldemSimulation) {
		s.checkInvariants = true
	}
}

// NewSimulation builds a simulation over the given state. The RNG is
// explicit: the engine never reads global randomness. Agents are one per
// seat.
func NewSimulation(rng *rand.Rand, state *GameState, agents []Agent, opts ...SimulationOption) (*HoldemSimulation, error) {
	if rng == nil {
		return nil, configErrorf("rng", "is required")
	}
	if state == nil {
		return nil, ErrNeedGameState
	}
	if len(agents) != state.NumPlayers {
		return nil, fmt.Errorf("%w: have %d agents for %d seats", ErrNeedAgents, len(agents), state.NumPlayers)
	}

	s := &HoldemSimulation{
		GameState: state,
		agents:    agents,
		rng:       rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.ID = handid.New(rng, s.clock.Now())
	return s, nil
}

// Run drives the hand to completion and returns the final state.
func (s *HoldemSimulation) Run() *GameState {
	for s.MoreRounds() {
		s.Step()
	}
	return s.GameState
}

// MoreRounds reports whether Step still has work to do.
func (s *HoldemSimulation) MoreRounds() bool {
	return !s.GameState.Complete()
}

// Step processes the current round and advances to the next one.
func (s *HoldemSimulation) Step() {
	g := s.GameState
	switch g.Round {
	case RoundStarting:
		s.stepStarting()
	case RoundAnte:
		s.stepAnte()
	case RoundPreflop, RoundFlop, RoundTurn, RoundRiver:
		s.stepBetting()
	case RoundShowdown:
		s.stepShowdown()
	case RoundComplete:
		// Nothing left to do.
	}
	if s.checkInvariants {
		g.AssertInvariants()
	}
}

// stepStarting opens the record stream, seeds the deck around any known
// cards and deals hole cards to seats that need them.
func (s *HoldemSimulation) stepStarting() {
	g := s.GameState

	s.record(GameStart{
		Time:       s.now(),
		NumPlayers: g.NumPlayers,
		SmallBlind: g.SmallBlind,
		BigBlind:   g.BigBlind,
		Ante:       g.Ante,
	})
	for seat := 0; seat < g.NumPlayers; seat++ {
		if !g.Folded[seat] {
			s.record(PlayerSit{Time: s.now(), Seat: seat, Stack: g.Stacks[seat]})
		}
	}

	// Known cards never re-enter the deck, so pre-populated hands and boards
	// are honored exactly.
	s.deck = poker.NewDeck(s.rng)
	for _, hand := range g.Hands {
		s.deck.Remove(hand...)
	}
	s.deck.Remove(g.Board...)
	// A pre-seeded board is held back and revealed street by street.
	s.seeded = g.Board
	g.Board = nil

	for seat := 0; seat < g.NumPlayers; seat++ {
		if g.Folded[seat] {
			continue
		}
		for len(g.Hands[seat]) < 2 {
			card, ok := s.deck.Deal()
			if !ok {
				panic("game: deck exhausted dealing hole cards")
			}
			g.Hands[seat] = append(g.Hands[seat], card)
		}
		s.record(DealStarting{Time: s.now(), Seat: seat, Cards: g.Hands[seat].Clone()})
	}

	g.startRound()
}

// stepAnte collects antes from every live seat.
func (s *HoldemSimulation) stepAnte() {
	g := s.GameState
	s.record(RoundAdvance{Time: s.now(), Round: RoundAnte})
	for _, posted := range g.postAntes() {
		s.record(ForcedBet{Time: s.now(), Bet: posted.kind, Seat: posted.seat, Amount: posted.amount})
	}
	g.startRound()
}

// stepBetting runs one betting street: deal the street's community cards,
// post blinds on preflop, then drive agents until betting closes.
func (s *HoldemSimulation) stepBetting() {
	g := s.GameState
	s.record(RoundAdvance{Time: s.now(), Round: g.Round})
	s.dealCommunity()

	if g.Round == RoundPreflop {
		for _, posted := range g.postBlinds() {
			s.record(ForcedBet{Time: s.now(), Bet: posted.kind, Seat: posted.seat, Amount: posted.amount})
		}
	}

	for g.LiveSeats() > 1 && !g.roundComplete() {
		seat := g.ToActIdx
		if seat < 0 || !g.canAct(seat) {
			break
		}

		s.actionsTaken++
		if s.actionsTaken > 4*g.NumPlayers*raiseCap {
			panic("game: action count exceeded the per-hand cap")
		}

		intended := s.agents[seat].Act(s.ID, g.PlayerView(seat))
		outcome := g.applyAction(seat, intended)
		if !outcome.legal {
			s.logger.Debug("illegal action coerced",
				"seat", seat, "intended", outcome.intended.String(), "applied", outcome.applied.String())
			s.record(FailedAction{Time: s.now(), Seat: seat, Intended: outcome.intended, Applied: outcome.applied})
		}
		s.record(PlayerAction{Time: s.now(), Seat: seat, Action: outcome.applied, Legal: outcome.legal})

		if s.checkInvariants {
			g.AssertInvariants()
		}
		if next := g.nextActingSeat(g.seatAfter(seat)); next >= 0 {
			g.ToActIdx = next
		}
	}

	g.finishRound()

	if g.LiveSeats() <= 1 {
		s.completeOnFolds()
		return
	}
	g.startRound()
}

// dealCommunity draws the street's missing community cards. Pre-seeded
// boards are revealed rather than drawn; there are no burn cards.
func (s *HoldemSimulation) dealCommunity() {
	g := s.GameState
	want := g.Round.BoardSize()
	if want == 0 {
		return
	}
	already := len(g.Board)
	for len(g.Board) < want {
		if len(s.seeded) > 0 {
			g.Board = append(g.Board, s.seeded[0])
			s.seeded = s.seeded[1:]
			continue
		}
		card, ok := s.deck.Deal()
		if !ok {
			panic("game: deck exhausted dealing community cards")
		}
		g.Board = append(g.Board, card)
	}
	revealed := g.Board[already:want]
	if len(revealed) > 0 {
		s.record(DealCommunity{Time: s.now(), Round: g.Round, Cards: poker.NewHand(revealed...)})
	}
}

// stepShowdown ranks the live seats, slices the pot into layers and pushes
// the winnings.
func (s *HoldemSimulation) stepShowdown() {
	g := s.GameState
	s.record(RoundAdvance{Time: s.now(), Round: RoundShowdown})

	ranks := make(map[int]poker.HandRank, g.NumPlayers)
	for seat := 0; seat < g.NumPlayers; seat++ {
		if g.Folded[seat] {
			continue
		}
		cards := append(g.Hands[seat].Clone(), g.Board...)
		ranks[seat] = poker.Evaluate(cards)
	}

	s.settle(g.awardPots(ranks))
}

// completeOnFolds ends a hand in which all but one seat folded: the last
// live seat collects without showing down.
func (s *HoldemSimulation) completeOnFolds() {
	s.settle(s.GameState.awardPots(nil))
}

// settle pushes pot awards into stacks, closes the hand and emits the Award
// and GameEnd records.
func (s *HoldemSimulation) settle(awards []potAward) {
	g := s.GameState
	for _, award := range awards {
		g.Stacks[award.seat] += award.amount
		s.record(Award{Time: s.now(), Seat: award.seat, Amount: award.amount, Rank: award.rank})
	}
	// Committed chips have been distributed; zero the bet ledgers so chip
	// conservation holds on the final state.
	for i := range g.PlayerBet {
		g.PlayerBet[i] = 0
		g.RoundBet[i] = 0
	}
	g.CurrentBet = 0
	g.Round = RoundComplete
	s.record(GameEnd{Time: s.now(), Stacks: append([]int(nil), g.Stacks...)})
}

func (s *HoldemSimulation) now() time.Time {
	return s.clock.Now()
}

// record fans one stream entry out to every active historian. A failing
// historian is dropped for the remainder of the hand, or the failure is
// escalated to a panic when configured.
func (s *HoldemSimulation) record(rec Record) {
	for i := 0; i < len(s.historians); i++ {
		if err := s.historians[i].Record(s.ID, s.GameState, rec); err != nil {
			if s.panicOnHistorianError {
				panic(&HistorianError{Err: err})
			}
			s.logger.Warn("removing failing historian", "error", err, "record", rec.Kind())
			s.historians = append(s.historians[:i], s.historians[i+1:]...)
			i--
		}
	}
}
