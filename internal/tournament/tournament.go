// Package tournament wraps the simulation engine into a single-table
// tournament: repeated hands with stack carry-over and dealer rotation until
// one stack remains, with finishing places assigned as seats bust.
package tournament

import (
	"io"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-arena/internal/game"
)

// AgentBuilder constructs a fresh agent for a seat at each hand start,
// seeded with the state the hand will play from.
type AgentBuilder interface {
	Build(state *game.GameState, seat int) game.Agent
}

// AgentBuilderFunc adapts a function to AgentBuilder.
type AgentBuilderFunc func(state *game.GameState, seat int) game.Agent

func (f AgentBuilderFunc) Build(state *game.GameState, seat int) game.Agent {
	return f(state, seat)
}

// HistorianBuilder constructs a fresh historian for each hand.
type HistorianBuilder interface {
	Build(state *game.GameState) game.Historian
}

// HistorianBuilderFunc adapts a function to HistorianBuilder.
type HistorianBuilderFunc func(state *game.GameState) game.Historian

func (f HistorianBuilderFunc) Build(state *game.GameState) game.Historian {
	return f(state)
}

// Result summarizes a finished tournament.
type Result struct {
	// Places holds each seat's finishing place, 1 = winner, n = first out.
	// Seats still alive when a MaxGames limit stopped play are 0.
	Places []int
	Stacks []int
	Hands  int
}

// SingleTableTournament plays hands until one stack remains or the hand
// limit is reached.
type SingleTableTournament struct {
	agentBuilders     []AgentBuilder
	historianBuilders []HistorianBuilder
	start             *game.GameState
	rng               *rand.Rand
	clock             quartz.Clock
	logger            *log.Logger

	panicOnHistorianError bool
	doubleBlindsEvery     int
	maxGames              int
}

// Option configures a tournament.
type Option func(*SingleTableTournament)

// WithHistorianBuilders attaches historian factories, invoked per hand.
func WithHistorianBuilders(builders ...HistorianBuilder) Option {
	return func(t *SingleTableTournament) {
		t.historianBuilders = append(t.historianBuilders, builders...)
	}
}

// WithLogger sets the tournament logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *SingleTableTournament) {
		t.logger = logger
	}
}

// WithClock injects the clock passed to each simulation.
func WithClock(clock quartz.Clock) Option {
	return func(t *SingleTableTournament) {
		t.clock = clock
	}
}

// WithPanicOnHistorianError makes historian failures fatal.
func WithPanicOnHistorianError() Option {
	return func(t *SingleTableTournament) {
		t.panicOnHistorianError = true
	}
}

// WithDoubleBlindsEvery doubles both blinds every n hands. Zero disables.
func WithDoubleBlindsEvery(n int) Option {
	return func(t *SingleTableTournament) {
		t.doubleBlindsEvery = n
	}
}

// WithMaxGames stops the tournament after n hands even if several stacks
// remain. Zero means play to a single winner.
func WithMaxGames(n int) Option {
	return func(t *SingleTableTournament) {
		t.maxGames = n
	}
}

// New creates a tournament from a starting state and one agent builder per
// seat.
func New(rng *rand.Rand, start *game.GameState, agentBuilders []AgentBuilder, opts ...Option) (*SingleTableTournament, error) {
	if rng == nil {
		return nil, &game.ConfigError{Field: "rng", Reason: "is required"}
	}
	if start == nil {
		return nil, game.ErrNeedGameState
	}
	if len(agentBuilders) != start.NumPlayers {
		return nil, game.ErrNeedAgents
	}

	t := &SingleTableTournament{
		agentBuilders: agentBuilders,
		start:         start,
		rng:           rng,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.clock == nil {
		t.clock = quartz.NewReal()
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	return t, nil
}

// Run plays the tournament to completion.
func (t *SingleTableTournament) Run() (*Result, error) {
	state := t.start.Clone()
	n := state.NumPlayers

	places := make([]int, n)
	place := 0
	for _, stack := range state.Stacks {
		if stack > 0 {
			place++
		}
	}

	smallBlind, bigBlind := state.SmallBlind, state.BigBlind
	hands := 0

	for place > 1 {
		agents := make([]game.Agent, n)
		for seat := 0; seat < n; seat++ {
			agents[seat] = t.agentBuilders[seat].Build(state, seat)
		}
		historians := make([]game.Historian, 0, len(t.historianBuilders))
		for _, builder := range t.historianBuilders {
			historians = append(historians, builder.Build(state))
		}

		simOpts := []game.SimulationOption{
			game.WithHistorians(historians...),
			game.WithClock(t.clock),
			game.WithLogger(t.logger),
		}
		if t.panicOnHistorianError {
			simOpts = append(simOpts, game.WithPanicOnHistorianError())
		}
		sim, err := game.NewSimulation(t.rng, state, agents, simOpts...)
		if err != nil {
			return nil, err
		}
		sim.Run()
		hands++

		// Seats that entered the hand with chips and left with none are the
		// hand's bust-outs. A bigger stack going in earns the better place.
		busted := make([]int, 0, n)
		for seat := 0; seat < n; seat++ {
			if state.Stacks[seat] == 0 && state.StartingStacks[seat] > 0 {
				busted = append(busted, seat)
			}
		}
		// Ascending by starting stack: the shortest stack takes the worst of
		// the open places.
		sort.Slice(busted, func(i, j int) bool {
			return state.StartingStacks[busted[i]] < state.StartingStacks[busted[j]]
		})
		for _, seat := range busted {
			places[seat] = place
			t.logger.Info("seat busted", "seat", seat, "place", place, "hands", hands)
			place--
		}

		if place <= 1 {
			break
		}
		if t.maxGames > 0 && hands >= t.maxGames {
			return &Result{Places: places, Stacks: state.Stacks, Hands: hands}, nil
		}

		if t.doubleBlindsEvery > 0 && hands%t.doubleBlindsEvery == 0 {
			smallBlind *= 2
			bigBlind *= 2
			t.logger.Info("blinds doubled", "small_blind", smallBlind, "big_blind", bigBlind)
		}

		// Rotate the dealer to the next seat with chips.
		dealer := (state.DealerIdx + 1) % n
		for state.Stacks[dealer] == 0 {
			dealer = (dealer + 1) % n
		}

		state, err = game.NewGameState(state.Stacks, bigBlind, smallBlind, state.Ante, dealer)
		if err != nil {
			return nil, err
		}
	}

	winner := -1
	for seat := 0; seat < n; seat++ {
		if state.Stacks[seat] > 0 {
			if winner >= 0 {
				return nil, game.ErrNoWinner
			}
			winner = seat
		}
	}
	if winner < 0 {
		return nil, game.ErrNoWinner
	}
	places[winner] = 1
	t.logger.Info("tournament complete", "winner", winner, "hands", hands)

	return &Result{Places: places, Stacks: state.Stacks, Hands: hands}, nil
}
