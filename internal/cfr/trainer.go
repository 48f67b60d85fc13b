package cfr

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-arena/internal/game"
)

// Trainer owns a tree for one training run and replays starting states
// through it. Every seat is driven by a CFR agent sharing the tree; between
// iterations the regret matchers accumulate.
type Trainer struct {
	tree   *Tree
	gen    ActionGenerator
	rng    *rand.Rand
	logger *log.Logger
}

// TrainerOption configures a Trainer.
type TrainerOption func(*Trainer)

// WithLogger sets the training logger.
func WithLogger(logger *log.Logger) TrainerOption {
	return func(t *Trainer) {
		t.logger = logger
	}
}

// WithGenerator replaces the default BasicActionGenerator.
func WithGenerator(gen ActionGenerator) TrainerOption {
	return func(t *Trainer) {
		t.gen = gen
	}
}

// NewTrainer creates a trainer with a fresh tree.
func NewTrainer(rng *rand.Rand, opts ...TrainerOption) *Trainer {
	t := &Trainer{
		tree: NewTree(),
		gen:  BasicActionGenerator{},
		rng:  rng,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	return t
}

// Tree exposes the shared tree, primarily for inspection and export.
func (t *Trainer) Tree() *Tree {
	return t.tree
}

// Train replays every state from the iterator through the shared tree and
// returns the number of hands played. Navigator failures are training bugs,
// so historian errors are escalated rather than swallowed.
func (t *Trainer) Train(states GameStateIterator) (int, error) {
	hands := 0
	for {
		state, ok := states.Next()
		if !ok {
			return hands, nil
		}

		nav := NewTreeNavigator(t.tree)
		agents := make([]game.Agent, state.NumPlayers)
		cfrAgents := make([]*CFRAgent, state.NumPlayers)
		for seat := 0; seat < state.NumPlayers; seat++ {
			agent := NewCFRAgent(t.tree, nav, t.gen, t.rng, seat)
			agents[seat] = agent
			cfrAgents[seat] = agent
		}

		sim, err := game.NewSimulation(t.rng, state, agents,
			game.WithHistorians(nav),
			game.WithLogger(t.logger),
			game.WithPanicOnHistorianError(),
		)
		if err != nil {
			return hands, err
		}
		sim.Run()

		utilities := nav.Utilities()
		for _, agent := range cfrAgents {
			agent.Learn(utilities)
		}
		hands++
		t.logger.Debug("training hand complete", "hands", hands, "nodes", t.tree.Len())
	}
}
