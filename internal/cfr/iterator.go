package cfr

import "github.com/lox/holdem-arena/internal/game"

// GameStateIterator yields the finite sequence of starting states a training
// run replays. Each state is an independent hand start; card permutations
// come either from pre-seeded hands or from the simulation's deal.
type GameStateIterator interface {
	Next() (*game.GameState, bool)
}

// StartingStateIterator replays clones of one base state a fixed number of
// times. Hole cards left empty in the base are dealt fresh each iteration,
// which is what makes the chance branches of the tree fill out.
type StartingStateIterator struct {
	base      *game.GameState
	remaining int
}

// NewStartingStateIterator creates an iterator yielding count clones of base.
func NewStartingStateIterator(base *game.GameState, count int) *StartingStateIterator {
	return &StartingStateIterator{base: base, remaining: count}
}

func (it *StartingStateIterator) Next() (*game.GameState, bool) {
	if it.remaining <= 0 {
		return nil, false
	}
	it.remaining--
	return it.base.Clone(), true
}

// FixedStatesIterator yields a prepared list of starting states, useful for
// replaying exact card permutations.
type FixedStatesIterator struct {
	states []*game.GameState
	next   int
}

// NewFixedStatesIterator creates an iterator over the given states.
func NewFixedStatesIterator(states ...*game.GameState) *FixedStatesIterator {
	return &FixedStatesIterator{states: states}
}

func (it *FixedStatesIterator) Next() (*game.GameState, bool) {
	if it.next >= len(it.states) {
		return nil, false
	}
	state := it.states[it.next]
	it.next++
	return state.Clone(), true
}
