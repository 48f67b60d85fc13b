// Package game is the hold'em simulation engine: an invariant-preserving
// GameState, the street-by-street betting state machine, side-pot
// construction, and the simulation loop that drives pluggable agents and
// emits a totally ordered record stream to historians.
//
// # Architecture
//
// One hand is one HoldemSimulation over one GameState. The simulation owns
// every mutation; agents only observe redacted views and return decisions,
// and historians only observe snapshots. Money is integer chips, so all pot
// arithmetic is exact.
//
//	state, _ := game.NewGameState([]int{500, 500}, 10, 5, 0, 0)
//	sim, _ := game.NewSimulation(rng, state, agents)
//	sim.Run()
//
// # Action validation
//
// Agents can return anything; the engine never trusts them. An under-call
// with chips behind becomes a fold, an undersize raise becomes a call, and
// both are reported on the record stream as FailedAction. An all-in below
// the minimum raise does not re-open the action for seats that already
// matched the current bet.
//
// # Determinism
//
// Every source of randomness is an injected *rand.Rand and every timestamp
// comes from an injected clock, so a seeded simulation is exactly
// reproducible.
package game
