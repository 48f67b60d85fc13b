package cfr

import (
	"github.com/lox/holdem-arena/internal/game"
)

// ActionGenerator enumerates the discrete actions a CFR agent considers at a
// decision point. The slot index of a CFR player node is the position in this
// list, so implementations must be pure and stable: the same state always
// yields the same list.
type ActionGenerator interface {
	Actions(view *game.GameState) []game.Action
}

// BasicActionGenerator exposes fold, call, a minimum raise, a pot-size raise
// and all-in, filtered down to what the state allows.
type BasicActionGenerator struct{}

func (BasicActionGenerator) Actions(view *game.GameState) []game.Action {
	seat := view.ToActIdx
	allInTotal := view.RoundBet[seat] + view.Stacks[seat]

	actions := make([]game.Action, 0, 5)
	if view.CurrentBet > view.RoundBet[seat] {
		actions = append(actions, game.Fold())
	}
	actions = append(actions, game.Call())

	minRaiseTotal := view.CurrentBet + view.MinRaise
	if minRaiseTotal < allInTotal {
		actions = append(actions, game.Bet(minRaiseTotal))

		potRaiseTotal := view.CurrentBet + view.PotTotal()
		if potRaiseTotal > minRaiseTotal && potRaiseTotal < allInTotal {
			actions = append(actions, game.Bet(potRaiseTotal))
		}
	}
	if view.Stacks[seat] > 0 {
		actions = append(actions, game.AllIn())
	}
	return actions
}
