package cfr

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-arena/internal/game"
)

// decision is one sampled choice, kept for the regret walk-back at hand end.
type decision struct {
	nodeIdx  int
	chosen   int
	strategy []float64
}

// CFRAgent plays one seat during training. On its turn it enumerates actions
// through the injected generator, materializes its decision node in the
// shared tree, samples from the node's regret-matching strategy and returns
// the action. After the hand, Learn walks the sampled path back up and feeds
// the realized utility into each decision's regret matcher.
type CFRAgent struct {
	tree      *Tree
	nav       *TreeNavigator
	gen       ActionGenerator
	rng       *rand.Rand
	playerIdx int

	decisions []decision
}

// NewCFRAgent creates a training agent for one seat. All seats of a training
// simulation share the same tree and navigator.
func NewCFRAgent(tree *Tree, nav *TreeNavigator, gen ActionGenerator, rng *rand.Rand, playerIdx int) *CFRAgent {
	return &CFRAgent{tree: tree, nav: nav, gen: gen, rng: rng, playerIdx: playerIdx}
}

// Act implements game.Agent.
func (a *CFRAgent) Act(_ game.HandID, view *game.GameState) game.Action {
	actions := a.gen.Actions(view)
	if len(actions) == 0 {
		return game.Fold()
	}

	nodeIdx := a.nav.decisionNode(a.playerIdx)
	node := a.tree.Node(nodeIdx)
	data, ok := node.Data.(*PlayerData)
	if !ok {
		panic(fmt.Sprintf("cfr: decision node %d is %s, expected Player", nodeIdx, node.Data))
	}
	if data.RegretMatcher == nil {
		data.RegretMatcher = NewRegretMatcher(len(actions))
	}

	strategy := data.RegretMatcher.Strategy()
	chosen := sampleIndex(strategy, a.rng)
	a.nav.setPendingAction(chosen)
	a.decisions = append(a.decisions, decision{nodeIdx: nodeIdx, chosen: chosen, strategy: strategy})
	return actions[chosen]
}

// Learn updates the regret matchers along the sampled path with the realized
// utilities from the finished hand, then clears the path for the next
// iteration.
//
// The update is the outcome-sampling estimate: the sampled action is
// credited with the realized utility against the strategy's expectation and
// the alternatives are debited by it, so actions that beat the expectation
// gain probability in later hands.
func (a *CFRAgent) Learn(utilities []float64) {
	utility := utilities[a.playerIdx]
	for i := len(a.decisions) - 1; i >= 0; i-- {
		d := a.decisions[i]
		data := a.tree.Node(d.nodeIdx).Data.(*PlayerData)

		expected := d.strategy[d.chosen] * utility
		regrets := make([]float64, len(d.strategy))
		for j := range regrets {
			regrets[j] = -expected
		}
		regrets[d.chosen] += utility

		data.RegretMatcher.Update(regrets, d.strategy, 1.0)
	}
	a.decisions = a.decisions[:0]
}

// sampleIndex draws an index from a probability distribution.
func sampleIndex(strategy []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range strategy {
		acc += p
		if r <= acc {
			return i
		}
	}
	return len(strategy) - 1
}
