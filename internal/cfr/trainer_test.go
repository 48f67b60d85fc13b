package cfr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/randutil"
	"github.com/lox/holdem-arena/poker"
)

func trainingBase(t *testing.T, players int) *game.GameState {
	t.Helper()
	stacks := make([]int, players)
	for i := range stacks {
		stacks[i] = 100
	}
	state, err := game.NewGameState(stacks, 10, 5, 0, 0)
	require.NoError(t, err)
	return state
}

func TestTrainerBuildsSharedTree(t *testing.T) {
	trainer := NewTrainer(randutil.New(1))
	hands, err := trainer.Train(NewStartingStateIterator(trainingBase(t, 2), 50))
	require.NoError(t, err)
	assert.Equal(t, 50, hands)

	tree := trainer.Tree()
	assert.Greater(t, tree.Len(), 50)

	// The root's only outgoing edge is slot 0 into the first chance node
	// (the first hole card dealt).
	child, ok := tree.Root().Child(0)
	require.True(t, ok)
	assert.IsType(t, ChanceData{}, tree.Node(child).Data)

	// Payload kinds partition the arena; every non-root node's parent
	// allocated earlier.
	players, chances, terminals := 0, 0, 0
	for idx := 1; idx < tree.Len(); idx++ {
		node := tree.Node(idx)
		assert.Less(t, node.Parent, idx)
		switch node.Data.(type) {
		case *PlayerData:
			players++
		case ChanceData:
			chances++
		case *TerminalData:
			terminals++
		default:
			t.Fatalf("node %d has unexpected payload %s", idx, node.Data)
		}
	}
	assert.Greater(t, players, 0)
	assert.Greater(t, chances, 0)
	assert.Greater(t, terminals, 0)
}

func TestTerminalUtilitiesAreZeroSum(t *testing.T) {
	trainer := NewTrainer(randutil.New(3))
	_, err := trainer.Train(NewStartingStateIterator(trainingBase(t, 3), 30))
	require.NoError(t, err)

	tree := trainer.Tree()
	found := 0
	for idx := 0; idx < tree.Len(); idx++ {
		data, ok := tree.Node(idx).Data.(*TerminalData)
		if !ok {
			continue
		}
		found++
		total := 0.0
		for _, u := range data.Utilities {
			total += u
		}
		assert.InDelta(t, 0.0, total, 1e-9, "terminal %d", idx)
	}
	assert.Greater(t, found, 0)
}

func TestPlayerNodesCarryRegretMatchers(t *testing.T) {
	trainer := NewTrainer(randutil.New(7))
	_, err := trainer.Train(NewStartingStateIterator(trainingBase(t, 2), 40))
	require.NoError(t, err)

	tree := trainer.Tree()
	matched := 0
	for idx := 0; idx < tree.Len(); idx++ {
		data, ok := tree.Node(idx).Data.(*PlayerData)
		if !ok {
			continue
		}
		require.NotNil(t, data.RegretMatcher, "player node %d has no matcher", idx)
		assertDistribution(t, data.RegretMatcher.Strategy())
		assertDistribution(t, data.RegretMatcher.AverageStrategy())
		matched++
	}
	assert.Greater(t, matched, 0)
}

func TestFixedStatesReplayReusesChancePath(t *testing.T) {
	// Replaying identical pre-seeded cards must traverse the same chance
	// path every time: the tree's chance spine does not widen.
	base := trainingBase(t, 2)
	base.Hands[0] = poker.NewHand(poker.MustParseCards("AsAh")...)
	base.Hands[1] = poker.NewHand(poker.MustParseCards("KsKh")...)
	base.Board = poker.NewHand(poker.MustParseCards("2c7d9sJcQd")...)

	trainer := NewTrainer(randutil.New(5))
	_, err := trainer.Train(NewFixedStatesIterator(base, base, base))
	require.NoError(t, err)

	tree := trainer.Tree()
	for idx := 0; idx < tree.Len(); idx++ {
		node := tree.Node(idx)
		if _, ok := node.Data.(ChanceData); ok {
			assert.LessOrEqual(t, len(node.ChildSlots()), 1, "chance node %d branched on fixed cards", idx)
		}
	}
}

func TestBasicActionGeneratorIsStable(t *testing.T) {
	state := trainingBase(t, 2)
	// Shape the state like a preflop decision for seat 0.
	state.Round = game.RoundPreflop
	state.ToActIdx = 0
	state.RoundBet[0] = 5
	state.RoundBet[1] = 10
	state.PlayerBet[0] = 5
	state.PlayerBet[1] = 10
	state.Stacks[0] = 95
	state.Stacks[1] = 90
	state.CurrentBet = 10
	state.MinRaise = 10

	gen := BasicActionGenerator{}
	first := gen.Actions(state)
	second := gen.Actions(state)
	assert.Equal(t, first, second)

	require.NotEmpty(t, first)
	assert.Equal(t, game.Fold(), first[0])
	assert.Equal(t, game.Call(), first[1])
	assert.Equal(t, game.AllIn(), first[len(first)-1])
	assert.LessOrEqual(t, len(first), 5)
}
