package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/poker"
)

// potState builds a showdown-shaped state directly for pot slicing tests.
func potState(t *testing.T, stacks []int, playerBet []int, folded []bool, dealer int) *GameState {
	t.Helper()
	starting := make([]int, len(stacks))
	for i := range stacks {
		starting[i] = stacks[i] + playerBet[i]
	}
	state := &GameState{
		NumPlayers:     len(stacks),
		DealerIdx:      dealer,
		Stacks:         append([]int(nil), stacks...),
		StartingStacks: starting,
		PlayerBet:      append([]int(nil), playerBet...),
		RoundBet:       make([]int, len(stacks)),
		Folded:         append([]bool(nil), folded...),
		AllIn:          make([]bool, len(stacks)),
		Acted:          make([]bool, len(stacks)),
		Round:          RoundShowdown,
	}
	return state
}

func rankMap(seatRanks map[int]string) map[int]poker.HandRank {
	out := make(map[int]poker.HandRank, len(seatRanks))
	for seat, cards := range seatRanks {
		out[seat] = poker.Evaluate(poker.MustParseCards(cards))
	}
	return out
}

func awardsBySeat(awards []potAward) map[int]int {
	out := make(map[int]int, len(awards))
	for _, a := range awards {
		out[a.seat] = a.amount
	}
	return out
}

func TestThreeWaySidePots(t *testing.T) {
	// Stacks 20/50/100 all-in: layers 60, 60, 50. The best hand belongs to
	// seat 2, so it sweeps all three layers.
	state := potState(t,
		[]int{0, 0, 0},
		[]int{20, 50, 100},
		[]bool{false, false, false}, 0)

	awards := state.awardPots(rankMap(map[int]string{
		0: "As9d7c5h3s", // high card
		1: "KsKd7c5h3s", // pair of kings
		2: "AsAd7c5h3s", // pair of aces
	}))

	got := awardsBySeat(awards)
	assert.Equal(t, map[int]int{2: 170}, got)
}

func TestSidePotShortStackWinsOnlyItsLayer(t *testing.T) {
	// The short stack has the best hand but only contests the first layer;
	// the middle hand takes the rest.
	state := potState(t,
		[]int{0, 0, 0},
		[]int{20, 50, 50},
		[]bool{false, false, false}, 0)

	awards := state.awardPots(rankMap(map[int]string{
		0: "AsAd7c5h3s",
		1: "KsKd7c5h3s",
		2: "Qs9d7c5h3s",
	}))

	got := awardsBySeat(awards)
	// Layer 1: 20*3 = 60 to seat 0. Layer 2: 30*2 = 60 to seat 1.
	assert.Equal(t, map[int]int{0: 60, 1: 60}, got)
}

func TestSplitPotDustGoesClockwiseFromDealer(t *testing.T) {
	// Equal hands split; the odd chip lands on the first winner clockwise
	// from the dealer.
	state := potState(t,
		[]int{0, 0, 0},
		[]int{25, 25, 25},
		[]bool{false, true, false}, 1)

	awards := state.awardPots(rankMap(map[int]string{
		0: "AsAd7c5h3s",
		2: "AhAc7d5s3d",
	}))

	got := awardsBySeat(awards)
	// 75 split two ways = 37 each with 1 chip of dust. Clockwise from
	// dealer seat 1 the first winner is seat 2.
	require.Equal(t, 75, got[0]+got[2])
	assert.Equal(t, 38, got[2])
	assert.Equal(t, 37, got[0])
}

func TestUncalledLayerRefunded(t *testing.T) {
	// Seat 1 committed more than anyone can contest and then everyone else
	// folded: the uncontested layer comes back.
	state := potState(t,
		[]int{0, 80, 0},
		[]int{20, 20, 0},
		[]bool{true, false, true}, 0)
	state.PlayerBet[1] = 50
	state.StartingStacks[1] = 130

	awards := state.awardPots(nil)
	got := awardsBySeat(awards)
	assert.Equal(t, map[int]int{1: 70}, got)
}

func TestFoldedContributionsFundTheLayers(t *testing.T) {
	// A folded seat's chips stay in the pot for the live contenders.
	state := potState(t,
		[]int{0, 0, 90},
		[]int{30, 30, 10},
		[]bool{false, false, true}, 0)

	awards := state.awardPots(rankMap(map[int]string{
		0: "AsAd7c5h3s",
		1: "KsKd7c5h3s",
	}))

	got := awardsBySeat(awards)
	assert.Equal(t, map[int]int{0: 70}, got)
}
