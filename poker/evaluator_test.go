package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/randutil"
)

func rank(t *testing.T, s string) HandRank {
	t.Helper()
	return Evaluate(MustParseCards(s))
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category HandRank
	}{
		{"high card", "As9d7c5h3s", HighCard},
		{"pair", "AsAd7c5h3s", Pair},
		{"two pair", "AsAd7c7h3s", TwoPair},
		{"trips", "AsAdAc5h3s", ThreeOfAKind},
		{"straight", "9s8d7c6h5s", Straight},
		{"wheel", "5s4d3c2hAs", Straight},
		{"flush", "AsTs7s5s3s", Flush},
		{"full house", "AsAdAc3h3s", FullHouse},
		{"quads", "AsAdAcAh3s", FourOfAKind},
		{"straight flush", "9s8s7s6s5s", StraightFlush},
		{"royal flush", "AsKsQsJsTs", StraightFlush},
		{"seven card flush", "AsTs7s5s3s2d2c", Flush},
		{"board plays", "2d3c9s8d7c6h5s", Straight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.category, rank(t, tc.cards).Category())
		})
	}
}

func TestFlushBeatsStraight(t *testing.T) {
	flush := rank(t, "AsKsQsJs9s")
	straight := rank(t, "AhKcQdJcTs")
	assert.Greater(t, flush, straight)
}

func TestWheelIsFiveHigh(t *testing.T) {
	wheel := rank(t, "5s4d3c2hAs")
	sixHigh := rank(t, "6s5d4c3h2s")
	assert.Equal(t, Straight, wheel.Category())
	assert.Greater(t, sixHigh, wheel)
}

func TestKickerOrdering(t *testing.T) {
	// Same pair, better kicker wins.
	assert.Greater(t, rank(t, "AsAdKc5h3s"), rank(t, "AhAcQc5d3d"))
	// Same two pair, the kicker decides.
	assert.Greater(t, rank(t, "AsAd7c7hKs"), rank(t, "AhAc7d7sQs"))
	// Higher pair beats lower pair regardless of kickers.
	assert.Greater(t, rank(t, "KsKd2c3h4s"), rank(t, "QsQdAcKh9s"))
	// Full house compares trips first.
	assert.Greater(t, rank(t, "AsAdAc2h2s"), rank(t, "KsKdKcQhQs"))
	// Identical hands in different suits tie.
	assert.Equal(t, rank(t, "AsAdKc5h3s"), rank(t, "AhAcKd5s3c"))
}

func TestThreePairsUsesBestKicker(t *testing.T) {
	// With AA KK QQ J, the best five cards are AA KK Q: the third pair's
	// queen outkicks the jack.
	withThreePairs := rank(t, "AsAdKcKhQsQdJc")
	reference := rank(t, "AsAdKcKhQs")
	assert.Equal(t, reference, withThreePairs)
}

func TestTwoTripsIsFullHouse(t *testing.T) {
	r := rank(t, "AsAdAcKhKsKd3c")
	assert.Equal(t, FullHouse, r.Category())
	assert.Equal(t, rank(t, "AsAdAcKhKs"), r)
}

func TestEvaluatePanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { Evaluate(MustParseCards("AsKs")) })
	assert.Panics(t, func() { Evaluate(MustParseCards("AsKsQsJsTs9s8s7s")) })
	assert.Panics(t, func() { Evaluate([]Card{0, 0, 1, 2, 3}) })
}

// TestBestFiveOfSevenProperty is the fuzz harness for the ranker contract:
// the rank of a 7-card hand equals the max over all 21 5-card subsets.
func TestBestFiveOfSevenProperty(t *testing.T) {
	rng := randutil.New(99)
	for trial := 0; trial < 2000; trial++ {
		deck := NewDeck(rng)
		cards := deck.DealN(7)

		full := Evaluate(cards)

		best := HandRank(0)
		subset := make([]Card, 5)
		for i := 0; i < 7; i++ {
			for j := i + 1; j < 7; j++ {
				k := 0
				for idx, card := range cards {
					if idx != i && idx != j {
						subset[k] = card
						k++
					}
				}
				if r := Evaluate(subset); r > best {
					best = r
				}
			}
		}
		require.Equal(t, best, full, "cards %v", NewHand(cards...))
	}
}

func TestCategorizeHoleCards(t *testing.T) {
	tests := []struct {
		cards    string
		category HoleCardCategory
	}{
		{"AsAd", CategoryPremium},
		{"JsJd", CategoryPremium},
		{"AsKd", CategoryPremium},
		{"TsTd", CategoryStrong},
		{"AsQd", CategoryStrong},
		{"8s8d", CategoryMedium},
		{"KsQs", CategoryMedium},
		{"5s5d", CategoryWeak},
		{"7s6s", CategoryWeak},
		{"7s2d", CategoryTrash},
	}
	for _, tc := range tests {
		cards := MustParseCards(tc.cards)
		assert.Equal(t, tc.category, CategorizeHoleCards(cards[0], cards[1]), tc.cards)
	}
}
