package equity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/poker"
)

func TestAcesAreFavoriteHeadsUp(t *testing.T) {
	result, err := Calculate(context.Background(), Request{
		Hole:       poker.MustParseCards("AsAh"),
		Opponents:  1,
		Iterations: 20000,
		Seed:       1,
		Workers:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, 20000, result.Iterations)
	assert.Greater(t, result.WinProbability(), 0.75)
}

func TestMadeFlushOnBoard(t *testing.T) {
	// A completed nut flush on the turn is a massive favorite.
	result, err := Calculate(context.Background(), Request{
		Hole:       poker.MustParseCards("AsKs"),
		Board:      poker.MustParseCards("Qs7s2s2d"),
		Opponents:  2,
		Iterations: 10000,
		Seed:       3,
		Workers:    2,
	})
	require.NoError(t, err)
	assert.Greater(t, result.WinProbability(), 0.85)
}

func TestDeterministicForSeedAndWorkers(t *testing.T) {
	req := Request{
		Hole:       poker.MustParseCards("7h2c"),
		Opponents:  3,
		Iterations: 5000,
		Seed:       9,
		Workers:    3,
	}
	a, err := Calculate(context.Background(), req)
	require.NoError(t, err)
	b, err := Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRequestValidation(t *testing.T) {
	base := Request{
		Hole:       poker.MustParseCards("AsAh"),
		Opponents:  1,
		Iterations: 100,
	}

	bad := base
	bad.Hole = poker.MustParseCards("As")
	_, err := Calculate(context.Background(), bad)
	assert.Error(t, err)

	bad = base
	bad.Opponents = 0
	_, err = Calculate(context.Background(), bad)
	assert.Error(t, err)

	bad = base
	bad.Iterations = 0
	_, err = Calculate(context.Background(), bad)
	assert.Error(t, err)

	bad = base
	bad.Board = poker.MustParseCards("2c3c4c5c6c7c")
	_, err = Calculate(context.Background(), bad)
	assert.Error(t, err)
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Calculate(ctx, Request{
		Hole:       poker.MustParseCards("AsAh"),
		Opponents:  1,
		Iterations: 1_000_000,
		Seed:       1,
		Workers:    2,
	})
	assert.Error(t, err)
}
