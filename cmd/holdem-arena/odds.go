package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/lox/holdem-arena/internal/equity"
	"github.com/lox/holdem-arena/poker"
)

// OddsCmd estimates showdown equity for a hand by Monte Carlo.
type OddsCmd struct {
	Hole       string `arg:"" help:"Hole cards, e.g. AsKs"`
	Board      string `arg:"" optional:"" help:"Board cards, e.g. QsJs2d"`
	Opponents  int    `default:"1" help:"Number of opponents"`
	Iterations int    `default:"100000" help:"Monte Carlo iterations"`
	Seed       int64  `default:"1" help:"RNG seed"`
	Workers    int    `help:"Worker count (defaults to GOMAXPROCS)"`
}

func (c *OddsCmd) Run(cli *CLI) error {
	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole cards: %w", err)
	}
	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board cards: %w", err)
		}
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	result, err := equity.Calculate(context.Background(), equity.Request{
		Hole:       hole,
		Board:      board,
		Opponents:  c.Opponents,
		Iterations: c.Iterations,
		Seed:       c.Seed,
		Workers:    workers,
	})
	if err != nil {
		return err
	}

	if len(hole) == 2 {
		fmt.Printf("%s  (%s)\n", poker.NewHand(hole...), poker.CategorizeHoleCards(hole[0], hole[1]))
	}
	if len(board) > 0 {
		fmt.Printf("board: %s\n", poker.NewHand(board...))
	}
	fmt.Printf("vs %d opponent(s) over %d runouts:\n", c.Opponents, result.Iterations)
	fmt.Printf("  win %.2f%%  tie %.2f%%\n", result.WinProbability()*100, result.TieProbability()*100)
	return nil
}
