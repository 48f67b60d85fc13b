package main

import (
	"fmt"
	"os"

	"github.com/lox/holdem-arena/internal/cfr"
	"github.com/lox/holdem-arena/internal/fileutil"
	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/randutil"
)

// TrainCmd trains a CFR strategy tree by replaying hands from a fixed
// starting state.
type TrainCmd struct {
	Players    int    `default:"2" help:"Number of seats"`
	Hands      int    `default:"1000" help:"Training hands to replay"`
	Stack      int    `default:"200" help:"Starting stack per seat"`
	SmallBlind int    `default:"5" help:"Small blind"`
	BigBlind   int    `default:"10" help:"Big blind"`
	Seed       int64  `default:"1" help:"RNG seed"`
	Export     string `help:"Write the trained tree as Graphviz DOT to this file"`
}

func (c *TrainCmd) Run(cli *CLI) error {
	logger := cli.logger()

	stacks := make([]int, c.Players)
	for i := range stacks {
		stacks[i] = c.Stack
	}
	base, err := game.NewGameState(stacks, c.BigBlind, c.SmallBlind, 0, 0)
	if err != nil {
		return err
	}

	trainer := cfr.NewTrainer(randutil.New(c.Seed), cfr.WithLogger(logger))
	hands, err := trainer.Train(cfr.NewStartingStateIterator(base, c.Hands))
	if err != nil {
		return err
	}

	fmt.Printf("Trained on %d hands: %d tree nodes (seed %d)\n", hands, trainer.Tree().Len(), c.Seed)

	if c.Export != "" {
		err := fileutil.WriteAtomic(c.Export, func(f *os.File) error {
			return cfr.WriteDOT(f, trainer.Tree())
		})
		if err != nil {
			return err
		}
		logger.Info("exported tree", "path", c.Export, "nodes", trainer.Tree().Len())
	}
	return nil
}
