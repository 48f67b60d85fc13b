package main

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/randutil"
	"github.com/lox/holdem-arena/internal/statistics"
	"github.com/lox/holdem-arena/internal/stream"
	"github.com/lox/holdem-arena/internal/tournament"
)

// SimulateCmd plays independent hands between built-in agents and reports
// per-seat winrates.
type SimulateCmd struct {
	Hands      int      `default:"1000" help:"Number of hands to simulate"`
	Agents     []string `default:"random,calling" help:"Comma-separated strategies, one per seat (folding, calling, allin, random)"`
	Stack      int      `default:"500" help:"Starting stack per seat"`
	SmallBlind int      `default:"5" help:"Small blind"`
	BigBlind   int      `default:"10" help:"Big blind"`
	Ante       int      `default:"0" help:"Ante"`
	Seed       int64    `default:"1" help:"RNG seed"`
	Stream     string   `help:"Serve the action stream to WebSocket spectators at this address (e.g. :8080)"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := cli.logger()
	rng := randutil.New(c.Seed)

	agents, err := c.buildAgents(rng)
	if err != nil {
		return err
	}

	var historians []game.Historian
	if c.Stream != "" {
		server := stream.NewServer(logger)
		go func() {
			if err := server.ListenAndServe(c.Stream); err != nil {
				logger.Error("spectator stream stopped", "error", err)
			}
		}()
		historians = append(historians, server)
	}

	stats := make([]statistics.Statistics, len(agents))
	for hand := 0; hand < c.Hands; hand++ {
		stacks := make([]int, len(agents))
		for i := range stacks {
			stacks[i] = c.Stack
		}
		state, err := game.NewGameState(stacks, c.BigBlind, c.SmallBlind, c.Ante, hand%len(agents))
		if err != nil {
			return err
		}

		capture := game.NewVecHistorian()
		sim, err := game.NewSimulation(rng, state, agents,
			game.WithHistorians(append(historians, capture)...),
			game.WithLogger(logger),
		)
		if err != nil {
			return err
		}
		sim.Run()

		showdown, potBB := handSummary(capture, c.BigBlind)
		for seat := range stats {
			netBB := float64(state.Stacks[seat]-state.StartingStacks[seat]) / float64(c.BigBlind)
			stats[seat].Add(netBB, showdown, potBB)
		}
		if (hand+1)%10000 == 0 {
			logger.Info("progress", "hands", hand+1)
		}
	}

	fmt.Printf("Simulated %d hands (seed %d)\n", c.Hands, c.Seed)
	for seat, strategy := range c.Agents {
		s := &stats[seat]
		lo, hi := s.ConfidenceInterval95()
		fmt.Printf("  seat %d %-8s %+.2f bb/100 (95%% CI %+.2f..%+.2f per hand), max pot %.1f bb\n",
			seat, strategy, s.BBPer100(), lo, hi, s.MaxPotBB)
	}
	showdownPct := float64(stats[0].ShowdownHands) / float64(c.Hands) * 100
	fmt.Printf("  %.1f%% of hands reached showdown\n", showdownPct)
	return nil
}

// handSummary derives showdown/pot facts for one hand from its record
// stream.
func handSummary(capture *game.VecHistorian, bigBlind int) (showdown bool, potBB float64) {
	pot := 0
	for _, ev := range capture.Events {
		switch rec := ev.Record.(type) {
		case game.RoundAdvance:
			if rec.Round == game.RoundShowdown {
				showdown = true
			}
		case game.Award:
			pot += rec.Amount
		}
	}
	return showdown, float64(pot) / float64(bigBlind)
}

func (c *SimulateCmd) buildAgents(rng *rand.Rand) ([]game.Agent, error) {
	if len(c.Agents) == 1 && strings.Contains(c.Agents[0], ",") {
		c.Agents = strings.Split(c.Agents[0], ",")
	}
	if len(c.Agents) < 2 || len(c.Agents) > 9 {
		return nil, fmt.Errorf("want 2-9 agents, got %d", len(c.Agents))
	}
	agents := make([]game.Agent, len(c.Agents))
	for i, strategy := range c.Agents {
		builder, err := tournament.AgentBuilderForStrategy(strings.TrimSpace(strategy), rng)
		if err != nil {
			return nil, err
		}
		agents[i] = builder.Build(nil, i)
	}
	return agents, nil
}
