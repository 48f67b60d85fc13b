package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-arena/internal/randutil"
	"github.com/lox/holdem-arena/internal/tournament"
)

// TournamentCmd runs one or more single-table tournaments described by an
// HCL config file.
type TournamentCmd struct {
	Config string `short:"c" help:"HCL tournament config file (defaults to a built-in random-vs-calling table)"`
	Count  int    `default:"1" help:"Number of tournaments to run"`
	Seed   int64  `help:"Override the config seed"`
}

func (c *TournamentCmd) Run(cli *CLI) error {
	logger := cli.logger()

	config := tournament.DefaultConfig()
	if c.Config != "" {
		loaded, err := tournament.LoadConfig(c.Config)
		if err != nil {
			return err
		}
		config = loaded
	}
	seed := config.Tournament.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	if c.Count < 1 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}

	names := make([]string, len(config.Agents))
	for i, agent := range config.Agents {
		names[i] = agent.Name
	}

	// Place counts per seat across the series.
	placeCounts := make([][]int, len(config.Agents))
	for i := range placeCounts {
		placeCounts[i] = make([]int, len(config.Agents)+1)
	}
	totalHands := 0

	progress := newSeriesProgress(c.Count)
	progress.start()

	for run := 0; run < c.Count; run++ {
		rng := randutil.Derive(seed, run)

		builders := make([]tournament.AgentBuilder, len(config.Agents))
		for i, agent := range config.Agents {
			builder, err := tournament.AgentBuilderForStrategy(agent.Strategy, rng)
			if err != nil {
				return err
			}
			builders[i] = builder
		}

		state, err := config.StartingState()
		if err != nil {
			return err
		}

		opts := []tournament.Option{tournament.WithLogger(logger)}
		if config.Tournament.DoubleBlindsEvery > 0 {
			opts = append(opts, tournament.WithDoubleBlindsEvery(config.Tournament.DoubleBlindsEvery))
		}
		if config.Tournament.MaxGames > 0 {
			opts = append(opts, tournament.WithMaxGames(config.Tournament.MaxGames))
		}
		if config.Tournament.PanicOnHistorianError {
			opts = append(opts, tournament.WithPanicOnHistorianError())
		}

		t, err := tournament.New(rng, state, builders, opts...)
		if err != nil {
			return err
		}
		result, err := t.Run()
		if err != nil {
			return err
		}

		for seat, place := range result.Places {
			placeCounts[seat][place]++
		}
		totalHands += result.Hands
		progress.advance(run + 1)
	}
	progress.finish()

	fmt.Println(renderSeriesTable(names, placeCounts, c.Count, totalHands))
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// renderSeriesTable builds the place-distribution summary. Styling degrades
// to plain text on dumb terminals.
func renderSeriesTable(names []string, placeCounts [][]int, runs, totalHands int) string {
	plain := termenv.EnvColorProfile() == termenv.Ascii

	style := func(s lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return s.Render(text)
	}

	var sb strings.Builder
	sb.WriteString(style(headerStyle, fmt.Sprintf("%d tournaments, %d hands total", runs, totalHands)))
	sb.WriteString("\n")

	header := fmt.Sprintf("%-12s %8s", "agent", "wins")
	for place := 2; place <= len(names); place++ {
		header += fmt.Sprintf(" %7s", ordinal(place))
	}
	sb.WriteString(style(headerStyle, header))
	sb.WriteString("\n")

	for seat, name := range names {
		row := fmt.Sprintf("%-12s %8s", name, style(winStyle, fmt.Sprintf("%d", placeCounts[seat][1])))
		for place := 2; place <= len(names); place++ {
			row += fmt.Sprintf(" %7d", placeCounts[seat][place])
		}
		if unplaced := placeCounts[seat][0]; unplaced > 0 {
			row += style(dimStyle, fmt.Sprintf("  (%d unfinished)", unplaced))
		}
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	return sb.String()
}

func ordinal(n int) string {
	switch n % 10 {
	case 2:
		if n%100 != 12 {
			return fmt.Sprintf("%dnd", n)
		}
	case 3:
		if n%100 != 13 {
			return fmt.Sprintf("%drd", n)
		}
	}
	return fmt.Sprintf("%dth", n)
}

func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
