package tournament

import (
	"fmt"
	rand "math/rand/v2"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-arena/internal/game"
)

// Config is the HCL description of a tournament: one tournament block plus
// one agent block per seat.
//
//	tournament {
//	  small_blind    = 5
//	  big_blind      = 10
//	  starting_stack = 500
//	  double_blinds_every = 25
//	}
//
//	agent "alice" { strategy = "random" }
//	agent "bob"   { strategy = "calling" }
type Config struct {
	Tournament TournamentConfig `hcl:"tournament,block"`
	Agents     []AgentConfig    `hcl:"agent,block"`
}

// TournamentConfig holds table-level settings.
type TournamentConfig struct {
	SmallBlind            int   `hcl:"small_blind"`
	BigBlind              int   `hcl:"big_blind"`
	Ante                  int   `hcl:"ante,optional"`
	StartingStack         int   `hcl:"starting_stack"`
	Dealer                int   `hcl:"dealer,optional"`
	DoubleBlindsEvery     int   `hcl:"double_blinds_every,optional"`
	MaxGames              int   `hcl:"max_games,optional"`
	PanicOnHistorianError bool  `hcl:"panic_on_historian_error,optional"`
	Seed                  int64 `hcl:"seed,optional"`
}

// AgentConfig names a seat and its strategy.
type AgentConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
}

// DefaultConfig returns a two-seat random-vs-calling setup for quick runs.
func DefaultConfig() *Config {
	return &Config{
		Tournament: TournamentConfig{
			SmallBlind:    5,
			BigBlind:      10,
			StartingStack: 500,
			Seed:          1,
		},
		Agents: []AgentConfig{
			{Name: "random", Strategy: "random"},
			{Name: "calling", Strategy: "calling"},
		},
	}
}

// LoadConfig parses an HCL tournament config file.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", path, diags.Error())
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects configurations the engine would refuse anyway, with
// friendlier messages.
func (c *Config) Validate() error {
	if len(c.Agents) < 2 || len(c.Agents) > 9 {
		return fmt.Errorf("want 2-9 agent blocks, got %d", len(c.Agents))
	}
	for _, agent := range c.Agents {
		if _, err := AgentBuilderForStrategy(agent.Strategy, nil); err != nil {
			return fmt.Errorf("agent %q: %w", agent.Name, err)
		}
	}
	if c.Tournament.StartingStack <= 0 {
		return fmt.Errorf("starting_stack must be positive, got %d", c.Tournament.StartingStack)
	}
	return nil
}

// StartingState builds the initial GameState the config describes.
func (c *Config) StartingState() (*game.GameState, error) {
	stacks := make([]int, len(c.Agents))
	for i := range stacks {
		stacks[i] = c.Tournament.StartingStack
	}
	return game.NewGameState(stacks, c.Tournament.BigBlind, c.Tournament.SmallBlind,
		c.Tournament.Ante, c.Tournament.Dealer)
}

// AgentBuilderForStrategy maps a strategy name to a builder. The rng may be
// nil for validation-only calls.
func AgentBuilderForStrategy(strategy string, rng *rand.Rand) (AgentBuilder, error) {
	switch strategy {
	case "folding":
		return AgentBuilderFunc(func(*game.GameState, int) game.Agent {
			return game.FoldingAgent{}
		}), nil
	case "calling":
		return AgentBuilderFunc(func(*game.GameState, int) game.Agent {
			return game.CallingAgent{}
		}), nil
	case "allin":
		return AgentBuilderFunc(func(*game.GameState, int) game.Agent {
			return game.AllInAgent{}
		}), nil
	case "random":
		return AgentBuilderFunc(func(*game.GameState, int) game.Agent {
			return game.NewRandomAgent(rng)
		}), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want folding, calling, allin or random)", strategy)
	}
}
