// Package equity estimates showdown equity by Monte Carlo: deal random
// opponent holes and runouts, evaluate everyone and count wins and ties.
package equity

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-arena/internal/randutil"
	"github.com/lox/holdem-arena/poker"
)

// Request describes one equity calculation.
type Request struct {
	Hole       []poker.Card
	Board      []poker.Card
	Opponents  int
	Iterations int
	Seed       int64
	Workers    int
}

// Result is the outcome of a Monte Carlo equity run.
type Result struct {
	Iterations int
	Wins       int
	Ties       int
}

// WinProbability is the fraction of runouts the hero won outright.
func (r *Result) WinProbability() float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Iterations)
}

// TieProbability is the fraction of runouts the hero chopped.
func (r *Result) TieProbability() float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Ties) / float64(r.Iterations)
}

// Calculate runs the simulation across a worker pool. Each worker draws from
// its own deterministic RNG derived from the request seed, so results are
// reproducible for a fixed worker count.
func Calculate(ctx context.Context, req Request) (*Result, error) {
	if len(req.Hole) != 2 {
		return nil, fmt.Errorf("equity: want 2 hole cards, got %d", len(req.Hole))
	}
	if len(req.Board) > 5 {
		return nil, fmt.Errorf("equity: board cannot exceed 5 cards, got %d", len(req.Board))
	}
	if req.Opponents < 1 || req.Opponents > 8 {
		return nil, fmt.Errorf("equity: want 1-8 opponents, got %d", req.Opponents)
	}
	if req.Iterations <= 0 {
		return nil, fmt.Errorf("equity: iterations must be positive, got %d", req.Iterations)
	}
	var seen uint64
	for _, c := range append(append([]poker.Card(nil), req.Hole...), req.Board...) {
		if seen&(1<<uint(c)) != 0 {
			return nil, fmt.Errorf("equity: duplicate card %s", c)
		}
		seen |= 1 << uint(c)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > req.Iterations {
		workers = req.Iterations
	}

	var mu sync.Mutex
	total := &Result{}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		iterations := req.Iterations / workers
		if w < req.Iterations%workers {
			iterations++
		}
		worker := w

		g.Go(func() error {
			rng := randutil.Derive(req.Seed, worker)
			local := Result{}
			for i := 0; i < iterations; i++ {
				if i%1024 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				win, tie := simulateOnce(rng, req)
				local.Iterations++
				if win {
					local.Wins++
				} else if tie {
					local.Ties++
				}
			}
			mu.Lock()
			total.Iterations += local.Iterations
			total.Wins += local.Wins
			total.Ties += local.Ties
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return total, nil
}

func simulateOnce(rng *rand.Rand, req Request) (win, tie bool) {
	deck := poker.NewDeck(rng)
	deck.Remove(req.Hole...)
	deck.Remove(req.Board...)

	board := append(poker.NewHand(req.Board...), deck.DealN(5-len(req.Board))...)

	hero := poker.Evaluate(append(poker.NewHand(req.Hole...), board...))

	best := hero
	winners := 1
	heroBest := true
	for opp := 0; opp < req.Opponents; opp++ {
		hole := deck.DealN(2)
		rank := poker.Evaluate(append(poker.NewHand(hole...), board...))
		switch {
		case rank > best:
			best = rank
			winners = 1
			heroBest = false
		case rank == best:
			winners++
		}
	}

	if heroBest && winners == 1 {
		return true, false
	}
	if heroBest && winners > 1 {
		return false, true
	}
	return false, false
}
