package game

import (
	"sort"

	"github.com/lox/holdem-arena/poker"
)

// potAward is one seat's share of the pot, computed at hand end.
type potAward struct {
	seat   int
	amount int
	rank   *poker.HandRank
}

// awardPots slices the total commitments into horizontal layers and awards
// each layer to the best-ranked eligible seat(s) at that layer. ranks maps
// non-folded seats to their showdown rank; it is nil when the hand ended on
// folds, in which case the single live seat takes everything.
//
// Each layer runs between two consecutive distinct commitment levels and is
// funded by every seat that committed at least the lower level, folded seats
// included. Ties split the layer; indivisible chips go to the first tied seat
// clockwise from the dealer.
func (g *GameState) awardPots(ranks map[int]poker.HandRank) []potAward {
	levels := make([]int, 0, g.NumPlayers)
	seen := make(map[int]bool, g.NumPlayers)
	for _, bet := range g.PlayerBet {
		if bet > 0 && !seen[bet] {
			seen[bet] = true
			levels = append(levels, bet)
		}
	}
	sort.Ints(levels)

	totals := make(map[int]int, g.NumPlayers)
	bestRanks := make(map[int]*poker.HandRank, g.NumPlayers)

	prev := 0
	for _, level := range levels {
		amount := 0
		for _, bet := range g.PlayerBet {
			if bet > prev {
				amount += min(bet, level) - prev
			}
		}

		var eligible []int
		for seat := 0; seat < g.NumPlayers; seat++ {
			if !g.Folded[seat] && g.PlayerBet[seat] >= level {
				eligible = append(eligible, seat)
			}
		}
		if amount == 0 {
			prev = level
			continue
		}
		if len(eligible) == 0 {
			// Every contributor at this layer folded, so the chips have no
			// contestant. Return them to their owners; this is what makes an
			// uncalled raise come back when everyone folds behind.
			for seat, bet := range g.PlayerBet {
				if bet > prev {
					totals[seat] += min(bet, level) - prev
				}
			}
			prev = level
			continue
		}
		prev = level

		winners, rank := g.layerWinners(eligible, ranks)
		share := amount / len(winners)
		dust := amount % len(winners)
		for _, seat := range winners {
			award := share
			if dust > 0 {
				// Winners are ordered clockwise from the dealer, so the first
				// one collects the odd chips.
				award += dust
				dust = 0
			}
			totals[seat] += award
			if rank != nil {
				bestRanks[seat] = rank
			}
		}
	}

	awards := make([]potAward, 0, len(totals))
	seat := g.seatAfter(g.DealerIdx)
	for i := 0; i < g.NumPlayers; i++ {
		idx := (seat + i) % g.NumPlayers
		if amount, ok := totals[idx]; ok {
			awards = append(awards, potAward{seat: idx, amount: amount, rank: bestRanks[idx]})
		}
	}
	return awards
}

// layerWinners returns the eligible seats holding the best rank, ordered
// clockwise from the dealer, along with that rank. Without showdown ranks the
// single eligible seat wins outright.
func (g *GameState) layerWinners(eligible []int, ranks map[int]poker.HandRank) ([]int, *poker.HandRank) {
	if ranks == nil {
		return eligible, nil
	}

	best := poker.HandRank(0)
	found := false
	for _, seat := range eligible {
		rank, ok := ranks[seat]
		if !ok {
			continue
		}
		if !found || rank > best {
			best = rank
			found = true
		}
	}
	if !found {
		return eligible, nil
	}

	var winners []int
	start := g.seatAfter(g.DealerIdx)
	for i := 0; i < g.NumPlayers; i++ {
		seat := (start + i) % g.NumPlayers
		if g.Folded[seat] || g.PlayerBet[seat] == 0 {
			continue
		}
		if rank, ok := ranks[seat]; ok && rank == best && contains(eligible, seat) {
			winners = append(winners, seat)
		}
	}
	return winners, &best
}

func contains(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}
