package game

import "fmt"

// postedBet is a forced contribution taken from a seat, reported back to the
// simulation so it can emit the matching ForcedBet record.
type postedBet struct {
	kind   ForcedBetKind
	seat   int
	amount int
}

// actionOutcome is the result of pushing one agent decision through
// validation.
type actionOutcome struct {
	intended Action
	applied  Action
	legal    bool
}

// startRound advances to the next round and resets per-street betting state.
func (g *GameState) startRound() {
	g.Round = g.Round.next()
	if !g.Round.IsBetting() {
		return
	}
	for i := range g.RoundBet {
		g.RoundBet[i] = 0
		g.Acted[i] = false
	}
	g.CurrentBet = 0
	g.MinRaise = g.BigBlind

	if g.Round == RoundPreflop {
		// First to act preflop is resolved after the blinds are posted.
		return
	}
	g.ToActIdx = g.nextActingSeat(g.seatAfter(g.DealerIdx))
}

// finishRound snapshots the street into RoundData for auditability.
func (g *GameState) finishRound() {
	if !g.Round.IsBetting() {
		return
	}
	g.RoundData = append(g.RoundData, RoundData{
		Round:      g.Round,
		Bets:       append([]int(nil), g.RoundBet...),
		CurrentBet: g.CurrentBet,
		MinRaise:   g.MinRaise,
	})
}

// postAntes takes min(ante, stack) from every live seat. Ante contributions
// count toward the hand commitment but not the street bet; the ante round has
// no betting.
func (g *GameState) postAntes() []postedBet {
	if g.Ante <= 0 {
		return nil
	}
	var posted []postedBet
	seat := g.nextLiveSeat(g.seatAfter(g.DealerIdx))
	for i := 0; i < g.NumPlayers; i++ {
		idx := (seat + i) % g.NumPlayers
		if g.Folded[idx] {
			continue
		}
		amount := min(g.Ante, g.Stacks[idx])
		if amount == 0 {
			continue
		}
		g.Stacks[idx] -= amount
		g.PlayerBet[idx] += amount
		if g.Stacks[idx] == 0 {
			g.AllIn[idx] = true
		}
		posted = append(posted, postedBet{kind: ForcedBetAnte, seat: idx, amount: amount})
	}
	return posted
}

// blindSeats resolves the small and big blind positions, skipping busted
// seats. Heads-up the dealer posts the small blind.
func (g *GameState) blindSeats() (sb, bb int) {
	if g.LiveSeats() == 2 {
		sb = g.nextLiveSeat(g.DealerIdx)
		bb = g.nextLiveSeat(g.seatAfter(sb))
		return sb, bb
	}
	sb = g.nextLiveSeat(g.seatAfter(g.DealerIdx))
	bb = g.nextLiveSeat(g.seatAfter(sb))
	return sb, bb
}

// postBlinds posts the blinds on entering preflop and sets the betting
// baseline: the current bet is the full big blind even when the poster is
// short, and the minimum raise starts at one big blind.
func (g *GameState) postBlinds() []postedBet {
	sbSeat, bbSeat := g.blindSeats()

	posted := make([]postedBet, 0, 2)
	post := func(kind ForcedBetKind, seat, blind int) {
		amount := min(blind, g.Stacks[seat])
		if amount == 0 {
			// Already all-in from the ante; nothing to post.
			return
		}
		g.Stacks[seat] -= amount
		g.RoundBet[seat] += amount
		g.PlayerBet[seat] += amount
		if g.Stacks[seat] == 0 {
			g.AllIn[seat] = true
		}
		posted = append(posted, postedBet{kind: kind, seat: seat, amount: amount})
	}
	post(ForcedBetSmallBlind, sbSeat, g.SmallBlind)
	post(ForcedBetBigBlind, bbSeat, g.BigBlind)

	g.CurrentBet = g.BigBlind
	g.MinRaise = g.BigBlind
	g.ToActIdx = g.nextActingSeat(g.seatAfter(bbSeat))
	return posted
}

// roundComplete reports whether the current street's betting is closed: every
// seat that can still act has matched the current bet and acted since the
// last full raise.
func (g *GameState) roundComplete() bool {
	if !g.Round.IsBetting() {
		return true
	}
	for seat := 0; seat < g.NumPlayers; seat++ {
		if !g.canAct(seat) {
			continue
		}
		if g.RoundBet[seat] != g.CurrentBet || !g.Acted[seat] {
			return false
		}
	}
	return true
}

// applyAction validates and applies one agent decision for the seat. Illegal
// decisions never propagate: an under-call is applied as a fold, an undersize
// non-all-in raise is coerced to a call, and both are reported as illegal so
// the simulation emits a FailedAction record.
func (g *GameState) applyAction(seat int, intended Action) actionOutcome {
	if !g.canAct(seat) {
		panic(fmt.Sprintf("game: action from seat %d which cannot act", seat))
	}

	out := actionOutcome{intended: intended, legal: true}
	switch intended.Kind {
	case ActionFold:
		g.Folded[seat] = true
		out.applied = Fold()
	case ActionCall:
		out.applied = g.applyBet(seat, g.CurrentBet, &out.legal)
	case ActionAllIn:
		out.applied = g.applyBet(seat, g.RoundBet[seat]+g.Stacks[seat], &out.legal)
	case ActionBet:
		out.applied = g.applyBet(seat, intended.Amount, &out.legal)
	default:
		// Unknown decisions are treated like any other illegal action.
		g.Folded[seat] = true
		out.applied = Fold()
		out.legal = false
	}

	g.Acted[seat] = true
	return out
}

// applyBet applies Bet(total) semantics: total is the absolute street
// commitment the seat is moving to.
func (g *GameState) applyBet(seat, total int, legal *bool) Action {
	allInTotal := g.RoundBet[seat] + g.Stacks[seat]

	switch {
	case total >= allInTotal:
		// The seat is committing its whole stack. An all-in that raises by
		// less than the minimum raise is a short raise: it does not re-open
		// the action for seats that already matched the current bet, and the
		// minimum raise is left untouched.
		g.commit(seat, allInTotal)
		if allInTotal > g.CurrentBet {
			if delta := allInTotal - g.CurrentBet; delta >= g.MinRaise {
				g.MinRaise = delta
				g.reopenAction(seat)
			}
			g.CurrentBet = allInTotal
		}
		return Action{Kind: ActionAllIn, Amount: allInTotal}

	case total < g.CurrentBet:
		// Betting below the current bet with chips behind is an under-call.
		*legal = false
		g.Folded[seat] = true
		return Fold()

	case total == g.CurrentBet:
		g.commit(seat, total)
		return Call()

	case total < g.CurrentBet+g.MinRaise:
		// Undersize raise with chips behind: coerced to a call.
		*legal = false
		g.commit(seat, g.CurrentBet)
		return Call()

	default:
		g.MinRaise = total - g.CurrentBet
		g.CurrentBet = total
		g.commit(seat, total)
		g.reopenAction(seat)
		return Bet(total)
	}
}

// commit moves the seat's street commitment up to total, transferring the
// difference from its stack.
func (g *GameState) commit(seat, total int) {
	delta := total - g.RoundBet[seat]
	if delta < 0 || delta > g.Stacks[seat] {
		panic(fmt.Sprintf("game: seat %d cannot commit %d with round bet %d and stack %d",
			seat, total, g.RoundBet[seat], g.Stacks[seat]))
	}
	g.Stacks[seat] -= delta
	g.RoundBet[seat] = total
	g.PlayerBet[seat] += delta
	if g.Stacks[seat] == 0 {
		g.AllIn[seat] = true
	}
}

// reopenAction clears the acted bits after a full raise so every other seat
// gets to respond.
func (g *GameState) reopenAction(raiser int) {
	for i := range g.Acted {
		g.Acted[i] = false
	}
	g.Acted[raiser] = true
}
