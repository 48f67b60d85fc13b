package game

import (
	"fmt"

	"github.com/lox/holdem-arena/poker"
)

// RoundData is the audit snapshot of one betting street, appended when the
// street ends.
type RoundData struct {
	Round      Round `json:"round"`
	Bets       []int `json:"bets"`
	CurrentBet int   `json:"current_bet"`
	MinRaise   int   `json:"min_raise"`
}

// GameState is the authoritative record of a single hand. It is created per
// hand, mutated only by the simulation loop, and snapshotted to historians.
//
// Chips are integers with the smallest chip as the unit, so all pot arithmetic
// is exact.
type GameState struct {
	NumPlayers int `json:"num_players"`
	DealerIdx  int `json:"dealer_idx"`
	SmallBlind int `json:"small_blind"`
	BigBlind   int `json:"big_blind"`
	Ante       int `json:"ante"`

	Stacks         []int `json:"stacks"`
	StartingStacks []int `json:"starting_stacks"`

	// PlayerBet is each seat's total commitment this hand; RoundBet is the
	// commitment on the current street only.
	PlayerBet []int `json:"player_bet"`
	RoundBet  []int `json:"round_bet"`

	CurrentBet int `json:"current_bet"`
	MinRaise   int `json:"min_raise"`

	Hands []poker.Hand `json:"hands"`
	Board poker.Hand   `json:"board"`

	Round    Round  `json:"round"`
	ToActIdx int    `json:"to_act_idx"`
	Folded   []bool `json:"folded"`
	AllIn    []bool `json:"all_in"`

	// Acted marks seats that have acted since the last full raise on the
	// current street. Blinds do not count as acting, which is what gives the
	// big blind its option.
	Acted []bool `json:"acted"`

	RoundData []RoundData `json:"round_data"`
}

// NewGameState builds a validated hand-start state. Seats with a zero stack
// are treated as busted: they are folded from the start, never dealt cards and
// never owe blinds.
func NewGameState(stacks []int, bigBlind, smallBlind, ante, dealerIdx int) (*GameState, error) {
	n := len(stacks)
	if n < 2 || n > 9 {
		return nil, configErrorf("players", "want 2-9 seats, got %d", n)
	}
	if bigBlind < 2 {
		return nil, configErrorf("big_blind", "must be at least 2, got %d", bigBlind)
	}
	if smallBlind < 1 || smallBlind > bigBlind {
		return nil, configErrorf("small_blind", "must be in 1..big_blind, got %d", smallBlind)
	}
	if ante < 0 {
		return nil, configErrorf("ante", "cannot be negative, got %d", ante)
	}
	if dealerIdx < 0 || dealerIdx >= n {
		return nil, configErrorf("dealer_idx", "out of range for %d seats, got %d", n, dealerIdx)
	}

	live := 0
	for _, stack := range stacks {
		if stack < 0 {
			return nil, configErrorf("stacks", "cannot be negative, got %d", stack)
		}
		if stack > 0 {
			live++
		}
	}
	if live < 2 {
		return nil, configErrorf("stacks", "need at least 2 seats with chips, got %d", live)
	}

	g := &GameState{
		NumPlayers:     n,
		DealerIdx:      dealerIdx,
		SmallBlind:     smallBlind,
		BigBlind:       bigBlind,
		Ante:           ante,
		Stacks:         append([]int(nil), stacks...),
		StartingStacks: append([]int(nil), stacks...),
		PlayerBet:      make([]int, n),
		RoundBet:       make([]int, n),
		MinRaise:       bigBlind,
		Hands:          make([]poker.Hand, n),
		Round:          RoundStarting,
		ToActIdx:       dealerIdx,
		Folded:         make([]bool, n),
		AllIn:          make([]bool, n),
		Acted:          make([]bool, n),
	}
	for i, stack := range stacks {
		if stack == 0 {
			g.Folded[i] = true
		}
	}
	return g, nil
}

// Clone returns a deep copy of the state.
func (g *GameState) Clone() *GameState {
	c := *g
	c.Stacks = append([]int(nil), g.Stacks...)
	c.StartingStacks = append([]int(nil), g.StartingStacks...)
	c.PlayerBet = append([]int(nil), g.PlayerBet...)
	c.RoundBet = append([]int(nil), g.RoundBet...)
	c.Folded = append([]bool(nil), g.Folded...)
	c.AllIn = append([]bool(nil), g.AllIn...)
	c.Acted = append([]bool(nil), g.Acted...)
	c.Hands = make([]poker.Hand, len(g.Hands))
	for i, h := range g.Hands {
		c.Hands[i] = h.Clone()
	}
	c.Board = g.Board.Clone()
	c.RoundData = make([]RoundData, len(g.RoundData))
	for i, rd := range g.RoundData {
		c.RoundData[i] = rd
		c.RoundData[i].Bets = append([]int(nil), rd.Bets...)
	}
	return &c
}

// PlayerView returns the slice of state visible to one seat: everything
// except the other seats' hole cards.
func (g *GameState) PlayerView(seat int) *GameState {
	view := g.Clone()
	for i := range view.Hands {
		if i != seat {
			view.Hands[i] = nil
		}
	}
	return view
}

// LiveSeats counts seats that have not folded.
func (g *GameState) LiveSeats() int {
	count := 0
	for i := range g.Folded {
		if !g.Folded[i] {
			count++
		}
	}
	return count
}

// canAct reports whether a seat still makes decisions this hand.
func (g *GameState) canAct(seat int) bool {
	return !g.Folded[seat] && !g.AllIn[seat]
}

// seatAfter returns the next seat clockwise.
func (g *GameState) seatAfter(seat int) int {
	return (seat + 1) % g.NumPlayers
}

// nextLiveSeat returns the first non-folded seat at or after from. Panics if
// none exists; callers check LiveSeats first.
func (g *GameState) nextLiveSeat(from int) int {
	for i := 0; i < g.NumPlayers; i++ {
		seat := (from + i) % g.NumPlayers
		if !g.Folded[seat] {
			return seat
		}
	}
	panic("game: no live seats")
}

// nextActingSeat returns the first seat at or after from that can still act,
// or -1 when betting is closed for everyone.
func (g *GameState) nextActingSeat(from int) int {
	for i := 0; i < g.NumPlayers; i++ {
		seat := (from + i) % g.NumPlayers
		if g.canAct(seat) {
			return seat
		}
	}
	return -1
}

// Complete reports whether the hand has finished.
func (g *GameState) Complete() bool {
	return g.Round == RoundComplete
}

// PotTotal is the number of chips committed by all seats this hand.
func (g *GameState) PotTotal() int {
	total := 0
	for _, bet := range g.PlayerBet {
		total += bet
	}
	return total
}

// AssertInvariants panics if the state violates any structural invariant.
// The simulation calls this at action boundaries when invariant checking is
// enabled; a conforming engine never trips it.
func (g *GameState) AssertInvariants() {
	totalStacks, totalBets, totalStarting := 0, 0, 0
	maxRoundBet := 0
	for i := 0; i < g.NumPlayers; i++ {
		totalStacks += g.Stacks[i]
		totalBets += g.PlayerBet[i]
		totalStarting += g.StartingStacks[i]
		if g.RoundBet[i] < 0 || g.RoundBet[i] > g.PlayerBet[i] {
			panic(fmt.Sprintf("game: seat %d round bet %d outside 0..player bet %d",
				i, g.RoundBet[i], g.PlayerBet[i]))
		}
		if g.RoundBet[i] > maxRoundBet {
			maxRoundBet = g.RoundBet[i]
		}
		// All-in implies an empty stack until the pot is settled; winners get
		// their chips back at Complete.
		if g.AllIn[i] && g.Stacks[i] != 0 && g.Round != RoundComplete {
			panic(fmt.Sprintf("game: seat %d all-in with %d chips behind", i, g.Stacks[i]))
		}
	}
	if totalStacks+totalBets != totalStarting {
		panic(fmt.Sprintf("game: chip conservation broken: stacks %d + bets %d != starting %d",
			totalStacks, totalBets, totalStarting))
	}
	if g.Round.IsBetting() && g.CurrentBet < maxRoundBet {
		panic(fmt.Sprintf("game: current bet %d below max round bet %d", g.CurrentBet, maxRoundBet))
	}
	// A street's community cards are dealt when its step begins, so the board
	// holds either this street's cards or, between the previous street's end
	// and that deal, the previous street's. Showdown and Complete are
	// excluded: a hand that ends on folds never deals the remaining board.
	if g.Round >= RoundFlop && g.Round <= RoundRiver {
		if size := len(g.Board); size != g.Round.BoardSize() && size != (g.Round-1).BoardSize() {
			panic(fmt.Sprintf("game: board size %d in %s, want %d", size, g.Round, g.Round.BoardSize()))
		}
	}
}
