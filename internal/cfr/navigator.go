package cfr

import (
	"fmt"

	"github.com/lox/holdem-arena/internal/game"
)

// TreeNavigator advances a cursor through the shared tree as one hand plays
// out. It is attached to the simulation as a historian, so every card dealt
// and every action applied moves the cursor one edge; nodes are materialized
// lazily on first visit.
//
// All traversal states in a hand move in lockstep through the same
// full-history path, so a single navigator serves every CFR agent at the
// table.
type TreeNavigator struct {
	tree *Tree

	// position is the current node; pending is the child slot the next event
	// will descend through. The root's first real event always follows slot 0.
	position int
	pending  int

	// pendingActionSlot carries the acting agent's sampled action index from
	// Act to the PlayerAction record that follows it.
	pendingActionSlot int

	utilities   []float64
	terminalIdx int
}

// NewTreeNavigator creates a navigator positioned at the tree root.
func NewTreeNavigator(tree *Tree) *TreeNavigator {
	return &TreeNavigator{tree: tree, pendingActionSlot: -1, terminalIdx: -1}
}

// Utilities returns the per-seat net chip deltas recorded at the terminal,
// or nil while the hand is still running.
func (n *TreeNavigator) Utilities() []float64 {
	return n.utilities
}

// TerminalIdx returns the terminal node reached by the last hand, or -1.
func (n *TreeNavigator) TerminalIdx() int {
	return n.terminalIdx
}

// Record implements game.Historian. Game start, seat announcements, forced
// bets and round advances are folded into the current node; deals and player
// actions traverse edges.
func (n *TreeNavigator) Record(_ game.HandID, state *game.GameState, record game.Record) error {
	switch rec := record.(type) {
	case game.DealStarting:
		for _, card := range rec.Cards {
			if err := n.descendChance(int(card)); err != nil {
				return err
			}
		}
	case game.DealCommunity:
		for _, card := range rec.Cards {
			if err := n.descendChance(int(card)); err != nil {
				return err
			}
		}
	case game.FailedAction:
		return fmt.Errorf("cfr: action generator produced an illegal action for seat %d: %s",
			rec.Seat, rec.Intended)
	case game.PlayerAction:
		return n.descendPlayer(rec.Seat)
	case game.GameEnd:
		return n.finish(state, rec)
	}
	return nil
}

// descendChance enters the pending child as a chance node and follows the
// card edge.
func (n *TreeNavigator) descendChance(card int) error {
	idx := n.tree.EnsureChild(n.position, n.pending, func() NodeData { return ChanceData{} })
	node := n.tree.Node(idx)
	if _, ok := node.Data.(ChanceData); !ok {
		return fmt.Errorf("cfr: node %d is %s, expected Chance", idx, node.Data)
	}
	node.IncrementCount(card)
	n.position = idx
	n.pending = card
	return nil
}

// descendPlayer enters the pending child as the seat's decision node and
// follows the edge of the action the agent sampled.
func (n *TreeNavigator) descendPlayer(seat int) error {
	slot := n.pendingActionSlot
	if slot < 0 {
		return fmt.Errorf("cfr: seat %d acted without a CFR agent driving it", seat)
	}
	n.pendingActionSlot = -1

	idx := n.tree.EnsureChild(n.position, n.pending, func() NodeData { return &PlayerData{PlayerIdx: seat} })
	node := n.tree.Node(idx)
	data, ok := node.Data.(*PlayerData)
	if !ok {
		return fmt.Errorf("cfr: node %d is %s, expected Player", idx, node.Data)
	}
	if data.PlayerIdx != seat {
		return fmt.Errorf("cfr: node %d belongs to seat %d, got action from seat %d", idx, data.PlayerIdx, seat)
	}
	node.IncrementCount(slot)
	n.position = idx
	n.pending = slot
	return nil
}

// finish materializes the terminal with the realized per-seat utilities.
func (n *TreeNavigator) finish(state *game.GameState, rec game.GameEnd) error {
	utilities := make([]float64, len(rec.Stacks))
	for i, stack := range rec.Stacks {
		utilities[i] = float64(stack - state.StartingStacks[i])
	}

	idx := n.tree.EnsureChild(n.position, n.pending, func() NodeData { return &TerminalData{Utilities: utilities} })
	node := n.tree.Node(idx)
	if _, ok := node.Data.(*TerminalData); !ok {
		return fmt.Errorf("cfr: node %d is %s, expected Terminal", idx, node.Data)
	}
	node.IncrementCount(0)
	n.position = idx
	n.utilities = utilities
	n.terminalIdx = idx
	return nil
}

// decisionNode materializes the node the acting agent is about to decide at
// and returns its index.
func (n *TreeNavigator) decisionNode(playerIdx int) int {
	return n.tree.EnsureChild(n.position, n.pending, func() NodeData { return &PlayerData{PlayerIdx: playerIdx} })
}

// setPendingAction records the acting agent's sampled slot so the
// PlayerAction record that follows can traverse the matching edge.
func (n *TreeNavigator) setPendingAction(slot int) {
	n.pendingActionSlot = slot
}
