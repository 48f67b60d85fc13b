// Package cfr implements the shared counterfactual-regret game tree used by
// agents that replay the same hand many times to learn a strategy.
//
// The tree is a dense arena: nodes are owned by a single container, node
// identity is an index, and every child reference is a forward index, so no
// cyclic ownership arises and references survive arena growth.
package cfr

import "fmt"

// maxChildren is the width of a node's child array. Chance nodes index
// children by card id (0..51); player nodes by action index, which the
// action generator keeps far below this bound.
const maxChildren = 52

// NodeData is the payload of a tree node: exactly one of Root, Chance,
// Player or Terminal.
type NodeData interface {
	nodeData()
	String() string
}

// RootData marks the root. Game start, forced bets and seat announcements
// are all folded into the root; traversal follows slot 0 for the first real
// event.
type RootData struct{}

func (RootData) nodeData()      {}
func (RootData) String() string { return "Root" }

// ChanceData marks a dealing point. Each child slot is a card id and the
// slot counts track how often each card came off the deck.
type ChanceData struct{}

func (ChanceData) nodeData()      {}
func (ChanceData) String() string { return "Chance" }

// PlayerData marks a decision point for one seat. The regret matcher is
// created lazily the first time the owning agent acts here, with arity equal
// to the action generator's count for the state.
type PlayerData struct {
	PlayerIdx     int
	RegretMatcher *RegretMatcher
}

func (*PlayerData) nodeData()      {}
func (*PlayerData) String() string { return "Player" }

// TerminalData carries the per-seat net chip change realized at hand end.
type TerminalData struct {
	Utilities []float64
}

func (*TerminalData) nodeData()      {}
func (*TerminalData) String() string { return "Terminal" }

// Node is one arena entry. Children are keyed by card id on chance nodes and
// by action index on player nodes; a slot is written at most once.
type Node struct {
	Idx            int
	Parent         int
	ParentChildIdx int
	Data           NodeData

	children [maxChildren]int
	counts   [maxChildren]uint32
}

func newNode(idx, parent, parentChildIdx int, data NodeData) Node {
	n := Node{Idx: idx, Parent: parent, ParentChildIdx: parentChildIdx, Data: data}
	for i := range n.children {
		n.children[i] = -1
	}
	return n
}

// Child returns the node index at the slot, or false when the slot is empty.
func (n *Node) Child(slot int) (int, bool) {
	if n.children[slot] < 0 {
		return 0, false
	}
	return n.children[slot], true
}

// setChild installs a child at the slot. Slots are monotonically
// first-written; occupying a filled slot is a programmer error.
func (n *Node) setChild(slot, child int) {
	if n.children[slot] >= 0 {
		panic(fmt.Sprintf("cfr: node %d slot %d already occupied by %d", n.Idx, slot, n.children[slot]))
	}
	n.children[slot] = child
}

// IncrementCount bumps the traversal counter for the slot, used for strategy
// averaging and export.
func (n *Node) IncrementCount(slot int) {
	n.counts[slot]++
}

// Count returns the traversal counter for the slot.
func (n *Node) Count(slot int) uint32 {
	return n.counts[slot]
}

// ChildSlots returns the occupied (slot, childIdx) pairs in slot order.
func (n *Node) ChildSlots() [][2]int {
	var out [][2]int
	for slot, child := range n.children {
		if child >= 0 {
			out = append(out, [2]int{slot, child})
		}
	}
	return out
}
