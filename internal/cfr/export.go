package cfr

import (
	"fmt"
	"io"

	"github.com/lox/holdem-arena/poker"
)

// WriteDOT renders the tree as a Graphviz digraph for debugging. Node labels
// carry the payload kind; edge labels carry the child slot (a card for
// chance edges) and its traversal count.
func WriteDOT(w io.Writer, tree *Tree) error {
	if _, err := fmt.Fprintln(w, "digraph cfr {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  node [shape=box, fontsize=10];"); err != nil {
		return err
	}

	for idx := 0; idx < tree.Len(); idx++ {
		node := tree.Node(idx)
		label := node.Data.String()
		switch data := node.Data.(type) {
		case *PlayerData:
			label = fmt.Sprintf("Player %d", data.PlayerIdx)
		case *TerminalData:
			label = fmt.Sprintf("Terminal %v", data.Utilities)
		}
		if _, err := fmt.Fprintf(w, "  n%d [label=\"%d: %s\"];\n", idx, idx, label); err != nil {
			return err
		}

		_, isChance := node.Data.(ChanceData)
		for _, pair := range node.ChildSlots() {
			slot, child := pair[0], pair[1]
			edge := fmt.Sprintf("%d", slot)
			if isChance {
				edge = poker.Card(slot).Notation()
			}
			if _, err := fmt.Fprintf(w, "  n%d -> n%d [label=\"%s (%d)\"];\n",
				idx, child, edge, node.Count(slot)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
