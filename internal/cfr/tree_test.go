package cfr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTreeHasRoot(t *testing.T) {
	tree := NewTree()
	require.Equal(t, 1, tree.Len())

	root := tree.Root()
	assert.Equal(t, 0, root.Idx)
	assert.Equal(t, 0, root.Parent)
	assert.IsType(t, RootData{}, root.Data)
}

func TestAddInstallsChild(t *testing.T) {
	tree := NewTree()
	chance := tree.Add(0, 0, ChanceData{})
	player := tree.Add(chance, 17, &PlayerData{PlayerIdx: 1})

	got, ok := tree.Node(0).Child(0)
	require.True(t, ok)
	assert.Equal(t, chance, got)

	got, ok = tree.Node(chance).Child(17)
	require.True(t, ok)
	assert.Equal(t, player, got)

	node := tree.Node(player)
	assert.Equal(t, chance, node.Parent)
	assert.Equal(t, 17, node.ParentChildIdx)

	_, ok = tree.Node(chance).Child(3)
	assert.False(t, ok)
}

func TestAddPanicsOnOccupiedSlot(t *testing.T) {
	tree := NewTree()
	tree.Add(0, 0, ChanceData{})
	assert.Panics(t, func() { tree.Add(0, 0, ChanceData{}) })
}

func TestEnsureChildIsIdempotent(t *testing.T) {
	tree := NewTree()
	a := tree.EnsureChild(0, 0, func() NodeData { return ChanceData{} })
	b := tree.EnsureChild(0, 0, func() NodeData { return ChanceData{} })
	assert.Equal(t, a, b)
	assert.Equal(t, 2, tree.Len())
}

func TestChildIndicesIncreaseFromParent(t *testing.T) {
	// Property 6: children always allocate after their parents, so the
	// arena is topologically ordered by index.
	tree := NewTree()
	current := 0
	for slot := 0; slot < 30; slot++ {
		current = tree.Add(current, slot%maxChildren, ChanceData{})
	}

	for idx := 1; idx < tree.Len(); idx++ {
		node := tree.Node(idx)
		assert.Less(t, node.Parent, idx)
		for _, pair := range node.ChildSlots() {
			assert.Greater(t, pair[1], idx)
		}
	}
}

func TestCounts(t *testing.T) {
	tree := NewTree()
	node := tree.Node(tree.Add(0, 0, ChanceData{}))
	assert.Equal(t, uint32(0), node.Count(5))
	node.IncrementCount(5)
	node.IncrementCount(5)
	assert.Equal(t, uint32(2), node.Count(5))
}

func TestWriteDOT(t *testing.T) {
	tree := NewTree()
	chance := tree.Add(0, 0, ChanceData{})
	tree.Node(chance).IncrementCount(12)
	terminal := tree.Add(chance, 12, &TerminalData{Utilities: []float64{5, -5}})
	_ = terminal

	var sb strings.Builder
	require.NoError(t, WriteDOT(&sb, tree))
	out := sb.String()
	assert.Contains(t, out, "digraph cfr")
	assert.Contains(t, out, "Chance")
	assert.Contains(t, out, "Terminal")
	// Chance edges are labeled with the card (slot 12 = ace of spades).
	assert.Contains(t, out, "As (1)")
}
