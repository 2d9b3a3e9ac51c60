package scenario

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plannedNodes(n int) []PlannedNode {
	nodes := make([]PlannedNode, n)
	for i := range nodes {
		nodes[i].Name = fmt.Sprintf("n%d", i)
	}
	return nodes
}

func TestGridLayout(t *testing.T) {
	nodes := plannedNodes(4)
	(&GridLayout{}).Place(nodes)

	want := [][2]int{{0, 0}, {150, 0}, {0, 150}, {150, 150}}
	for i, pos := range want {
		assert.Equal(t, pos[0], nodes[i].X, "node %d x", i)
		assert.Equal(t, pos[1], nodes[i].Y, "node %d y", i)
	}
}

func TestGridLayoutCustomSpacing(t *testing.T) {
	nodes := plannedNodes(2)
	(&GridLayout{Spacing: 80}).Place(nodes)
	assert.Equal(t, 80, nodes[1].X)
}

func TestRowLayout(t *testing.T) {
	nodes := plannedNodes(3)
	(&RowLayout{}).Place(nodes)

	for i := range nodes {
		assert.Equal(t, i*150, nodes[i].X)
		assert.Equal(t, 0, nodes[i].Y)
	}
}

func TestCircleLayoutDistinctPositions(t *testing.T) {
	nodes := plannedNodes(6)
	(&CircleLayout{}).Place(nodes)

	seen := make(map[[2]int]bool)
	for i := range nodes {
		pos := [2]int{nodes[i].X, nodes[i].Y}
		assert.False(t, seen[pos], "node %d collides at %v", i, pos)
		seen[pos] = true
	}
	// First node sits on the positive x axis.
	assert.Greater(t, nodes[0].X, 0)
	assert.Equal(t, 0, nodes[0].Y)
}

func TestLayoutFor(t *testing.T) {
	for _, name := range []string{LayoutGrid, LayoutCircle, LayoutRow} {
		strategy, ok := LayoutFor(name)
		require.True(t, ok, name)
		require.NotNil(t, strategy, name)
	}

	_, ok := LayoutFor("spiral")
	assert.False(t, ok)
}

func TestAutoLayoutSkipsHandPlacedNodes(t *testing.T) {
	nodes := plannedNodes(3)
	nodes[2].X = 10

	autoLayout(nodes, LayoutGrid)
	assert.Equal(t, 0, nodes[0].X)
	assert.Equal(t, 0, nodes[1].X)
	assert.Equal(t, 10, nodes[2].X)
}

func TestAutoLayoutEmptyStrategy(t *testing.T) {
	nodes := plannedNodes(2)
	autoLayout(nodes, "")
	assert.Equal(t, 0, nodes[1].X)
}
