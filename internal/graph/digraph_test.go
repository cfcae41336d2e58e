package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDigraphConstruction(t *testing.T) {
	g := NewListDigraph()
	assert.Equal(t, 0, g.NodeNum())
	assert.Equal(t, Invalid, g.MaxNodeID())
	assert.Equal(t, Invalid, g.FirstNode())
	assert.Equal(t, Invalid, g.FirstArc())

	first := g.AddNodes(3)
	assert.Equal(t, 0, first)
	assert.Equal(t, 3, g.NodeNum())
	assert.Equal(t, 2, g.MaxNodeID())

	a := g.AddArc(0, 1)
	b := g.AddArc(0, 2)
	c := g.AddArc(1, 2)
	loop := g.AddArc(2, 2)
	assert.Equal(t, []int{0, 1, 2, 3}, []int{a, b, c, loop})
	assert.Equal(t, 4, g.ArcNum())
	assert.Equal(t, 3, g.MaxArcID())

	assert.Equal(t, 0, g.Source(a))
	assert.Equal(t, 1, g.Target(a))
	assert.Equal(t, 2, g.Source(loop))
	assert.Equal(t, 2, g.Target(loop))
}

func collectOut(g Digraph, node int) []int {
	var arcs []int
	for a := g.FirstOut(node); a != Invalid; a = g.NextOut(a) {
		arcs = append(arcs, a)
	}
	return arcs
}

func collectIn(g Digraph, node int) []int {
	var arcs []int
	for a := g.FirstIn(node); a != Invalid; a = g.NextIn(a) {
		arcs = append(arcs, a)
	}
	return arcs
}

func TestListDigraphIncidenceIteration(t *testing.T) {
	g := NewListDigraph()
	g.AddNodes(4)
	a01 := g.AddArc(0, 1)
	a02 := g.AddArc(0, 2)
	a21 := g.AddArc(2, 1)
	a01b := g.AddArc(0, 1) // parallel arc

	assert.ElementsMatch(t, []int{a01, a02, a01b}, collectOut(g, 0))
	assert.ElementsMatch(t, []int{a01, a21, a01b}, collectIn(g, 1))
	assert.Empty(t, collectOut(g, 3))
	assert.Empty(t, collectIn(g, 3))

	// Incidence iteration is stable for one graph instance.
	assert.Equal(t, collectOut(g, 0), collectOut(g, 0))

	total := 0
	for n := g.FirstNode(); n != Invalid; n = g.NextNode(n) {
		total += len(collectOut(g, n))
	}
	assert.Equal(t, g.ArcNum(), total)
}

func TestListDigraphFindArc(t *testing.T) {
	g := NewListDigraph()
	g.AddNodes(3)
	a := g.AddArc(0, 1)
	g.AddArc(0, 2)
	b := g.AddArc(0, 1)

	// Both parallel arcs are enumerated exactly once, then the sentinel.
	first := FindArc(g, 0, 1, Invalid)
	require.NotEqual(t, Invalid, first)
	second := FindArc(g, 0, 1, first)
	require.NotEqual(t, Invalid, second)
	assert.ElementsMatch(t, []int{a, b}, []int{first, second})
	assert.Equal(t, Invalid, FindArc(g, 0, 1, second))

	assert.Equal(t, Invalid, FindArc(g, 1, 0, Invalid))
	assert.Equal(t, Invalid, FindArc(g, 2, 1, Invalid))
}
