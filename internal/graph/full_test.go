package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDigraphCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 9} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			g := NewFullDigraph(n)
			assert.Equal(t, n, g.NodeNum())
			assert.Equal(t, n*n, g.ArcNum())
			assert.Equal(t, n-1, g.MaxNodeID())
			assert.Equal(t, n*n-1, g.MaxArcID())

			nodes := 0
			for u := g.FirstNode(); u != Invalid; u = g.NextNode(u) {
				nodes++
			}
			assert.Equal(t, n, nodes)

			arcs := 0
			for a := g.FirstArc(); a != Invalid; a = g.NextArc(a) {
				arcs++
			}
			assert.Equal(t, n*n, arcs)
		})
	}
}

func TestFullDigraphEncoding(t *testing.T) {
	g := NewFullDigraph(6)

	// Arc ids round-trip through the endpoints, and Arc is their inverse.
	for a := 0; a < g.ArcNum(); a++ {
		s, tt := g.Source(a), g.Target(a)
		assert.Equal(t, a, g.Arc(s, tt))
		assert.Equal(t, a, s*6+tt)
	}

	// Out-arcs of s are exactly the contiguous ids s*N .. s*N+N-1.
	for s := 0; s < 6; s++ {
		want := make([]int, 0, 6)
		for tt := 0; tt < 6; tt++ {
			want = append(want, s*6+tt)
		}
		assert.Equal(t, want, collectOut(g, s))
	}

	// In-arcs of t step by N.
	for tt := 0; tt < 6; tt++ {
		in := collectIn(g, tt)
		require.Len(t, in, 6)
		for _, a := range in {
			assert.Equal(t, tt, g.Target(a))
		}
	}

	assert.Equal(t, Invalid, g.Node(6))
	assert.Equal(t, 3, g.Node(3))
}

func TestFullDigraphFindArc(t *testing.T) {
	g := NewFullDigraph(4)
	a := FindArc(g, 1, 3, Invalid)
	assert.Equal(t, g.Arc(1, 3), a)
	assert.Equal(t, Invalid, FindArc(g, 1, 3, a))

	// Self-loops exist in the complete digraph.
	loop := FindArc(g, 2, 2, Invalid)
	assert.Equal(t, g.Arc(2, 2), loop)
}

func TestFullGraphCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 6, 7} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			g := NewFullGraph(n)
			edges := n * (n - 1) / 2
			assert.Equal(t, n, g.NodeNum())
			assert.Equal(t, edges, g.EdgeNum())
			assert.Equal(t, 2*edges, g.ArcNum())

			count := 0
			for e := g.FirstEdge(); e != Invalid; e = g.NextEdge(e) {
				count++
			}
			assert.Equal(t, edges, count)

			count = 0
			for a := g.FirstArc(); a != Invalid; a = g.NextArc(a) {
				count++
			}
			assert.Equal(t, 2*edges, count)
		})
	}
}

func TestFullGraphEdgeEncoding(t *testing.T) {
	for _, n := range []int{2, 3, 6, 7} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			g := NewFullGraph(n)

			// Every unordered pair maps to a distinct edge id in range,
			// and the endpoint decoding inverts the encoding.
			seen := make(map[int]bool)
			for u := 0; u < n; u++ {
				for v := u + 1; v < n; v++ {
					e := g.Edge(u, v)
					require.GreaterOrEqual(t, e, 0)
					require.Less(t, e, g.EdgeNum())
					require.False(t, seen[e], "edge id %d assigned twice", e)
					seen[e] = true
					assert.Equal(t, u, g.U(e))
					assert.Equal(t, v, g.V(e))
					assert.Equal(t, e, g.Edge(v, u))
				}
			}

			assert.Equal(t, Invalid, g.Edge(1, 1))
		})
	}
}

func TestFullGraphArcEncoding(t *testing.T) {
	g := NewFullGraph(7)

	for a := 0; a < g.ArcNum(); a++ {
		s, tt := g.Source(a), g.Target(a)
		require.NotEqual(t, s, tt)
		assert.Equal(t, a, g.Arc(s, tt), "round-trip of arc %d", a)

		// The two directed arcs of an edge share the id's high bits.
		edge := a >> 1
		assert.Equal(t, g.Edge(s, tt), edge)
		assert.Equal(t, a, g.Direct(edge, g.Direction(a)))
	}

	// Opposite arcs are distinct and connect the same pair.
	for e := 0; e < g.EdgeNum(); e++ {
		fwd, bwd := g.Direct(e, true), g.Direct(e, false)
		assert.NotEqual(t, fwd, bwd)
		assert.Equal(t, g.Source(fwd), g.Target(bwd))
		assert.Equal(t, g.Target(fwd), g.Source(bwd))
	}

	assert.Equal(t, Invalid, g.Arc(3, 3))
}

func TestFullGraphIncidenceIteration(t *testing.T) {
	g := NewFullGraph(6)

	for u := 0; u < 6; u++ {
		out := collectOut(g, u)
		require.Len(t, out, 5, "out-degree of node %d", u)
		targets := make(map[int]bool)
		for _, a := range out {
			assert.Equal(t, u, g.Source(a))
			targets[g.Target(a)] = true
		}
		assert.Len(t, targets, 5)

		in := collectIn(g, u)
		require.Len(t, in, 5, "in-degree of node %d", u)
		for _, a := range in {
			assert.Equal(t, u, g.Target(a))
		}
	}

	// Every arc occurs in exactly one out-list.
	total := 0
	for u := 0; u < 6; u++ {
		total += len(collectOut(g, u))
	}
	assert.Equal(t, g.ArcNum(), total)
}

func TestFullGraphFind(t *testing.T) {
	g := NewFullGraph(5)

	a := FindArc(g, 4, 1, Invalid)
	assert.Equal(t, g.Arc(4, 1), a)
	assert.Equal(t, Invalid, FindArc(g, 4, 1, a))

	e := g.FindEdge(2, 0, Invalid)
	assert.Equal(t, g.Edge(0, 2), e)
	assert.Equal(t, Invalid, g.FindEdge(2, 0, e))

	assert.Equal(t, Invalid, g.FindEdge(3, 3, Invalid))
	assert.Equal(t, Invalid, FindArc(g, 3, 3, Invalid))
}
