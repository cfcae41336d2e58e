// Package graph provides the static directed graph model and the attribute
// maps consumed by the network simplex solver.
//
// Nodes and arcs are identified by dense non-negative integer ids. The ids
// are stable for the lifetime of a graph instance, which lets algorithms keep
// all per-node and per-arc state in flat slices indexed by id instead of
// pointer-linked structures.
//
// Three concrete graph types are provided:
//   - ListDigraph: a growable general digraph backed by adjacency lists
//   - FullDigraph: a complete digraph on N nodes with N*N arcs (self-loops
//     included), needing only constant memory
//   - FullGraph: a complete undirected graph on N nodes exposed as a digraph
//     with two opposite arcs per edge
package graph

// Invalid is the sentinel id returned by iteration cursors and lookup
// functions when no node, arc or edge remains.
const Invalid = -1

// =============================================================================
// Digraph interface
// =============================================================================

// Digraph is the read-only directed graph surface the solver consumes.
//
// Node ids are dense in [0, NodeNum()) and arc ids are dense in
// [0, ArcNum()). Iteration uses stateless cursors in the style of
// FirstOut/NextOut: a call yields the next id or Invalid when exhausted.
// Iteration order is an implementation choice but is stable for one graph
// instance.
type Digraph interface {
	// NodeNum returns the number of nodes.
	NodeNum() int

	// ArcNum returns the number of arcs.
	ArcNum() int

	// MaxNodeID returns the largest node id, or Invalid for an empty graph.
	MaxNodeID() int

	// MaxArcID returns the largest arc id, or Invalid for an arcless graph.
	MaxArcID() int

	// Source returns the source node id of the given arc.
	Source(arc int) int

	// Target returns the target node id of the given arc.
	Target(arc int) int

	// FirstNode and NextNode iterate over all node ids.
	FirstNode() int
	NextNode(node int) int

	// FirstArc and NextArc iterate over all arc ids.
	FirstArc() int
	NextArc(arc int) int

	// FirstOut and NextOut iterate over the arcs leaving the given node.
	FirstOut(node int) int
	NextOut(arc int) int

	// FirstIn and NextIn iterate over the arcs entering the given node.
	FirstIn(node int) int
	NextIn(arc int) int
}

// ArcFinder is an optional capability: graphs with a canonical arc id
// encoding (the complete graph families) answer arc lookups in O(1).
type ArcFinder interface {
	// FindArc returns the id of an arc from s to t following prev, or
	// Invalid. Pass prev = Invalid to start a new lookup.
	FindArc(s, t, prev int) int
}

// FindArc returns the id of an arc from s to t, or Invalid if none exists.
// Passing the previously returned id as prev enumerates parallel arcs one by
// one. Graphs implementing ArcFinder answer without scanning.
func FindArc(g Digraph, s, t, prev int) int {
	if f, ok := g.(ArcFinder); ok {
		return f.FindArc(s, t, prev)
	}
	a := g.FirstOut(s)
	if prev != Invalid {
		// Resume the scan right after prev.
		for a != Invalid && a != prev {
			a = g.NextOut(a)
		}
		if a == Invalid {
			return Invalid
		}
		a = g.NextOut(a)
	}
	for ; a != Invalid; a = g.NextOut(a) {
		if g.Target(a) == t {
			return a
		}
	}
	return Invalid
}

// =============================================================================
// ListDigraph
// =============================================================================

// ListDigraph is a growable static digraph: nodes and arcs can be added but
// never removed, so ids stay dense and stable. All incidence structure lives
// in flat slices, keeping traversal cache-friendly.
type ListDigraph struct {
	firstOut []int // head of the out-arc list per node
	firstIn  []int // head of the in-arc list per node
	nextOut  []int // next arc in the source node's out-list, per arc
	nextIn   []int // next arc in the target node's in-list, per arc
	src      []int
	dst      []int
}

// NewListDigraph creates an empty digraph.
func NewListDigraph() *ListDigraph {
	return &ListDigraph{}
}

// AddNode adds a new node and returns its id.
func (g *ListDigraph) AddNode() int {
	id := len(g.firstOut)
	g.firstOut = append(g.firstOut, Invalid)
	g.firstIn = append(g.firstIn, Invalid)
	return id
}

// AddNodes adds n nodes and returns the id of the first one.
func (g *ListDigraph) AddNodes(n int) int {
	first := len(g.firstOut)
	for i := 0; i < n; i++ {
		g.AddNode()
	}
	return first
}

// AddArc adds an arc from s to t and returns its id. Both endpoints must be
// existing node ids. Parallel arcs and self-loops are allowed.
func (g *ListDigraph) AddArc(s, t int) int {
	id := len(g.src)
	g.src = append(g.src, s)
	g.dst = append(g.dst, t)
	g.nextOut = append(g.nextOut, g.firstOut[s])
	g.firstOut[s] = id
	g.nextIn = append(g.nextIn, g.firstIn[t])
	g.firstIn[t] = id
	return id
}

// NodeNum returns the number of nodes.
func (g *ListDigraph) NodeNum() int { return len(g.firstOut) }

// ArcNum returns the number of arcs.
func (g *ListDigraph) ArcNum() int { return len(g.src) }

// MaxNodeID returns the largest node id.
func (g *ListDigraph) MaxNodeID() int { return len(g.firstOut) - 1 }

// MaxArcID returns the largest arc id.
func (g *ListDigraph) MaxArcID() int { return len(g.src) - 1 }

// Source returns the source node of arc.
func (g *ListDigraph) Source(arc int) int { return g.src[arc] }

// Target returns the target node of arc.
func (g *ListDigraph) Target(arc int) int { return g.dst[arc] }

// FirstNode returns the first node id.
func (g *ListDigraph) FirstNode() int {
	if len(g.firstOut) == 0 {
		return Invalid
	}
	return 0
}

// NextNode returns the node id following node.
func (g *ListDigraph) NextNode(node int) int {
	if node+1 >= len(g.firstOut) {
		return Invalid
	}
	return node + 1
}

// FirstArc returns the first arc id.
func (g *ListDigraph) FirstArc() int {
	if len(g.src) == 0 {
		return Invalid
	}
	return 0
}

// NextArc returns the arc id following arc.
func (g *ListDigraph) NextArc(arc int) int {
	if arc+1 >= len(g.src) {
		return Invalid
	}
	return arc + 1
}

// FirstOut returns the first arc leaving node.
func (g *ListDigraph) FirstOut(node int) int { return g.firstOut[node] }

// NextOut returns the arc following arc in its source node's out-list.
func (g *ListDigraph) NextOut(arc int) int { return g.nextOut[arc] }

// FirstIn returns the first arc entering node.
func (g *ListDigraph) FirstIn(node int) int { return g.firstIn[node] }

// NextIn returns the arc following arc in its target node's in-list.
func (g *ListDigraph) NextIn(arc int) int { return g.nextIn[arc] }
