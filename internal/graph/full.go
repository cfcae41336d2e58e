package graph

// =============================================================================
// FullDigraph
// =============================================================================

// FullDigraph is a complete digraph on N nodes. Every ordered pair of nodes,
// including (s, s), is connected by exactly one arc, so the graph has N*N
// arcs and needs only constant memory. The arc from s to t has id s*N+t,
// which makes endpoint decoding and arc lookup trivial arithmetic.
//
// The graph is completely static: the node count is fixed at construction.
type FullDigraph struct {
	nodeNum int
	arcNum  int
}

// NewFullDigraph creates a complete digraph on n nodes.
func NewFullDigraph(n int) *FullDigraph {
	return &FullDigraph{nodeNum: n, arcNum: n * n}
}

// NodeNum returns the number of nodes.
func (g *FullDigraph) NodeNum() int { return g.nodeNum }

// ArcNum returns the number of arcs.
func (g *FullDigraph) ArcNum() int { return g.arcNum }

// MaxNodeID returns the largest node id.
func (g *FullDigraph) MaxNodeID() int { return g.nodeNum - 1 }

// MaxArcID returns the largest arc id.
func (g *FullDigraph) MaxArcID() int { return g.arcNum - 1 }

// Node returns the node with the given index, or Invalid if the index is out
// of range. Node ids and indices coincide for the static graph families.
func (g *FullDigraph) Node(ix int) int {
	if ix < 0 || ix >= g.nodeNum {
		return Invalid
	}
	return ix
}

// Arc returns the id of the arc from s to t.
func (g *FullDigraph) Arc(s, t int) int { return s*g.nodeNum + t }

// Source returns the source node of arc.
func (g *FullDigraph) Source(arc int) int { return arc / g.nodeNum }

// Target returns the target node of arc.
func (g *FullDigraph) Target(arc int) int { return arc % g.nodeNum }

// FindArc returns Arc(s, t) on the first call and Invalid thereafter: every
// ordered pair is connected by exactly one arc.
func (g *FullDigraph) FindArc(s, t, prev int) int {
	if prev == Invalid {
		return g.Arc(s, t)
	}
	return Invalid
}

// FirstNode returns the first node id.
func (g *FullDigraph) FirstNode() int {
	if g.nodeNum == 0 {
		return Invalid
	}
	return 0
}

// NextNode returns the node id following node.
func (g *FullDigraph) NextNode(node int) int {
	if node+1 >= g.nodeNum {
		return Invalid
	}
	return node + 1
}

// FirstArc returns the first arc id.
func (g *FullDigraph) FirstArc() int {
	if g.arcNum == 0 {
		return Invalid
	}
	return 0
}

// NextArc returns the arc id following arc.
func (g *FullDigraph) NextArc(arc int) int {
	if arc+1 >= g.arcNum {
		return Invalid
	}
	return arc + 1
}

// FirstOut returns the first arc leaving node. The out-arcs of node s are
// exactly the ids s*N .. s*N+N-1.
func (g *FullDigraph) FirstOut(node int) int {
	if g.nodeNum == 0 {
		return Invalid
	}
	return node * g.nodeNum
}

// NextOut returns the next out-arc of the arc's source node.
func (g *FullDigraph) NextOut(arc int) int {
	if (arc+1)%g.nodeNum == 0 {
		return Invalid
	}
	return arc + 1
}

// FirstIn returns the first arc entering node. The in-arcs of node t are the
// ids t, t+N, t+2N, ...
func (g *FullDigraph) FirstIn(node int) int {
	if g.nodeNum == 0 {
		return Invalid
	}
	return node
}

// NextIn returns the next in-arc of the arc's target node.
func (g *FullDigraph) NextIn(arc int) int {
	if arc+g.nodeNum >= g.arcNum {
		return Invalid
	}
	return arc + g.nodeNum
}

// =============================================================================
// FullGraph
// =============================================================================

// FullGraph is a complete undirected graph on N nodes, exposed to the solver
// as a digraph with two opposite arcs per edge. Unlike FullDigraph it has no
// self-loops: the edge count is N*(N-1)/2 and the arc count twice that.
//
// Each unordered pair {u, v} with u < v maps to a unique edge id in
// [0, edgeNum) by a symmetric folding of the N*N index square:
//
//	eid(u, v) = u*N + v           if u < (N-1)/2
//	eid(u, v) = (N-1-u)*N - v - 1 otherwise
//
// The directed arcs of an edge are (eid<<1)|1 for u->v and eid<<1 for v->u,
// so an arc's edge is arc>>1 and its direction is the low bit.
type FullGraph struct {
	nodeNum int
	edgeNum int
}

// NewFullGraph creates a complete undirected graph on n nodes.
func NewFullGraph(n int) *FullGraph {
	return &FullGraph{nodeNum: n, edgeNum: n * (n - 1) / 2}
}

// NodeNum returns the number of nodes.
func (g *FullGraph) NodeNum() int { return g.nodeNum }

// EdgeNum returns the number of edges.
func (g *FullGraph) EdgeNum() int { return g.edgeNum }

// ArcNum returns the number of directed arcs, twice the edge count.
func (g *FullGraph) ArcNum() int { return 2 * g.edgeNum }

// MaxNodeID returns the largest node id.
func (g *FullGraph) MaxNodeID() int { return g.nodeNum - 1 }

// MaxEdgeID returns the largest edge id.
func (g *FullGraph) MaxEdgeID() int { return g.edgeNum - 1 }

// MaxArcID returns the largest arc id.
func (g *FullGraph) MaxArcID() int { return 2*g.edgeNum - 1 }

// Node returns the node with the given index, or Invalid if the index is out
// of range.
func (g *FullGraph) Node(ix int) int {
	if ix < 0 || ix >= g.nodeNum {
		return Invalid
	}
	return ix
}

// eid encodes the unordered pair {u, v}, u < v, as an edge id.
func (g *FullGraph) eid(u, v int) int {
	if u < (g.nodeNum-1)/2 {
		return u*g.nodeNum + v
	}
	return (g.nodeNum-1-u)*g.nodeNum - v - 1
}

// uvid decodes an edge id into its endpoints with u < v.
func (g *FullGraph) uvid(e int) (u, v int) {
	u = e / g.nodeNum
	v = e % g.nodeNum
	if u >= v {
		u = g.nodeNum - 2 - u
		v = g.nodeNum - 1 - v
	}
	return u, v
}

// stid decodes an arc id into (source, target).
func (g *FullGraph) stid(a int) (s, t int) {
	u, v := g.uvid(a >> 1)
	if a&1 == 1 {
		return u, v
	}
	return v, u
}

// Edge returns the id of the edge connecting u and v, or Invalid if u == v.
func (g *FullGraph) Edge(u, v int) int {
	switch {
	case u < v:
		return g.eid(u, v)
	case u > v:
		return g.eid(v, u)
	default:
		return Invalid
	}
}

// Arc returns the id of the directed arc from s to t, or Invalid if s == t.
func (g *FullGraph) Arc(s, t int) int {
	switch {
	case s < t:
		return g.eid(s, t)<<1 | 1
	case s > t:
		return g.eid(t, s) << 1
	default:
		return Invalid
	}
}

// U returns the lower-id endpoint of edge.
func (g *FullGraph) U(edge int) int {
	u, _ := g.uvid(edge)
	return u
}

// V returns the higher-id endpoint of edge.
func (g *FullGraph) V(edge int) int {
	_, v := g.uvid(edge)
	return v
}

// Source returns the source node of arc.
func (g *FullGraph) Source(arc int) int {
	s, _ := g.stid(arc)
	return s
}

// Target returns the target node of arc.
func (g *FullGraph) Target(arc int) int {
	_, t := g.stid(arc)
	return t
}

// Direction reports whether arc runs from the lower-id endpoint of its edge
// to the higher-id one.
func (g *FullGraph) Direction(arc int) bool { return arc&1 == 1 }

// Direct returns the arc of edge running in the given direction.
func (g *FullGraph) Direct(edge int, dir bool) int {
	if dir {
		return edge<<1 | 1
	}
	return edge << 1
}

// FindArc returns Arc(s, t) on the first call and Invalid thereafter.
func (g *FullGraph) FindArc(s, t, prev int) int {
	if prev == Invalid {
		return g.Arc(s, t)
	}
	return Invalid
}

// FindEdge returns Edge(u, v) on the first call and Invalid thereafter.
func (g *FullGraph) FindEdge(u, v, prev int) int {
	if prev == Invalid {
		return g.Edge(u, v)
	}
	return Invalid
}

// FirstNode returns the first node id.
func (g *FullGraph) FirstNode() int {
	if g.nodeNum == 0 {
		return Invalid
	}
	return 0
}

// NextNode returns the node id following node.
func (g *FullGraph) NextNode(node int) int {
	if node+1 >= g.nodeNum {
		return Invalid
	}
	return node + 1
}

// FirstArc returns the first arc id.
func (g *FullGraph) FirstArc() int {
	if g.edgeNum == 0 {
		return Invalid
	}
	return 0
}

// NextArc returns the arc id following arc.
func (g *FullGraph) NextArc(arc int) int {
	if arc+1 >= 2*g.edgeNum {
		return Invalid
	}
	return arc + 1
}

// FirstEdge returns the first edge id.
func (g *FullGraph) FirstEdge() int {
	if g.edgeNum == 0 {
		return Invalid
	}
	return 0
}

// NextEdge returns the edge id following edge.
func (g *FullGraph) NextEdge(edge int) int {
	if edge+1 >= g.edgeNum {
		return Invalid
	}
	return edge + 1
}

// FirstOut returns the first arc leaving node. Neighbours are visited in
// decreasing id order, pairing node s first with nodes above it and then
// with nodes below it.
func (g *FullGraph) FirstOut(node int) int {
	s, t := node, g.nodeNum-1
	if s < t {
		return g.eid(s, t)<<1 | 1
	}
	t--
	if t == Invalid {
		return Invalid
	}
	return g.eid(t, s) << 1
}

// NextOut returns the next out-arc of the arc's source node.
func (g *FullGraph) NextOut(arc int) int {
	s, t := g.stid(arc)
	t--
	if s < t {
		return g.eid(s, t)<<1 | 1
	}
	if s == t {
		t--
	}
	if t == Invalid {
		return Invalid
	}
	return g.eid(t, s) << 1
}

// FirstIn returns the first arc entering node.
func (g *FullGraph) FirstIn(node int) int {
	s, t := g.nodeNum-1, node
	if s > t {
		return g.eid(t, s) << 1
	}
	s--
	if s == Invalid {
		return Invalid
	}
	return g.eid(s, t)<<1 | 1
}

// NextIn returns the next in-arc of the arc's target node.
func (g *FullGraph) NextIn(arc int) int {
	s, t := g.stid(arc)
	s--
	if s > t {
		return g.eid(t, s) << 1
	}
	if s == t {
		s--
	}
	if s == Invalid {
		return Invalid
	}
	return g.eid(s, t)<<1 | 1
}
