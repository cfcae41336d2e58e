// Package simplex implements a minimum-cost flow solver based on the primal
// Network Simplex method over static directed graphs with integral costs,
// capacities and supplies.
//
// The solver maintains a spanning tree basis over an augmented graph (the
// input graph plus an artificial root node and artificial arcs) and
// repeatedly pivots: a non-basic arc violating the optimality condition
// enters the basis, a blocking arc on the induced tree cycle leaves it, and
// flows, node potentials and the tree indices are updated along the way.
// All arithmetic is exact over int64; on success the solver produces an
// integral optimal flow together with optimal node potentials certifying
// optimality via complementary slackness.
//
// Three problem forms are supported for the node balance constraints:
// equality (EQ), at-least (GEQ, "carry the stated supplies") and at-most
// (LEQ, "satisfy the stated demands").
//
// Reference: Ahuja, R.K., Magnanti, T.L., and Orlin, J.B. "Network Flows:
// Theory, Algorithms, and Applications" (1993), Chapter 11.
package simplex

import (
	"mcflow/internal/graph"
)

// inf marks unlimited residual capacity on an arc of the augmented graph.
const inf = graph.Uncapacitated

// =============================================================================
// Public enumerations
// =============================================================================

// ProblemType selects the relation between node balances and supplies.
type ProblemType int

const (
	// EQ requires every node balance to equal its supply.
	EQ ProblemType = iota

	// GEQ requires every node balance to be at least its supply: all
	// stated supplies must be carried, demands are upper bounds.
	GEQ

	// LEQ requires every node balance to be at most its supply: all
	// stated demands must be satisfied, supplies are upper bounds.
	LEQ
)

// CarrySupplies and SatisfyDemands are the descriptive aliases of the
// inequality forms.
const (
	CarrySupplies  = GEQ
	SatisfyDemands = LEQ
)

// String returns the name of the problem type.
func (t ProblemType) String() string {
	switch t {
	case EQ:
		return "EQ"
	case GEQ:
		return "GEQ"
	case LEQ:
		return "LEQ"
	default:
		return "unknown"
	}
}

// PivotRule selects the entering-arc strategy of the solver.
type PivotRule int

const (
	// FirstEligible scans the arcs in id order from a rotating cursor and
	// picks the first violating arc.
	FirstEligible PivotRule = iota

	// BestEligible scans every arc and picks one with maximum violation.
	BestEligible

	// BlockSearch scans fixed-size blocks round-robin and picks the best
	// arc of the first block containing a violator. The default rule.
	BlockSearch

	// CandidateList keeps a list of violating arcs and serves the best one
	// per pivot, periodically rebuilding the list.
	CandidateList

	// AlteringList extends a candidate list blockwise and keeps only the
	// currently best few arcs between pivots.
	AlteringList
)

// String returns the name of the pivot rule.
func (r PivotRule) String() string {
	switch r {
	case FirstEligible:
		return "first_eligible"
	case BestEligible:
		return "best_eligible"
	case BlockSearch:
		return "block_search"
	case CandidateList:
		return "candidate_list"
	case AlteringList:
		return "altering_list"
	default:
		return "unknown"
	}
}

// Status classifies the outcome of the last Run.
type Status int

const (
	// StatusNotRun means Run has not been called since the last Reset.
	StatusNotRun Status = iota

	// StatusOptimal means an optimal feasible flow was found.
	StatusOptimal

	// StatusInfeasible means no flow satisfies the constraints.
	StatusInfeasible

	// StatusUnbounded means the objective is unbounded below: the graph
	// contains a negative-cost cycle of uncapacitated arcs.
	StatusUnbounded

	// StatusInvalidInput means a bound pair violated lower <= upper.
	StatusInvalidInput
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusNotRun:
		return "not_run"
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// =============================================================================
// Internal constants
// =============================================================================

// Arc states. The numeric values participate in reduced-cost arithmetic:
// the violation of a non-basic arc is state * reducedCost, negative iff the
// arc may enter the basis.
const (
	stateUpper int8 = -1
	stateTree  int8 = 0
	stateLower int8 = 1
)

// Direction of a node's predecessor arc. dirUp means the arc points from
// the node to its parent, dirDown the reverse. The numeric values carry the
// sign of the flow change along the pivot cycle.
const (
	dirDown int8 = -1
	dirUp   int8 = 1
)

// =============================================================================
// NetworkSimplex
// =============================================================================

// NetworkSimplex is a fluent builder and solver for minimum-cost flow
// problems on a Digraph.
//
// Typical use:
//
//	ns := simplex.NewNetworkSimplex(g)
//	ok := ns.CostMap(cost).UpperMap(cap).SupplyMap(sup).Run()
//	if ok {
//	    total := ns.TotalCost()
//	}
//
// Every setter returns the builder, so calls chain. The builder borrows the
// graph and the read-only attribute maps for the duration of Run; the flow
// and potential destination maps are written exactly once, on successful
// return. Reset drops every binding except the graph.
//
// Node and arc ids of the bound graph must be dense, which holds for every
// graph type of the graph package.
//
// A NetworkSimplex instance is not safe for concurrent use; independent
// instances may run concurrently on disjoint problems.
type NetworkSimplex struct {
	g graph.Digraph

	// Problem bindings.
	lower   graph.ArcMap
	upper   graph.ArcMap
	cost    graph.ArcMap
	supply  graph.NodeMap
	useST   bool
	stS     int
	stT     int
	stK     int64
	ptype   ProblemType
	flowOut graph.WritableArcMap
	potOut  graph.WritableNodeMap

	status Status
	pivots int

	// Problem dimensions for the current Run.
	nodeNum      int
	arcNum       int
	searchArcNum int // arcs visible to the pivot rules
	allArcNum    int // original + slack + artificial arcs
	root         int

	// Arc data of the augmented graph, indexed by arc.
	src        []int
	dst        []int
	capArr     []int64
	costArr    []int64
	flow       []int64
	state      []int8
	lowerShift []int64 // original lower bounds, added back on success

	// Node data of the augmented graph, indexed by node (root included).
	supplyArr []int64
	pi        []int64
	parent    []int
	pred      []int
	predDir   []int8
	thread    []int
	revThread []int
	lastSucc  []int
	succNum   []int
	depth     []int

	// Work variables of the current pivot.
	inArc int
	join  int
	uIn   int
	vIn   int
	uOut  int
	delta int64

	// Scratch buffers for subtree reattachment.
	subNodes  []int
	childHead []int
	childNext []int
}

// NewNetworkSimplex creates a solver bound to the given graph.
func NewNetworkSimplex(g graph.Digraph) *NetworkSimplex {
	return &NetworkSimplex{g: g}
}

// =============================================================================
// Builder surface
// =============================================================================

// LowerMap binds the arc lower bounds. Unbound means zero everywhere.
func (ns *NetworkSimplex) LowerMap(m graph.ArcMap) *NetworkSimplex {
	ns.lower = m
	return ns
}

// UpperMap binds the arc upper bounds. Unbound means uncapacitated.
func (ns *NetworkSimplex) UpperMap(m graph.ArcMap) *NetworkSimplex {
	ns.upper = m
	return ns
}

// CapacityMap is an alias of UpperMap.
func (ns *NetworkSimplex) CapacityMap(m graph.ArcMap) *NetworkSimplex {
	return ns.UpperMap(m)
}

// BoundMaps binds both bound maps at once.
func (ns *NetworkSimplex) BoundMaps(lower, upper graph.ArcMap) *NetworkSimplex {
	ns.lower = lower
	ns.upper = upper
	return ns
}

// CostMap binds the arc costs. Unbound means unit cost.
func (ns *NetworkSimplex) CostMap(m graph.ArcMap) *NetworkSimplex {
	ns.cost = m
	return ns
}

// SupplyMap binds the node supplies. Unbound means zero everywhere.
// SupplyMap and StSupply are mutually exclusive; the later call wins.
func (ns *NetworkSimplex) SupplyMap(m graph.NodeMap) *NetworkSimplex {
	ns.supply = m
	ns.useST = false
	return ns
}

// StSupply sets supply k at node s, demand k at node t and zero elsewhere.
func (ns *NetworkSimplex) StSupply(s, t int, k int64) *NetworkSimplex {
	ns.useST = true
	ns.stS = s
	ns.stT = t
	ns.stK = k
	ns.supply = nil
	return ns
}

// SetFlowMap binds the destination for the primal solution. If unbound, a
// private map is created on Run and reachable via the FlowMap() accessor.
func (ns *NetworkSimplex) SetFlowMap(m graph.WritableArcMap) *NetworkSimplex {
	ns.flowOut = m
	return ns
}

// SetPotentialMap binds the destination for the dual solution.
func (ns *NetworkSimplex) SetPotentialMap(m graph.WritableNodeMap) *NetworkSimplex {
	ns.potOut = m
	return ns
}

// ProblemType sets the problem form. The default is EQ.
func (ns *NetworkSimplex) ProblemType(t ProblemType) *NetworkSimplex {
	ns.ptype = t
	return ns
}

// Reset drops all bound maps and parameters; only the graph binding
// survives. It returns the builder for chaining.
func (ns *NetworkSimplex) Reset() *NetworkSimplex {
	ns.lower = nil
	ns.upper = nil
	ns.cost = nil
	ns.supply = nil
	ns.useST = false
	ns.stS, ns.stT, ns.stK = 0, 0, 0
	ns.ptype = EQ
	ns.flowOut = nil
	ns.potOut = nil
	ns.status = StatusNotRun
	ns.pivots = 0
	return ns
}

// =============================================================================
// Run
// =============================================================================

// Run executes the solver and reports whether an optimal feasible flow was
// found. Infeasible and unbounded problems return false; Status
// distinguishes them. An arc whose lower bound exceeds its upper bound also
// makes Run return false, with Status StatusInvalidInput. An optional pivot
// rule overrides the BlockSearch default.
func (ns *NetworkSimplex) Run(rule ...PivotRule) bool {
	r := BlockSearch
	if len(rule) > 0 {
		r = rule[0]
	}
	ns.pivots = 0
	if ns.flowOut == nil {
		ns.flowOut = graph.NewArcSliceMap(ns.g)
	}
	if ns.potOut == nil {
		ns.potOut = graph.NewNodeSliceMap(ns.g)
	}
	if !ns.init() {
		return false
	}
	return ns.start(r)
}

// Status returns the classification of the last Run.
func (ns *NetworkSimplex) Status() Status { return ns.status }

// Pivots returns the number of pivots the last Run performed.
func (ns *NetworkSimplex) Pivots() int { return ns.pivots }

// init builds the augmented graph and the initial spanning tree basis.
// It returns false when the problem is already classified (infeasible by
// the supply-sum check, or invalid input).
func (ns *NetworkSimplex) init() bool {
	n := ns.g.NodeNum()
	m := ns.g.ArcNum()
	ns.nodeNum, ns.arcNum = n, m
	if n == 0 {
		ns.status = StatusInfeasible
		return false
	}

	lower := ns.lower
	if lower == nil {
		lower = graph.ConstArcMap(0)
	}
	upper := ns.upper
	if upper == nil {
		upper = graph.ConstArcMap(graph.Uncapacitated)
	}
	cost := ns.cost
	if cost == nil {
		cost = graph.ConstArcMap(1)
	}

	// Worst case arc count of the augmented graph: one slack and one
	// artificial arc per node on top of the original arcs.
	maxAll := m + 2*n
	ns.src = make([]int, maxAll)
	ns.dst = make([]int, maxAll)
	ns.capArr = make([]int64, maxAll)
	ns.costArr = make([]int64, maxAll)
	ns.flow = make([]int64, maxAll)
	ns.state = make([]int8, maxAll)
	ns.lowerShift = make([]int64, m)

	ns.root = n
	all := n + 1
	ns.supplyArr = make([]int64, all)
	ns.pi = make([]int64, all)
	ns.parent = make([]int, all)
	ns.pred = make([]int, all)
	ns.predDir = make([]int8, all)
	ns.thread = make([]int, all)
	ns.revThread = make([]int, all)
	ns.lastSucc = make([]int, all)
	ns.succNum = make([]int, all)
	ns.depth = make([]int, all)
	ns.subNodes = make([]int, 0, all)
	ns.childHead = make([]int, all)
	ns.childNext = make([]int, all)

	// Copy the original arcs, validating and shifting the lower bounds.
	var maxCost int64
	for e := 0; e < m; e++ {
		lo, up := lower.Get(e), upper.Get(e)
		if lo > up {
			ns.status = StatusInvalidInput
			return false
		}
		ns.src[e] = ns.g.Source(e)
		ns.dst[e] = ns.g.Target(e)
		ns.lowerShift[e] = lo
		if up == graph.Uncapacitated {
			ns.capArr[e] = inf
		} else {
			ns.capArr[e] = up - lo
		}
		c := cost.Get(e)
		ns.costArr[e] = c
		ns.flow[e] = 0
		ns.state[e] = stateLower
		if c < 0 {
			c = -c
		}
		if c > maxCost {
			maxCost = c
		}
	}

	// Node supplies, adjusted by the lower-bound shift.
	for u := 0; u < n; u++ {
		ns.supplyArr[u] = 0
	}
	if ns.useST {
		ns.supplyArr[ns.stS] += ns.stK
		ns.supplyArr[ns.stT] -= ns.stK
	} else if ns.supply != nil {
		for u := 0; u < n; u++ {
			ns.supplyArr[u] = ns.supply.Get(u)
		}
	}
	for e := 0; e < m; e++ {
		if lo := ns.lowerShift[e]; lo != 0 {
			ns.supplyArr[ns.src[e]] -= lo
			ns.supplyArr[ns.dst[e]] += lo
		}
	}
	var sumSupply int64
	for u := 0; u < n; u++ {
		sumSupply += ns.supplyArr[u]
	}

	// Supply-sum feasibility pre-check per problem form.
	switch ns.ptype {
	case EQ:
		if sumSupply != 0 {
			ns.status = StatusInfeasible
			return false
		}
	case GEQ:
		if sumSupply > 0 {
			ns.status = StatusInfeasible
			return false
		}
	case LEQ:
		if sumSupply < 0 {
			ns.status = StatusInfeasible
			return false
		}
	}

	// The artificial cost strictly dominates any cycle cost realizable in
	// the original graph.
	artCost := int64(n)*maxCost + 1

	// Spanning tree skeleton: the artificial root followed by every node
	// in a star, in preorder.
	r := ns.root
	ns.parent[r] = graph.Invalid
	ns.pred[r] = graph.Invalid
	ns.predDir[r] = 0
	ns.thread[r] = 0
	ns.revThread[0] = r
	ns.succNum[r] = n + 1
	ns.lastSucc[r] = n - 1
	ns.depth[r] = 0
	ns.supplyArr[r] = -sumSupply
	ns.pi[r] = 0
	for u := 0; u < n; u++ {
		ns.thread[u] = u + 1
		ns.revThread[u+1] = u
		ns.succNum[u] = 1
		ns.lastSucc[u] = u
		ns.depth[u] = 1
	}
	ns.thread[n-1] = r

	// Artificial arcs. With a zero supply sum the star of artificial arcs
	// alone forms the basis. Under an inequality form one side of the
	// imbalance additionally gets a cost-free slack arc per node, visible
	// to the pivot search, so balances may over- or undershoot supplies.
	switch {
	case sumSupply == 0:
		ns.searchArcNum = m
		ns.allArcNum = m + n
		for u, e := 0, m; u < n; u, e = u+1, e+1 {
			ns.parent[u] = r
			ns.pred[u] = e
			ns.capArr[e] = inf
			ns.state[e] = stateTree
			if ns.supplyArr[u] >= 0 {
				ns.predDir[u] = dirUp
				ns.pi[u] = 0
				ns.src[e] = u
				ns.dst[e] = r
				ns.flow[e] = ns.supplyArr[u]
				ns.costArr[e] = 0
			} else {
				ns.predDir[u] = dirDown
				ns.pi[u] = artCost
				ns.src[e] = r
				ns.dst[e] = u
				ns.flow[e] = -ns.supplyArr[u]
				ns.costArr[e] = artCost
			}
		}

	case sumSupply > 0:
		// LEQ form: supplies may stay partly unused, demands are firm.
		ns.searchArcNum = m + n
		f := m + n
		for u, e := 0, m; u < n; u, e = u+1, e+1 {
			ns.parent[u] = r
			if ns.supplyArr[u] >= 0 {
				ns.predDir[u] = dirUp
				ns.pi[u] = 0
				ns.pred[u] = e
				ns.src[e] = u
				ns.dst[e] = r
				ns.capArr[e] = inf
				ns.flow[e] = ns.supplyArr[u]
				ns.costArr[e] = 0
				ns.state[e] = stateTree
			} else {
				ns.predDir[u] = dirDown
				ns.pi[u] = artCost
				ns.pred[u] = f
				ns.src[f] = r
				ns.dst[f] = u
				ns.capArr[f] = inf
				ns.flow[f] = -ns.supplyArr[u]
				ns.costArr[f] = artCost
				ns.state[f] = stateTree
				ns.src[e] = u
				ns.dst[e] = r
				ns.capArr[e] = inf
				ns.flow[e] = 0
				ns.costArr[e] = 0
				ns.state[e] = stateLower
				f++
			}
		}
		ns.allArcNum = f

	default:
		// GEQ form: demands may stay partly unmet, supplies are firm.
		ns.searchArcNum = m + n
		f := m + n
		for u, e := 0, m; u < n; u, e = u+1, e+1 {
			ns.parent[u] = r
			if ns.supplyArr[u] <= 0 {
				ns.predDir[u] = dirDown
				ns.pi[u] = 0
				ns.pred[u] = e
				ns.src[e] = r
				ns.dst[e] = u
				ns.capArr[e] = inf
				ns.flow[e] = -ns.supplyArr[u]
				ns.costArr[e] = 0
				ns.state[e] = stateTree
			} else {
				ns.predDir[u] = dirUp
				ns.pi[u] = -artCost
				ns.pred[u] = f
				ns.src[f] = u
				ns.dst[f] = r
				ns.capArr[f] = inf
				ns.flow[f] = ns.supplyArr[u]
				ns.costArr[f] = artCost
				ns.state[f] = stateTree
				ns.src[e] = r
				ns.dst[e] = u
				ns.capArr[e] = inf
				ns.flow[e] = 0
				ns.costArr[e] = 0
				ns.state[e] = stateLower
				f++
			}
		}
		ns.allArcNum = f
	}

	return true
}

// start runs the pivot loop and extracts the results.
func (ns *NetworkSimplex) start(rule PivotRule) bool {
	pivot := ns.newPivotRule(rule)
	for pivot.findEnteringArc() {
		ns.findJoin()
		change := ns.findLeavingArc()
		if ns.delta == inf {
			ns.status = StatusUnbounded
			return false
		}
		ns.changeFlow(change)
		if change {
			ns.updateTreeStructure()
			ns.updatePotential()
		}
		ns.pivots++
	}

	// Residual flow on a penalized artificial arc proves the supplies
	// cannot be routed through the original graph.
	for e := ns.searchArcNum; e < ns.allArcNum; e++ {
		if ns.flow[e] != 0 {
			ns.status = StatusInfeasible
			return false
		}
	}

	// Publish the primal and dual solutions, undoing the lower-bound
	// shift on the way out.
	for e := 0; e < ns.arcNum; e++ {
		ns.flowOut.Set(e, ns.flow[e]+ns.lowerShift[e])
	}
	for u := 0; u < ns.nodeNum; u++ {
		ns.potOut.Set(u, ns.pi[u])
	}
	ns.status = StatusOptimal
	return true
}

// =============================================================================
// Result surface
// =============================================================================

// Flow returns the flow on the given arc in the last solution.
func (ns *NetworkSimplex) Flow(arc int) int64 { return ns.flowOut.Get(arc) }

// Potential returns the dual value of the given node in the last solution.
func (ns *NetworkSimplex) Potential(node int) int64 { return ns.potOut.Get(node) }

// FlowMap returns the map holding the last primal solution.
func (ns *NetworkSimplex) FlowMap() graph.WritableArcMap { return ns.flowOut }

// PotentialMap returns the map holding the last dual solution.
func (ns *NetworkSimplex) PotentialMap() graph.WritableNodeMap { return ns.potOut }

// TotalCost returns the total cost of the last solution, accumulated in
// int64.
func (ns *NetworkSimplex) TotalCost() int64 {
	cost := ns.cost
	if cost == nil {
		cost = graph.ConstArcMap(1)
	}
	var total int64
	for e := 0; e < ns.g.ArcNum(); e++ {
		total += cost.Get(e) * ns.flowOut.Get(e)
	}
	return total
}

// TotalCostFloat returns the total cost of the last solution, accumulated
// in float64 for callers whose totals would overflow int64.
func (ns *NetworkSimplex) TotalCostFloat() float64 {
	cost := ns.cost
	if cost == nil {
		cost = graph.ConstArcMap(1)
	}
	var total float64
	for e := 0; e < ns.g.ArcNum(); e++ {
		total += float64(cost.Get(e)) * float64(ns.flowOut.Get(e))
	}
	return total
}
