// Package converter translates between the transport representation of a
// minimum-cost flow problem and the solver's graph and attribute maps, and
// formats solutions for the response payload.
package converter

import (
	"fmt"

	"mcflow/internal/graph"
	"mcflow/internal/simplex"
)

// ProblemRequest is the wire form of a minimum-cost flow problem. Nodes are
// the dense ids 0..NodeCount-1; arcs get their ids from their position in
// the Arcs list.
type ProblemRequest struct {
	NodeCount int       `json:"node_count"`
	Arcs      []ArcSpec `json:"arcs"`

	// Supplies lists the nonzero node supplies. Mutually exclusive with
	// the Source/Target/Quantity triple.
	Supplies []SupplySpec `json:"supplies,omitempty"`

	// Source/Target/Quantity describe a single source-target pair:
	// Quantity units leave Source and arrive at Target.
	Source   *int  `json:"source,omitempty"`
	Target   *int  `json:"target,omitempty"`
	Quantity int64 `json:"quantity,omitempty"`

	// ProblemType is EQ (default), GEQ or LEQ.
	ProblemType string `json:"problem_type,omitempty"`

	// PivotRule overrides the service default for this request.
	PivotRule string `json:"pivot_rule,omitempty"`
}

// ArcSpec describes one directed arc. A nil Upper means uncapacitated.
type ArcSpec struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Lower  int64  `json:"lower,omitempty"`
	Upper  *int64 `json:"upper,omitempty"`
	Cost   int64  `json:"cost,omitempty"`
}

// SupplySpec assigns a supply (positive) or demand (negative) to a node.
type SupplySpec struct {
	Node   int   `json:"node"`
	Supply int64 `json:"supply"`
}

// Problem is the solver-ready form of a request.
type Problem struct {
	Graph    *graph.ListDigraph
	Lower    *graph.ArcSliceMap
	Upper    *graph.ArcSliceMap
	Cost     *graph.ArcSliceMap
	Supply   *graph.NodeSliceMap
	UseST    bool
	STSource int
	STTarget int
	STKValue int64
	Type     simplex.ProblemType
}

// ToProblem builds the graph and attribute maps for a request. The request
// must already be validated; endpoints out of range panic here the same way
// an out-of-range slice index would.
func ToProblem(req *ProblemRequest) *Problem {
	g := graph.NewListDigraph()
	g.AddNodes(req.NodeCount)

	lower := graph.NewArcSliceMap(g)
	upper := graph.NewArcSliceMap(g)
	cost := graph.NewArcSliceMap(g)
	for _, spec := range req.Arcs {
		a := g.AddArc(spec.Source, spec.Target)
		lower.Set(a, spec.Lower)
		if spec.Upper != nil {
			upper.Set(a, *spec.Upper)
		} else {
			upper.Set(a, graph.Uncapacitated)
		}
		cost.Set(a, spec.Cost)
	}

	p := &Problem{
		Graph: g,
		Lower: lower,
		Upper: upper,
		Cost:  cost,
	}
	p.Type, _ = ParseProblemType(req.ProblemType)

	if req.Source != nil && req.Target != nil {
		p.UseST = true
		p.STSource = *req.Source
		p.STTarget = *req.Target
		p.STKValue = req.Quantity
	} else {
		supply := graph.NewNodeSliceMap(g)
		for _, s := range req.Supplies {
			supply.Set(s.Node, s.Supply)
		}
		p.Supply = supply
	}

	return p
}

// Bind configures a solver instance with the problem's maps.
func (p *Problem) Bind(ns *simplex.NetworkSimplex) *simplex.NetworkSimplex {
	ns.BoundMaps(p.Lower, p.Upper).CostMap(p.Cost).ProblemType(p.Type)
	if p.UseST {
		ns.StSupply(p.STSource, p.STTarget, p.STKValue)
	} else {
		ns.SupplyMap(p.Supply)
	}
	return ns
}

// ParseProblemType maps the wire name onto the solver enumeration. The
// empty string selects EQ.
func ParseProblemType(s string) (simplex.ProblemType, error) {
	switch s {
	case "", "EQ":
		return simplex.EQ, nil
	case "GEQ", "CARRY_SUPPLIES":
		return simplex.GEQ, nil
	case "LEQ", "SATISFY_DEMANDS":
		return simplex.LEQ, nil
	default:
		return simplex.EQ, fmt.Errorf("unknown problem type %q", s)
	}
}

// ParsePivotRule maps the wire name onto the solver enumeration. The empty
// string selects the given default.
func ParsePivotRule(s string, def simplex.PivotRule) (simplex.PivotRule, error) {
	switch s {
	case "":
		return def, nil
	case "first_eligible":
		return simplex.FirstEligible, nil
	case "best_eligible":
		return simplex.BestEligible, nil
	case "block_search":
		return simplex.BlockSearch, nil
	case "candidate_list":
		return simplex.CandidateList, nil
	case "altering_list":
		return simplex.AlteringList, nil
	default:
		return def, fmt.Errorf("unknown pivot rule %q", s)
	}
}

// Canonical renders the request as a deterministic byte string for cache
// keying. Arc order is part of the problem identity, so arcs are emitted in
// request order; supplies are emitted as given after the solver treats
// missing nodes as zero.
func Canonical(req *ProblemRequest) []byte {
	buf := make([]byte, 0, 64+32*len(req.Arcs))
	form := req.ProblemType
	if form == "" {
		form = "EQ"
	}
	buf = fmt.Appendf(buf, "form:%s;n:%d;", form, req.NodeCount)
	if req.Source != nil && req.Target != nil {
		buf = fmt.Appendf(buf, "st:%d:%d:%d;", *req.Source, *req.Target, req.Quantity)
	}
	for _, s := range req.Supplies {
		buf = fmt.Appendf(buf, "s:%d:%d;", s.Node, s.Supply)
	}
	for _, a := range req.Arcs {
		upper := "inf"
		if a.Upper != nil {
			upper = fmt.Sprintf("%d", *a.Upper)
		}
		buf = fmt.Appendf(buf, "a:%d:%d:%d:%s:%d;", a.Source, a.Target, a.Lower, upper, a.Cost)
	}
	return buf
}

// =============================================================================
// Responses
// =============================================================================

// ArcFlow is the flow assigned to one arc, reported in request arc order.
type ArcFlow struct {
	Arc    int   `json:"arc"`
	Source int   `json:"source"`
	Target int   `json:"target"`
	Flow   int64 `json:"flow"`
}

// NodePotential is the dual value of one node.
type NodePotential struct {
	Node      int   `json:"node"`
	Potential int64 `json:"potential"`
}

// SolveResponse is the wire form of a solver outcome.
type SolveResponse struct {
	Status            string          `json:"status"`
	Optimal           bool            `json:"optimal"`
	TotalCost         int64           `json:"total_cost"`
	Flows             []ArcFlow       `json:"flows,omitempty"`
	Potentials        []NodePotential `json:"potentials,omitempty"`
	Pivots            int             `json:"pivots"`
	Cached            bool            `json:"cached,omitempty"`
	ComputationTimeMs float64         `json:"computation_time_ms"`
}

// FromSolution extracts the outcome of a run; the primal and dual solutions
// are included only for an optimal one.
func FromSolution(ns *simplex.NetworkSimplex, g graph.Digraph) *SolveResponse {
	resp := &SolveResponse{
		Status:  ns.Status().String(),
		Optimal: ns.Status() == simplex.StatusOptimal,
		Pivots:  ns.Pivots(),
	}
	if !resp.Optimal {
		return resp
	}
	resp.TotalCost = ns.TotalCost()
	resp.Flows = make([]ArcFlow, g.ArcNum())
	for a := 0; a < g.ArcNum(); a++ {
		resp.Flows[a] = ArcFlow{
			Arc:    a,
			Source: g.Source(a),
			Target: g.Target(a),
			Flow:   ns.Flow(a),
		}
	}
	resp.Potentials = make([]NodePotential, g.NodeNum())
	for n := 0; n < g.NodeNum(); n++ {
		resp.Potentials[n] = NodePotential{Node: n, Potential: ns.Potential(n)}
	}
	return resp
}
