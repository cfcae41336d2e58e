package simplex

// This file implements the pluggable entering-arc strategies. A non-tree
// arc is eligible when its signed reduced cost violates optimality: held at
// the lower bound with negative reduced cost, or at the upper bound with a
// positive one. Folding the state sign into the comparison makes both cases
// read the same: state * reducedCost < 0.
//
// Every rule is admissible (it returns an eligible arc whenever one exists)
// and deterministic; the tuning constants below trade pivots against scan
// work and change neither the outcome nor the optimal cost.

import (
	"math"
	"sort"
)

// Tuning constants of the pivot rules. Block and list sizes scale with the
// square root of the searchable arc count.
const (
	blockSizeFactor  = 1.0
	minBlockSize     = 10
	listLengthFactor = 0.25
	minListLength    = 10
	minorLimitFactor = 0.1
	minMinorLimit    = 3
	headLengthFactor = 0.01
	minHeadLength    = 3
)

// enteringArcFinder selects the entering arc of a pivot, storing it in the
// solver's inArc field. It reports false when no arc violates optimality,
// which proves the current basis optimal.
type enteringArcFinder interface {
	findEnteringArc() bool
}

// newPivotRule builds the strategy instance for one Run.
func (ns *NetworkSimplex) newPivotRule(rule PivotRule) enteringArcFinder {
	switch rule {
	case FirstEligible:
		return &firstEligiblePivot{ns: ns}
	case BestEligible:
		return &bestEligiblePivot{ns: ns}
	case CandidateList:
		return newCandidateListPivot(ns)
	case AlteringList:
		return newAlteringListPivot(ns)
	default:
		return newBlockSearchPivot(ns)
	}
}

// violation returns state * reducedCost of the arc, negative iff the arc is
// eligible to enter the basis.
func (ns *NetworkSimplex) violation(e int) int64 {
	return int64(ns.state[e]) * (ns.costArr[e] + ns.pi[ns.src[e]] - ns.pi[ns.dst[e]])
}

// scaledSize computes a sqrt-scaled tuning parameter with a floor.
func scaledSize(factor float64, arcs, minimum int) int {
	size := int(factor * math.Sqrt(float64(arcs)))
	if size < minimum {
		size = minimum
	}
	return size
}

// =============================================================================
// First eligible
// =============================================================================

// firstEligiblePivot scans the arcs in id order from a cursor that persists
// across pivots and returns the first violating arc.
type firstEligiblePivot struct {
	ns      *NetworkSimplex
	nextArc int
}

func (p *firstEligiblePivot) findEnteringArc() bool {
	ns := p.ns
	for e := p.nextArc; e < ns.searchArcNum; e++ {
		if ns.violation(e) < 0 {
			ns.inArc = e
			p.nextArc = e + 1
			return true
		}
	}
	for e := 0; e < p.nextArc; e++ {
		if ns.violation(e) < 0 {
			ns.inArc = e
			p.nextArc = e + 1
			return true
		}
	}
	return false
}

// =============================================================================
// Best eligible
// =============================================================================

// bestEligiblePivot scans every arc and returns the one with the largest
// violation, lowest id first among ties.
type bestEligiblePivot struct {
	ns *NetworkSimplex
}

func (p *bestEligiblePivot) findEnteringArc() bool {
	ns := p.ns
	var best int64
	for e := 0; e < ns.searchArcNum; e++ {
		if c := ns.violation(e); c < best {
			best = c
			ns.inArc = e
		}
	}
	return best < 0
}

// =============================================================================
// Block search (default)
// =============================================================================

// blockSearchPivot scans blocks of arcs round-robin starting at a rotating
// cursor and returns the best violator of the first block that has one.
type blockSearchPivot struct {
	ns        *NetworkSimplex
	blockSize int
	nextArc   int
}

func newBlockSearchPivot(ns *NetworkSimplex) *blockSearchPivot {
	return &blockSearchPivot{
		ns:        ns,
		blockSize: scaledSize(blockSizeFactor, ns.searchArcNum, minBlockSize),
	}
}

func (p *blockSearchPivot) findEnteringArc() bool {
	ns := p.ns
	var best int64
	count := p.blockSize
	for e := p.nextArc; e < ns.searchArcNum; e++ {
		if c := ns.violation(e); c < best {
			best = c
			ns.inArc = e
		}
		if count--; count == 0 {
			if best < 0 {
				p.nextArc = e + 1
				return true
			}
			count = p.blockSize
		}
	}
	for e := 0; e < p.nextArc; e++ {
		if c := ns.violation(e); c < best {
			best = c
			ns.inArc = e
		}
		if count--; count == 0 {
			if best < 0 {
				p.nextArc = e + 1
				return true
			}
			count = p.blockSize
		}
	}
	if best < 0 {
		p.nextArc = ns.inArc + 1
		return true
	}
	return false
}

// =============================================================================
// Candidate list
// =============================================================================

// candidateListPivot maintains a list of eligible arcs. Minor iterations
// serve the best remaining candidate and drop the ones that stopped
// violating; after a bounded number of minors, or when the list empties, a
// major iteration rebuilds it by scanning from the rotating cursor.
type candidateListPivot struct {
	ns         *NetworkSimplex
	candidates []int
	listLength int
	minorLimit int
	minorCount int
	currLength int
	nextArc    int
}

func newCandidateListPivot(ns *NetworkSimplex) *candidateListPivot {
	listLength := scaledSize(listLengthFactor, ns.searchArcNum, minListLength)
	minorLimit := int(minorLimitFactor * float64(listLength))
	if minorLimit < minMinorLimit {
		minorLimit = minMinorLimit
	}
	return &candidateListPivot{
		ns:         ns,
		candidates: make([]int, listLength),
		listLength: listLength,
		minorLimit: minorLimit,
	}
}

func (p *candidateListPivot) findEnteringArc() bool {
	ns := p.ns
	var best int64

	if p.currLength > 0 && p.minorCount < p.minorLimit {
		// Minor iteration: serve the current list.
		p.minorCount++
		for i := 0; i < p.currLength; i++ {
			e := p.candidates[i]
			c := ns.violation(e)
			if c < best {
				best = c
				ns.inArc = e
			} else if c >= 0 {
				p.currLength--
				p.candidates[i] = p.candidates[p.currLength]
				i--
			}
		}
		if best < 0 {
			return true
		}
	}

	// Major iteration: rebuild the list.
	best = 0
	p.currLength = 0
	for e := p.nextArc; e < ns.searchArcNum; e++ {
		if c := ns.violation(e); c < 0 {
			p.candidates[p.currLength] = e
			p.currLength++
			if c < best {
				best = c
				ns.inArc = e
			}
			if p.currLength == p.listLength {
				p.minorCount = 1
				p.nextArc = e + 1
				return true
			}
		}
	}
	for e := 0; e < p.nextArc; e++ {
		if c := ns.violation(e); c < 0 {
			p.candidates[p.currLength] = e
			p.currLength++
			if c < best {
				best = c
				ns.inArc = e
			}
			if p.currLength == p.listLength {
				p.minorCount = 1
				p.nextArc = e + 1
				return true
			}
		}
	}
	if p.currLength == 0 {
		return false
	}
	p.minorCount = 1
	p.nextArc = ns.inArc + 1
	return true
}

// =============================================================================
// Altering list
// =============================================================================

// alteringListPivot keeps the candidates sorted by violation. Each pivot
// first re-evaluates the survivors, then extends the list blockwise from
// the rotating cursor, sorts, serves the best arc and retains only a short
// head for the next pivot.
type alteringListPivot struct {
	ns         *NetworkSimplex
	candidates []int
	candCost   []int64
	blockSize  int
	headLength int
	currLength int
	nextArc    int
}

func newAlteringListPivot(ns *NetworkSimplex) *alteringListPivot {
	blockSize := scaledSize(blockSizeFactor, ns.searchArcNum, minBlockSize)
	headLength := scaledSize(headLengthFactor, ns.searchArcNum, minHeadLength)
	return &alteringListPivot{
		ns:         ns,
		candidates: make([]int, 0, headLength+blockSize),
		candCost:   make([]int64, ns.searchArcNum),
		blockSize:  blockSize,
		headLength: headLength,
	}
}

func (p *alteringListPivot) findEnteringArc() bool {
	ns := p.ns

	// Re-evaluate the candidates kept from the previous pivot.
	for i := 0; i < p.currLength; i++ {
		e := p.candidates[i]
		c := ns.violation(e)
		if c < 0 {
			p.candCost[e] = c
		} else {
			p.currLength--
			p.candidates[i] = p.candidates[p.currLength]
			i--
		}
	}
	p.candidates = p.candidates[:p.currLength]

	// Extend the list blockwise: the first block stops the extension if it
	// leaves the list over the head size, any later block if the list is
	// non-empty.
	count := p.blockSize
	limit := p.headLength
	extended := false
	for e := p.nextArc; e < ns.searchArcNum; e++ {
		if c := ns.violation(e); c < 0 {
			p.candCost[e] = c
			p.candidates = append(p.candidates, e)
		}
		if count--; count == 0 {
			if len(p.candidates) > limit {
				p.nextArc = e + 1
				extended = true
				break
			}
			limit = 0
			count = p.blockSize
		}
	}
	if !extended {
		for e := 0; e < p.nextArc; e++ {
			if c := ns.violation(e); c < 0 {
				p.candCost[e] = c
				p.candidates = append(p.candidates, e)
			}
			if count--; count == 0 {
				if len(p.candidates) > limit {
					p.nextArc = e + 1
					extended = true
					break
				}
				limit = 0
				count = p.blockSize
			}
		}
	}
	if len(p.candidates) == 0 {
		p.currLength = 0
		return false
	}

	// Sort by violation, ids breaking ties, and serve the best arc; the
	// survivors after the head are dropped.
	sort.Slice(p.candidates, func(i, j int) bool {
		ei, ej := p.candidates[i], p.candidates[j]
		if p.candCost[ei] != p.candCost[ej] {
			return p.candCost[ei] < p.candCost[ej]
		}
		return ei < ej
	})
	newLength := p.headLength + 1
	if newLength > len(p.candidates) {
		newLength = len(p.candidates)
	}
	ns.inArc = p.candidates[0]
	p.candidates[0] = p.candidates[newLength-1]
	p.currLength = newLength - 1
	p.candidates = p.candidates[:p.currLength]
	return true
}
