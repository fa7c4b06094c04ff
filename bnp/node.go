// Package bnp - search nodes and their (match, round) bitmaps.
package bnp

import (
	"github.com/yourbasic/bit"

	"github.com/katalvlaran/rrsched/master"
	"github.com/katalvlaran/rrsched/srr"
)

// Node is a search-tree node. Its branching decision is immutable once the
// node is created.
type Node struct {
	ID     int
	Parent *Node
	Depth  int

	// Constraint is the decision that created the node; nil at the root.
	Constraint *Constraint

	// Estimate and Priority order siblings; LowerBound is the best known
	// bound for the subtree.
	Estimate   float64
	Priority   float64
	LowerBound float64

	// fixed holds root-level decisions; only set on the root.
	fixed []Constraint

	nTeams  int
	nRounds int

	// feasible holds cell k*nRounds+r iff match k may be played in round r.
	feasible *bit.Set
}

// NewRoot returns the root node of p with the given fixings applied.
func NewRoot(p *srr.Problem, fixings ...Constraint) *Node {
	nd := &Node{
		nTeams:   p.NTeams,
		nRounds:  p.NRounds,
		feasible: new(bit.Set).AddRange(0, p.NumMatches()*p.NRounds),
	}
	for _, c := range fixings {
		nd.fixed = append(nd.fixed, c)
		nd.apply(c)
	}

	return nd
}

// Child returns a new node below nd carrying c. The child inherits nd's
// bitmap and lower bound.
//
// Complexity: O(cells/64 + n·rounds).
func (nd *Node) Child(c Constraint) *Node {
	cc := c
	child := &Node{
		Parent:     nd,
		Depth:      nd.Depth + 1,
		Constraint: &cc,
		Estimate:   nd.Estimate,
		LowerBound: nd.LowerBound,
		nTeams:     nd.nTeams,
		nRounds:    nd.nRounds,
		feasible:   new(bit.Set).Set(nd.feasible),
	}
	child.apply(c)

	return child
}

// apply removes the cells excluded by c from the bitmap.
//
// same({i,j}@r): every other edge touching i or j is excluded in round r,
// and {i,j} is excluded in every other round.
// diff({i,j}@r): {i,j} is excluded in round r.
func (nd *Node) apply(c Constraint) {
	n := nd.nTeams
	k := srr.MatchIndex(n, c.I, c.J)
	if !c.Permitted {
		nd.feasible.Delete(nd.cell(k, c.R))
		return
	}

	for r := 0; r < nd.nRounds; r++ {
		if r != c.R {
			nd.feasible.Delete(nd.cell(k, r))
		}
	}
	for x := 0; x < n; x++ {
		for _, t := range [2]int{c.I, c.J} {
			if x == t {
				continue
			}
			if kk := srr.PairIndex(n, t, x); kk != k {
				nd.feasible.Delete(nd.cell(kk, c.R))
			}
		}
	}
}

func (nd *Node) cell(k, r int) int { return k*nd.nRounds + r }

// EdgeExists reports whether match k may be played in round r at nd.
//
// Complexity: O(1).
func (nd *Node) EdgeExists(k, r int) bool {
	return nd.feasible.Contains(nd.cell(k, r))
}

// Admits reports whether column c is consistent with every decision on the
// path to nd.
func (nd *Node) Admits(c *master.Column) bool {
	for _, k := range c.Matches {
		if !nd.EdgeExists(k, c.Round) {
			return false
		}
	}

	return true
}

// FeasibleCells returns the number of admissible (match, round) cells.
func (nd *Node) FeasibleCells() int { return nd.feasible.Size() }

// Within reports whether nd's admissible cells are a subset of other's.
func (nd *Node) Within(other *Node) bool { return nd.feasible.Subset(other.feasible) }

// Chain returns the decisions from the root to nd, root fixings first.
func (nd *Node) Chain() []Constraint {
	var rev []Constraint
	root := nd
	for cur := nd; cur != nil; cur = cur.Parent {
		if cur.Constraint != nil {
			rev = append(rev, *cur.Constraint)
		}
		root = cur
	}

	out := append([]Constraint(nil), root.fixed...)
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}

	return out
}

// Starved reports whether some team has no admissible opponent in some
// round, or some match has no admissible round. Either makes the node
// infeasible.
//
// Complexity: O(n²·rounds).
func (nd *Node) Starved() bool {
	n := nd.nTeams
	for r := 0; r < nd.nRounds; r++ {
		for t := 0; t < n; t++ {
			ok := false
			for x := 0; x < n && !ok; x++ {
				ok = x != t && nd.EdgeExists(srr.PairIndex(n, t, x), r)
			}
			if !ok {
				return true
			}
		}
	}
	for k := 0; k < srr.NumMatches(n); k++ {
		ok := false
		for r := 0; r < nd.nRounds && !ok; r++ {
			ok = nd.EdgeExists(k, r)
		}
		if !ok {
			return true
		}
	}

	return false
}
