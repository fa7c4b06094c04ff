// Package bnp - bound propagation of branching decisions onto the master.
package bnp

import (
	"github.com/katalvlaran/rrsched/master"
)

// Propagator keeps column bounds consistent with the active node.
type Propagator struct {
	m *master.Master
}

// NewPropagator returns a propagator over m.
func NewPropagator(m *master.Master) *Propagator {
	return &Propagator{m: m}
}

// Reset re-enables every column. It is called when the search moves to a
// node, before Propagate narrows the bounds again.
func (pp *Propagator) Reset() {
	pp.m.ResetBounds()
}

// Propagate disables every enabled column that nd does not admit. It is
// monotone and idempotent: a second call at the same node tightens
// nothing. StatusCutoff is reported when nd is starved.
//
// Complexity: O(columns · n).
func (pp *Propagator) Propagate(nd *Node) (*PropagationResult, error) {
	res := &PropagationResult{Status: StatusNoReduction}
	if nd.Starved() {
		res.Status = StatusCutoff
		return res, nil
	}

	for _, c := range pp.m.Columns() {
		if !c.Active() || nd.Admits(c) {
			continue
		}
		if err := pp.m.SetUpperBound(c.ID, 0); err != nil {
			return nil, err
		}
		res.Tightened = append(res.Tightened, c.ID)
	}
	if len(res.Tightened) > 0 {
		res.Status = StatusReduced
	}

	return res, nil
}
