// Package bnp - column pricing by maximum-weight perfect matching.
package bnp

import (
	"errors"
	"math"

	"github.com/katalvlaran/rrsched/master"
	"github.com/katalvlaran/rrsched/matching"
	"github.com/katalvlaran/rrsched/srr"
)

// Pricer generates improving (round, matching) columns.
type Pricer struct {
	p       *srr.Problem
	m       *master.Master
	tol     float64
	zeroTol float64
}

// NewPricer returns a pricer adding columns to m.
func NewPricer(p *srr.Problem, m *master.Master, tol, zeroTol float64) *Pricer {
	return &Pricer{p: p, m: m, tol: tol, zeroTol: zeroTol}
}

// Price runs one pass over all rounds at node nd. Edge weights are the
// match duals minus the round's costs, or the bare Farkas values when sol
// is infeasible. A round contributes a column when its round dual plus the
// matching weight exceeds the pricing tolerance. Edges excluded at nd are
// never used.
//
// Complexity: O(rounds · n³).
func (pr *Pricer) Price(nd *Node, sol *master.Solution) (*PricingResult, error) {
	var (
		n       = pr.p.NTeams
		m       = pr.p.NumMatches()
		farkas  = sol.Infeasible
		weights = make([]float64, m)
		exists  = make([]bool, m)
		res     = &PricingResult{Status: StatusExhausted}
	)
	// L(σ) = Σσ_k − Σ_r w_r bounds the node LP for any match duals σ.
	for k := 0; k < m; k++ {
		res.LagrangianBound += pr.flush(sol.MatchDuals[k])
	}

	for r := 0; r < pr.p.NRounds; r++ {
		for k := 0; k < m; k++ {
			w := pr.flush(sol.MatchDuals[k])
			if !farkas {
				w -= pr.p.MatchCost(k, r)
			}
			weights[k] = w
			exists[k] = nd.EdgeExists(k, r)
		}

		mt, err := matching.MaxWeightPerfect(n, weights, exists)
		if errors.Is(err, matching.ErrNoPerfectMatching) {
			res.RoundWithoutMatching = true
			continue
		}
		if err != nil {
			return nil, err
		}

		res.LagrangianBound -= mt.Weight
		profit := pr.flush(sol.RoundDuals[r]) + mt.Weight
		if profit <= pr.tol {
			continue
		}

		var cost float64
		for _, k := range mt.Edges {
			cost += pr.p.MatchCost(k, r)
		}
		id, err := pr.m.AddColumn(r, mt.Edges, cost, true)
		if errors.Is(err, master.ErrDuplicateColumn) {
			// Already present and active: the LP disagrees only within
			// tolerance, so there is nothing to add.
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Added = append(res.Added, id)
	}

	if len(res.Added) > 0 {
		res.Status = StatusAdded
	}
	if farkas || res.RoundWithoutMatching {
		res.LagrangianBound = math.Inf(-1)
	}

	return res, nil
}

func (pr *Pricer) flush(v float64) float64 {
	if math.Abs(v) < pr.zeroTol {
		return 0
	}

	return v
}
