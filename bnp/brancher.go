// Package bnp - branching candidate selection with strong branching.
//
// Candidates are (match, round) cells scored by how fractional their
// aggregated LP value is. Near the root the best-ranked cells are tried on
// both sides through a Prober, and the one with the largest bound product
// wins; deeper nodes take the top-ranked cell.
package bnp

import (
	"context"
	"math"
	"sort"

	"github.com/op/go-logging"

	"github.com/katalvlaran/rrsched/master"
	"github.com/katalvlaran/rrsched/srr"
)

//go:generate mockgen -source brancher.go -destination prober_mock.go -package bnp

// Prober solves the LP of a temporary child of a node. Implementations
// must leave the master exactly as they found it.
type Prober interface {
	Probe(ctx context.Context, nd *Node, c Constraint) (ProbeResult, error)
}

const (
	// bestRoundBonus lifts the best-scoring round of each match.
	bestRoundBonus = 0.2

	// bestRoundTol is the score window that counts as "best round".
	bestRoundTol = 1e-6

	// productShift keeps the strong-branching product positive when one
	// side does not move the bound.
	productShift = 0.1
)

// Brancher chooses a (match, round) cell to split a fractional node on.
type Brancher struct {
	p      *srr.Problem
	m      *master.Master
	prober Prober
	opts   Options
	log    *logging.Logger
}

// NewBrancher returns a brancher. prober may be nil when strong branching
// is disabled.
func NewBrancher(p *srr.Problem, m *master.Master, prober Prober, opts Options) *Brancher {
	return &Brancher{p: p, m: m, prober: prober, opts: opts, log: opts.logger()}
}

// Aggregate returns y[k*rounds+r]: the LP mass of columns of round r that
// contain match k.
//
// Complexity: O(columns · n).
func (b *Brancher) Aggregate(sol *master.Solution) []float64 {
	y := make([]float64, b.p.NumMatches()*b.p.NRounds)
	for id, v := range sol.Values {
		if v == 0 {
			continue
		}
		c, err := b.m.Column(id)
		if err != nil {
			continue
		}
		for _, k := range c.Matches {
			y[k*b.p.NRounds+c.Round] += v
		}
	}

	return y
}

// Integral reports whether every aggregated cell is within the
// integrality tolerance of 0 or 1.
func (b *Brancher) Integral(y []float64) bool {
	for _, v := range y {
		if math.Min(v, 1-v) > b.opts.IntegralityTol {
			return false
		}
	}

	return true
}

// Scores rates each cell. Integral cells get -1. A fractional cell gets
// min(y,1-y)·(1+|c|)·y², and per match the rounds within a tiny window of
// the best score get a bonus.
func (b *Brancher) Scores(y []float64) []float64 {
	R := b.p.NRounds
	scores := make([]float64, len(y))
	for k := 0; k < b.p.NumMatches(); k++ {
		best := -1.0
		for r := 0; r < R; r++ {
			v := y[k*R+r]
			frac := math.Min(v, 1-v)
			if frac <= b.opts.IntegralityTol {
				scores[k*R+r] = -1
				continue
			}
			s := frac * (1 + math.Abs(b.p.MatchCost(k, r))) * v * v
			scores[k*R+r] = s
			best = math.Max(best, s)
		}
		if best == -1 {
			continue
		}
		for r := 0; r < R; r++ {
			if scores[k*R+r] > best-bestRoundTol {
				scores[k*R+r] += bestRoundBonus
			}
		}
	}

	return scores
}

// Rank returns the cell indices ordered by descending score. Equal scores
// keep index order.
func Rank(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, c int) bool { return scores[idx[a]] > scores[idx[c]] })

	return idx
}

// Budget returns how many candidates are probed at the given depth:
// min(total, ceil(total · fraction · decay^depth)).
func (b *Brancher) Budget(depth int) int {
	total := b.p.NumMatches() * b.p.NRounds
	if !b.opts.StrongBranching || b.prober == nil {
		return 1
	}
	budget := int(math.Ceil(float64(total) * b.opts.StrongFraction * math.Pow(b.opts.StrongDecay, float64(depth))))
	if budget > total {
		budget = total
	}

	return budget
}

// Branch picks the branching cell for nd given its converged LP solution.
//
// Stage 1 (Aggregate): y[k,r] from the column values.
// Stage 2 (Score): rank fractional cells.
// Stage 3 (Probe): with a budget above one, probe "diff" then "same" for
// each candidate; the first candidate with an infeasible side wins,
// otherwise the largest (Δdiff+0.1)(Δsame+0.1) wins, first found on ties.
// Stage 4 (Split): build the two children.
//
// Complexity: O(columns·n + cells·log cells) plus the probes.
func (b *Brancher) Branch(ctx context.Context, nd *Node, sol *master.Solution) (*BranchResult, error) {
	y := b.Aggregate(sol)
	if b.Integral(y) {
		return &BranchResult{Status: StatusNoCandidate}, nil
	}
	scores := b.Scores(y)
	order := Rank(scores)
	R := b.p.NRounds

	res := &BranchResult{}
	chosen := order[0]
	sameBound, diffBound := nd.LowerBound, nd.LowerBound

	if budget := b.Budget(nd.Depth); budget > 1 {
		cur := sol.Objective
		bestProduct := -1.0
		for _, cell := range order[:budget] {
			if scores[cell] == -1 {
				break
			}
			i, j := srr.TeamsOfIndex(b.p.NTeams, cell/R)
			c := NewConstraint(i, j, cell%R, true)

			diff, err := b.prober.Probe(ctx, nd, c.Negate())
			if err != nil {
				return nil, err
			}
			same, err := b.prober.Probe(ctx, nd, c)
			if err != nil {
				return nil, err
			}
			res.Probes += 2

			if diff.Cutoff && same.Cutoff {
				b.log.Debugf("node %d: both sides of %s infeasible", nd.ID, c)
				res.Status = StatusPruneNode
				res.Candidate = c
				res.Value = y[cell]
				return res, nil
			}
			if diff.Cutoff || same.Cutoff {
				chosen = cell
				sameBound = probeBound(nd, same)
				diffBound = probeBound(nd, diff)
				break
			}

			product := (diff.Objective - cur + productShift) * (same.Objective - cur + productShift)
			if product > bestProduct {
				bestProduct = product
				chosen = cell
				sameBound = probeBound(nd, same)
				diffBound = probeBound(nd, diff)
			}
		}
	}

	k, r := chosen/R, chosen%R
	i, j := srr.TeamsOfIndex(b.p.NTeams, k)
	cand := NewConstraint(i, j, r, true)
	coef := b.p.Cost(i, j, r)

	res.Status = StatusBranched
	res.Candidate = cand
	res.Value = y[chosen]

	res.Same = nd.Child(cand)
	res.Same.Priority = 1 + coef
	res.Same.Estimate = nd.Estimate + (1-y[chosen])*coef
	res.Same.LowerBound = sameBound

	res.Diff = nd.Child(cand.Negate())
	res.Diff.Priority = 0
	res.Diff.Estimate = nd.Estimate
	res.Diff.LowerBound = diffBound

	b.log.Debugf("node %d: branching on %s (y=%.4f)", nd.ID, cand, y[chosen])

	return res, nil
}

// probeBound turns a probe outcome into a child bound; infeasible children
// get +Inf.
func probeBound(nd *Node, pr ProbeResult) float64 {
	if pr.Cutoff {
		return math.Inf(1)
	}

	return math.Max(nd.LowerBound, pr.Objective)
}
