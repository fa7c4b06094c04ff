// Package compact solves the LP relaxation of the assignment formulation of
// a round-robin instance: one variable per (match, round) cell.
//
// Every schedule is a feasible 0/1 point of this LP, and every convex
// combination of (round, matching) columns projects onto it, so its value
// bounds the optimum and the branch-and-price root bound from below.
package compact

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rrsched/simplex"
	"github.com/katalvlaran/rrsched/srr"
)

// ErrInfeasible is returned when the relaxation has no solution; this only
// happens on malformed problems.
var ErrInfeasible = errors.New("compact: relaxation infeasible")

// Relaxation is the solved compact LP.
type Relaxation struct {
	// Bound is the LP optimum.
	Bound float64

	// X holds x[k*rounds+r].
	X []float64
}

// Fractional returns the number of cells strictly between 0 and 1 by more
// than tol.
func (rx *Relaxation) Fractional(tol float64) int {
	n := 0
	for _, v := range rx.X {
		if v > tol && v < 1-tol {
			n++
		}
	}

	return n
}

// RelaxationBound returns the compact LP bound of p.
func RelaxationBound(ctx context.Context, p *srr.Problem) (float64, error) {
	rx, err := Solve(ctx, p, simplex.DefaultOptions())
	if err != nil {
		return 0, err
	}

	return rx.Bound, nil
}

// Solve builds and solves
//
//	min  Σ c[k,r]·x[k,r]
//	s.t. Σ_r x[k,r] = 1             for every match k
//	     Σ_{k∋t} x[k,r] = 1         for every team t and round r
//	     x ≥ 0
//
// Rows are laid out matches first, then (team, round) pairs team-major.
//
// Complexity: dominated by simplex.Solve on a (M + n·rounds) x (M·rounds)
// matrix, M = n(n-1)/2.
func Solve(ctx context.Context, p *srr.Problem, opts simplex.Options) (*Relaxation, error) {
	var (
		n    = p.NTeams
		R    = p.NRounds
		M    = p.NumMatches()
		rows = M + n*R
		cols = M * R
	)

	A := mat.NewDense(rows, cols, nil)
	c := make([]float64, cols)
	b := make([]float64, rows)
	for i := range b {
		b[i] = 1
	}

	for k := 0; k < M; k++ {
		i, j := srr.TeamsOfIndex(n, k)
		for r := 0; r < R; r++ {
			col := k*R + r
			c[col] = p.MatchCost(k, r)
			A.Set(k, col, 1)
			A.Set(M+i*R+r, col, 1)
			A.Set(M+j*R+r, col, 1)
		}
	}

	res, err := simplex.Solve(ctx, c, A, b, opts)
	if err != nil {
		return nil, fmt.Errorf("compact: %w", err)
	}
	if res.Infeasible {
		return nil, ErrInfeasible
	}

	return &Relaxation{Bound: res.Objective, X: res.X}, nil
}
