// Package simplex - two-phase entry point and input validation.
package simplex

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solve minimizes cᵀx over A x = b, x >= 0 with the two-phase tableau
// method described in the package documentation. A nil A stands for a
// program with len(b) rows and no columns.
//
// ctx is checked before the first pivot and every few pivots after it; a
// canceled or expired context aborts the solve with ctx.Err().
//
// Complexity: O((rows+1)·(rows+cols)) per pivot, at most Options.MaxIter
// pivots per phase.
func Solve(ctx context.Context, c []float64, A mat.Matrix, b []float64, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if A == nil {
		return solveEmpty(c, b, opts)
	}

	// Stage 1 (Validate)
	m, n := A.Dims()
	if len(c) != n || len(b) != m {
		return nil, fmt.Errorf("%w: A is %dx%d, len(c)=%d, len(b)=%d",
			ErrDimensionMismatch, m, n, len(c), len(b))
	}
	if err := checkVectors(c, b); err != nil {
		return nil, err
	}
	for j := 0; j < n; j++ {
		zero := true
		for i := 0; i < m; i++ {
			a := A.At(i, j)
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return nil, fmt.Errorf("%w: A[%d,%d]=%g", ErrNonFinite, i, j, a)
			}
			zero = zero && a == 0
		}
		if zero {
			return nil, fmt.Errorf("%w: column %d", ErrZeroColumn, j)
		}
	}
	opts = opts.resolve(m, n)

	// Stage 2 (Phase one): minimize the artificial mass.
	tb := newTableau(A, b, opts)
	if err := tb.run(ctx, n+m); err != nil {
		return nil, fmt.Errorf("simplex: phase one: %w", err)
	}
	if tb.objective() > opts.FeasTol {
		return &Result{Infeasible: true, Duals: tb.duals(1), Iterations: tb.iters}, nil
	}

	// Stage 3 (Phase two): price out c with artificials barred from entering.
	tb.dropArtificials()
	tb.price(c)
	if err := tb.run(ctx, n); err != nil {
		return nil, fmt.Errorf("simplex: phase two: %w", err)
	}
	x := tb.primal()

	return &Result{
		X:          x,
		Objective:  floats.Dot(c, x),
		Duals:      tb.duals(0),
		Iterations: tb.iters,
	}, nil
}

// solveEmpty handles a program without columns: it is feasible iff b = 0,
// and y_i = 1 on every positive row is an optimal phase-one ray.
func solveEmpty(c, b []float64, opts Options) (*Result, error) {
	if len(c) != 0 {
		return nil, fmt.Errorf("%w: no columns, len(c)=%d", ErrDimensionMismatch, len(c))
	}
	if err := checkVectors(nil, b); err != nil {
		return nil, err
	}
	opts = opts.resolve(len(b), 0)

	ray := make([]float64, len(b))
	var mass float64
	for i, v := range b {
		if v > 0 {
			ray[i] = 1
			mass += v
		}
	}
	if mass > opts.FeasTol {
		return &Result{Infeasible: true, Duals: ray}, nil
	}

	return &Result{X: []float64{}, Duals: make([]float64, len(b))}, nil
}

// checkVectors rejects non-finite entries in c and b and negative entries
// in b.
func checkVectors(c, b []float64) error {
	for j, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: c[%d]=%g", ErrNonFinite, j, v)
		}
	}
	for i, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: b[%d]=%g", ErrNonFinite, i, v)
		}
		if v < 0 {
			return fmt.Errorf("%w: b[%d]=%g", ErrNegativeRHS, i, v)
		}
	}

	return nil
}
