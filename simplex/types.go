// Package simplex - sentinel errors, tolerances and the Options/Result types.
package simplex

import "errors"

var (
	// ErrNegativeRHS is returned when some b[i] < 0.
	ErrNegativeRHS = errors.New("simplex: right-hand side must be non-negative")

	// ErrZeroColumn is returned when a structural column of A is all zero.
	ErrZeroColumn = errors.New("simplex: structural column is all zero")

	// ErrDimensionMismatch is returned when c or b disagree with A's shape.
	ErrDimensionMismatch = errors.New("simplex: dimension mismatch")

	// ErrNonFinite is returned when c, A or b holds NaN or ±Inf.
	ErrNonFinite = errors.New("simplex: non-finite input")

	// ErrUnbounded is returned when cᵀx has no lower bound on the feasible set.
	ErrUnbounded = errors.New("simplex: problem is unbounded")

	// ErrIterationLimit is returned when a phase exceeds Options.MaxIter pivots.
	ErrIterationLimit = errors.New("simplex: iteration limit reached")
)

// Default tolerances.
const (
	// DefaultTol is the reduced-cost tolerance.
	DefaultTol = 1e-9

	// DefaultFeasTol bounds the artificial mass of a feasible solution.
	DefaultFeasTol = 1e-7

	// pivotTol is the smallest |entry| accepted as a pivot.
	pivotTol = 1e-9

	// degenerateRun is the number of consecutive degenerate pivots after
	// which the entering rule switches from Dantzig to Bland.
	degenerateRun = 8

	// ctxStride is how many pivots run between two context checks.
	ctxStride = 16
)

// Options tunes Solve.
type Options struct {
	// Tol is the reduced-cost tolerance; zero selects DefaultTol.
	Tol float64

	// FeasTol is the artificial-mass threshold; zero selects DefaultFeasTol.
	FeasTol float64

	// MaxIter caps the pivots of each phase. Zero selects
	// 50*(rows+cols) + 1000.
	MaxIter int
}

// DefaultOptions returns zero-valued Options, resolved lazily by Solve.
func DefaultOptions() Options { return Options{} }

func (o Options) resolve(m, n int) Options {
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	if o.FeasTol <= 0 {
		o.FeasTol = DefaultFeasTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = 50*(m+n) + 1000
	}

	return o
}

// Result is an LP outcome.
type Result struct {
	// Infeasible is set when no x >= 0 satisfies A x = b.
	Infeasible bool

	// X holds the structural values; nil when Infeasible.
	X []float64

	// Objective is cᵀX; zero when Infeasible.
	Objective float64

	// Duals holds one price per row. For an infeasible LP it is a Farkas
	// ray: Aᵀy <= 0 and bᵀy > 0.
	Duals []float64

	// Iterations counts the pivots of both phases.
	Iterations int
}
