// Package simplex solves equality-form linear programs and reports row
// prices alongside the primal solution.
//
// Problems have the shape
//
//	minimize   cᵀx
//	subject to A x = b, x >= 0, b >= 0.
//
// Solve keeps a dense tableau over [A I b] in a gonum mat.Dense, with one
// artificial column per row. The artificial block always equals B⁻¹, so
// the row prices y = c_B B⁻¹ come straight out of the objective row and
// no separate dual program is solved.
//
//  1. Phase one minimizes the artificial mass 1ᵀa. A positive optimum
//     proves infeasibility; its prices form a Farkas ray with Aᵀy <= 0
//     and bᵀy > 0.
//  2. Artificials still basic are pivoted out on any structural entry.
//     Rows without one are redundant and keep their artificial at zero,
//     so rank-deficient matrices need no preprocessing.
//  3. Phase two prices out c with artificials barred from entering.
//
// Entering columns follow Dantzig's rule. A run of degenerate pivots
// switches to Bland's rule until the objective improves, so degenerate
// programs terminate. Each phase is capped by Options.MaxIter and the
// context is polled while pivoting.
//
// Errors: ErrNegativeRHS, ErrZeroColumn, ErrDimensionMismatch,
// ErrNonFinite, ErrUnbounded, ErrIterationLimit, and the context's error.
package simplex
