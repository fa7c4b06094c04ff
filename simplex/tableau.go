// Package simplex - dense tableau and pivoting rules.
package simplex

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// tableau stores B⁻¹[A I b] in rows 0..m-1 and the reduced costs with -z
// in row m. The artificial block therefore always holds B⁻¹, which is
// where the row prices are read from.
type tableau struct {
	m, n  int
	t     *mat.Dense
	basis []int
	opts  Options
	iters int
}

// newTableau loads [A I b] with the artificial basis and the phase-one
// objective 1ᵀa already priced out.
func newTableau(A mat.Matrix, b []float64, opts Options) *tableau {
	m, n := A.Dims()
	w := n + m + 1
	tb := &tableau{
		m:     m,
		n:     n,
		t:     mat.NewDense(m+1, w, nil),
		basis: make([]int, m),
		opts:  opts,
	}
	obj := tb.t.RawRowView(m)
	for i := 0; i < m; i++ {
		row := tb.t.RawRowView(i)
		for j := 0; j < n; j++ {
			row[j] = A.At(i, j)
		}
		row[n+i] = 1
		row[w-1] = b[i]
		tb.basis[i] = n + i

		floats.Sub(obj[:n], row[:n])
		obj[w-1] -= b[i]
	}

	return tb
}

// rhs is the index of the b column.
func (tb *tableau) rhs() int { return tb.n + tb.m }

// objective returns the current value z of the phase objective.
func (tb *tableau) objective() float64 { return -tb.t.At(tb.m, tb.rhs()) }

// run pivots until no column below limit has a negative reduced cost.
// Entering columns follow Dantzig's rule; after degenerateRun degenerate
// pivots in a row it falls back to Bland's rule until the objective moves
// again, which rules out cycling.
func (tb *tableau) run(ctx context.Context, limit int) error {
	var (
		obj   = tb.t.RawRowView(tb.m)
		bland bool
		degen int
	)
	for steps := 0; ; steps++ {
		q := tb.entering(obj[:limit], bland)
		if q < 0 {
			return nil
		}
		r, step := tb.leaving(q, bland)
		if r < 0 {
			return fmt.Errorf("%w: column %d", ErrUnbounded, q)
		}
		if steps >= tb.opts.MaxIter {
			return fmt.Errorf("%w: %d pivots", ErrIterationLimit, steps)
		}
		if steps%ctxStride == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		tb.pivot(r, q)
		tb.iters++
		if step <= tb.opts.Tol {
			if degen++; degen >= degenerateRun {
				bland = true
			}
		} else {
			degen, bland = 0, false
		}
	}
}

// entering returns the column with the most negative reduced cost, or the
// first negative one under Bland's rule. -1 means optimal.
func (tb *tableau) entering(d []float64, bland bool) int {
	q, best := -1, -tb.opts.Tol
	for j, v := range d {
		if v >= best {
			continue
		}
		if bland {
			return j
		}
		q, best = j, v
	}

	return q
}

// leaving runs the ratio test on column q. Ties go to the smallest basic
// index under Bland's rule and to the largest pivot otherwise. It returns
// the row and the step length, or -1 when column q is unbounded.
func (tb *tableau) leaving(q int, bland bool) (int, float64) {
	var (
		r     = -1
		best  = math.Inf(1)
		pivot float64
		col   = tb.rhs()
	)
	for i := 0; i < tb.m; i++ {
		a := tb.t.At(i, q)
		if a <= pivotTol {
			continue
		}
		ratio := math.Max(tb.t.At(i, col), 0) / a
		switch {
		case r < 0 || ratio < best-pivotTol:
		case ratio <= best+pivotTol && bland && tb.basis[i] < tb.basis[r]:
		case ratio <= best+pivotTol && !bland && a > pivot:
		default:
			continue
		}
		r, best, pivot = i, ratio, a
	}

	return r, best
}

// pivot makes column q basic in row r.
func (tb *tableau) pivot(r, q int) {
	pr := tb.t.RawRowView(r)
	floats.Scale(1/pr[q], pr)
	pr[q] = 1
	for i := 0; i <= tb.m; i++ {
		if i == r {
			continue
		}
		row := tb.t.RawRowView(i)
		if f := row[q]; f != 0 {
			floats.AddScaled(row, -f, pr)
			row[q] = 0
		}
	}
	tb.basis[r] = q
}

// dropArtificials pivots every basic artificial out on its largest
// structural entry. An artificial whose row has no such entry belongs to a
// redundant row and stays basic at zero.
func (tb *tableau) dropArtificials() {
	col := tb.rhs()
	for r, j := range tb.basis {
		if j < tb.n {
			continue
		}
		row := tb.t.RawRowView(r)
		row[col] = 0
		q, best := -1, pivotTol
		for k := 0; k < tb.n; k++ {
			if a := math.Abs(row[k]); a > best {
				q, best = k, a
			}
		}
		if q >= 0 {
			tb.pivot(r, q)
		}
	}
}

// price replaces the objective row by c and eliminates the basic columns.
// Artificials cost nothing in phase two.
func (tb *tableau) price(c []float64) {
	obj := tb.t.RawRowView(tb.m)
	for k := range obj {
		obj[k] = 0
	}
	copy(obj, c)
	for r, j := range tb.basis {
		if j < tb.n && c[j] != 0 {
			floats.AddScaled(obj, -c[j], tb.t.RawRowView(r))
		}
	}
}

// duals returns y = c_B B⁻¹, read from the artificial block of the
// objective row as y_i = artCost - d_{n+i}.
func (tb *tableau) duals(artCost float64) []float64 {
	obj := tb.t.RawRowView(tb.m)
	y := make([]float64, tb.m)
	for i := range y {
		y[i] = artCost - obj[tb.n+i]
	}

	return y
}

// primal reads the basic structural values; nonbasic columns are zero.
func (tb *tableau) primal() []float64 {
	x := make([]float64, tb.n)
	col := tb.rhs()
	for r, j := range tb.basis {
		if j < tb.n {
			x[j] = math.Max(tb.t.At(r, col), 0)
		}
	}

	return x
}
