package bnp

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/rrsched/master"
	"github.com/katalvlaran/rrsched/srr"
)

var (
	// ErrBadOption is returned by NewSolver for invalid options.
	ErrBadOption = errors.New("bnp: invalid option")

	// ErrBadConstraint is returned for a branching constraint outside the
	// instance.
	ErrBadConstraint = errors.New("bnp: invalid constraint")
)

// Constraint is a branching decision on match {I,J}, I < J, in round R.
// Permitted forces the match into R ("same"); otherwise the match is kept
// out of R ("diff").
type Constraint struct {
	I, J, R   int
	Permitted bool
}

// NewConstraint returns the constraint on {a,b} in round r, normalizing the
// team order.
func NewConstraint(a, b, r int, permitted bool) Constraint {
	if a > b {
		a, b = b, a
	}

	return Constraint{I: a, J: b, R: r, Permitted: permitted}
}

// Negate returns the complementary decision on the same (match, round).
func (c Constraint) Negate() Constraint {
	c.Permitted = !c.Permitted

	return c
}

// Validate checks c against an instance with n teams.
func (c Constraint) Validate(n int) error {
	if c.I < 0 || c.J >= n || c.I >= c.J || c.R < 0 || c.R >= n-1 {
		return fmt.Errorf("%w: %s with %d teams", ErrBadConstraint, c, n)
	}

	return nil
}

// String renders "same({i,j}@r)" or "diff({i,j}@r)".
func (c Constraint) String() string {
	kind := "diff"
	if c.Permitted {
		kind = "same"
	}

	return fmt.Sprintf("%s({%d,%d}@%d)", kind, c.I, c.J, c.R)
}

// Status is the outcome of a pricing, propagation or branching call.
type Status int

const (
	// StatusExhausted: pricing found no improving column.
	StatusExhausted Status = iota
	// StatusAdded: pricing added at least one column.
	StatusAdded
	// StatusNoReduction: propagation changed no bound.
	StatusNoReduction
	// StatusReduced: propagation disabled at least one column.
	StatusReduced
	// StatusCutoff: the node is infeasible.
	StatusCutoff
	// StatusBranched: two children were created.
	StatusBranched
	// StatusPruneNode: both probes were infeasible; the node can be dropped.
	StatusPruneNode
	// StatusNoCandidate: the LP solution is integral.
	StatusNoCandidate
)

var statusNames = [...]string{
	"exhausted", "added", "no-reduction", "reduced", "cutoff", "branched", "prune-node", "no-candidate",
}

// String returns the lowercase status name.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}

	return statusNames[s]
}

// PricingResult reports one pricing pass.
type PricingResult struct {
	Status Status

	// Added lists the new columns in round order.
	Added []master.ColumnID

	// RoundWithoutMatching is set when some round admits no perfect
	// matching at the node; the node is then infeasible.
	RoundWithoutMatching bool

	// LagrangianBound is a valid lower bound on the node's LP value,
	// available for feasible pricing without RoundWithoutMatching.
	LagrangianBound float64
}

// PropagationResult reports one propagation call.
type PropagationResult struct {
	Status    Status
	Tightened []master.ColumnID
}

// ProbeResult is the LP outcome of a temporary child.
type ProbeResult struct {
	Cutoff    bool
	Objective float64
}

// BranchResult reports one branching decision.
type BranchResult struct {
	Status Status

	// Candidate is the chosen cell in its "same" form.
	Candidate Constraint

	// Value is y[k,r] of the chosen cell.
	Value float64

	// Same and Diff are the children; nil unless Status is StatusBranched.
	Same *Node
	Diff *Node

	// Probes counts strong-branching LP excursions.
	Probes int
}

// SolveStatus describes how a search ended.
type SolveStatus int

const (
	// Optimal: the incumbent is proven optimal.
	Optimal SolveStatus = iota
	// Infeasible: no schedule satisfies the fixings.
	Infeasible
	// NodeLimit: the node budget ran out.
	NodeLimit
	// TimeLimit: the time budget ran out.
	TimeLimit
	// Canceled: the context was canceled.
	Canceled
)

var solveStatusNames = [...]string{"optimal", "infeasible", "node-limit", "time-limit", "canceled"}

// String returns the lowercase status name.
func (s SolveStatus) String() string {
	if s < 0 || int(s) >= len(solveStatusNames) {
		return fmt.Sprintf("solve-status(%d)", int(s))
	}

	return solveStatusNames[s]
}

// Stats counts search events.
type Stats struct {
	Nodes          int
	Pruned         int
	LPSolves       int
	PricingRounds  int
	ColumnsAdded   int
	ColumnsDeleted int
	Probes         int
	MaxDepth       int
	Incumbents     int
	Elapsed        time.Duration
}

// Result is the outcome of Solver.Solve.
type Result struct {
	Status SolveStatus

	// Schedule is the best schedule found; nil if none.
	Schedule *srr.Schedule

	// Objective is the cost of Schedule.
	Objective float64

	// RootBound is the LP bound of the root node.
	RootBound float64

	// LowerBound is the best proven bound on the optimum.
	LowerBound float64

	Stats Stats
}

// Gap returns the relative gap between Objective and LowerBound.
func (r *Result) Gap() float64 {
	if r.Schedule == nil {
		return 1
	}
	d := r.Objective - r.LowerBound
	if d <= 0 {
		return 0
	}
	den := r.Objective
	if den < 0 {
		den = -den
	}
	if den < 1 {
		den = 1
	}

	return d / den
}
