package bnp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/katalvlaran/rrsched/bnp"
	"github.com/katalvlaran/rrsched/master"
	"github.com/katalvlaran/rrsched/srr"
)

// halfK4 builds the fractional K4 point where every round holds half of
// two matchings: rounds (0,1), (1,2), (2,0). Every match sits at 0.5 in two
// rounds.
func halfK4(t *testing.T) (*srr.Problem, *master.Master, *master.Solution) {
	t.Helper()
	p, m := newK4(t)
	sol := &master.Solution{Values: map[master.ColumnID]float64{}}
	for r := 0; r < 3; r++ {
		for _, mt := range [][]int{k4Matchings[r], k4Matchings[(r+1)%3]} {
			id, err := m.AddColumn(r, mt, 0, true)
			require.NoError(t, err)
			sol.Values[id] = 0.5
		}
	}

	return p, m, sol
}

func quietOptions(opts ...bnp.Option) bnp.Options {
	o := bnp.DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

func TestAggregateAndScores(t *testing.T) {
	p, m, sol := halfK4(t)
	b := bnp.NewBrancher(p, m, nil, quietOptions())

	y := b.Aggregate(sol)
	require.Len(t, y, 18)
	// {0,1} is in matching 0, used by rounds 0 and 2.
	assert.InDelta(t, 0.5, y[0*3+0], 1e-12)
	assert.InDelta(t, 0, y[0*3+1], 1e-12)
	assert.InDelta(t, 0.5, y[0*3+2], 1e-12)
	assert.False(t, b.Integral(y))

	scores := b.Scores(y)
	assert.Equal(t, -1.0, scores[1])
	assert.InDelta(t, 0.5*0.25+0.2, scores[0], 1e-12)

	order := bnp.Rank(scores)
	assert.Equal(t, []int{0, 2}, order[:2])
	assert.Equal(t, -1.0, scores[order[len(order)-1]])
}

func TestScores_CostWeighted(t *testing.T) {
	p, m, sol := halfK4(t)
	require.NoError(t, p.SetCost(0, 1, 2, 4))
	b := bnp.NewBrancher(p, m, nil, quietOptions())

	scores := b.Scores(b.Aggregate(sol))
	assert.InDelta(t, 0.5*5*0.25+0.2, scores[2], 1e-12)
	assert.InDelta(t, 0.5*0.25, scores[0], 1e-12, "no bonus outside the best round")
	assert.Equal(t, 2, bnp.Rank(scores)[0])
}

func TestRank_Stable(t *testing.T) {
	assert.Equal(t, []int{1, 3, 0, 2}, bnp.Rank([]float64{-1, 0.5, -1, 0.5}))
}

func TestBudget(t *testing.T) {
	p, m := newK4(t)
	ctrl := gomock.NewController(t)
	prober := bnp.NewMockProber(ctrl)

	b := bnp.NewBrancher(p, m, prober, quietOptions())
	assert.Equal(t, 2, b.Budget(0)) // ceil(18 · 0.1)
	assert.Equal(t, 1, b.Budget(3)) // ceil(18 · 0.1 · 0.65³)

	b = bnp.NewBrancher(p, m, prober, quietOptions(bnp.WithStrongBudget(1, 1)))
	assert.Equal(t, 18, b.Budget(5))

	b = bnp.NewBrancher(p, m, prober, quietOptions(bnp.WithStrongBranching(false)))
	assert.Equal(t, 1, b.Budget(0))

	b = bnp.NewBrancher(p, m, nil, quietOptions())
	assert.Equal(t, 1, b.Budget(0))
}

func TestBranch_IntegralHasNoCandidate(t *testing.T) {
	p, m := newK4(t)
	sol := &master.Solution{Values: map[master.ColumnID]float64{}}
	for r := 0; r < 3; r++ {
		id, err := m.AddColumn(r, k4Matchings[r], 0, true)
		require.NoError(t, err)
		sol.Values[id] = 1
	}
	b := bnp.NewBrancher(p, m, nil, quietOptions())

	res, err := b.Branch(context.Background(), bnp.NewRoot(p), sol)
	require.NoError(t, err)
	assert.Equal(t, bnp.StatusNoCandidate, res.Status)
}

func TestBranch_WithoutProbing(t *testing.T) {
	p, m, sol := halfK4(t)
	ctrl := gomock.NewController(t)
	prober := bnp.NewMockProber(ctrl) // no calls expected

	b := bnp.NewBrancher(p, m, prober, quietOptions(bnp.WithStrongBranching(false)))
	root := bnp.NewRoot(p)
	root.LowerBound = 0

	res, err := b.Branch(context.Background(), root, sol)
	require.NoError(t, err)
	require.Equal(t, bnp.StatusBranched, res.Status)
	assert.Equal(t, bnp.NewConstraint(0, 1, 0, true), res.Candidate)
	assert.InDelta(t, 0.5, res.Value, 1e-12)
	assert.Zero(t, res.Probes)

	assert.Equal(t, res.Candidate, *res.Same.Constraint)
	assert.Equal(t, res.Candidate.Negate(), *res.Diff.Constraint)
	assert.Equal(t, 1.0, res.Same.Priority)
	assert.Equal(t, 0.0, res.Diff.Priority)
	assert.Zero(t, res.Same.LowerBound)
	assert.Zero(t, res.Diff.LowerBound)
	assert.True(t, res.Same.Within(root))
}

func TestBranch_BothSidesInfeasible(t *testing.T) {
	p, m, sol := halfK4(t)
	ctrl := gomock.NewController(t)
	prober := bnp.NewMockProber(ctrl)
	c := bnp.NewConstraint(0, 1, 0, true)
	gomock.InOrder(
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), c.Negate()).Return(bnp.ProbeResult{Cutoff: true}, nil),
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), c).Return(bnp.ProbeResult{Cutoff: true}, nil),
	)

	b := bnp.NewBrancher(p, m, prober, quietOptions())
	res, err := b.Branch(context.Background(), bnp.NewRoot(p), sol)
	require.NoError(t, err)
	assert.Equal(t, bnp.StatusPruneNode, res.Status)
	assert.Equal(t, 2, res.Probes)
	assert.Nil(t, res.Same)
	assert.Nil(t, res.Diff)
}

func TestBranch_OneSideInfeasibleWinsAtOnce(t *testing.T) {
	p, m, sol := halfK4(t)
	ctrl := gomock.NewController(t)
	prober := bnp.NewMockProber(ctrl)
	c := bnp.NewConstraint(0, 1, 0, true)
	gomock.InOrder(
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), c.Negate()).Return(bnp.ProbeResult{Cutoff: true}, nil),
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), c).Return(bnp.ProbeResult{Objective: 3}, nil),
	)

	b := bnp.NewBrancher(p, m, prober, quietOptions())
	root := bnp.NewRoot(p)
	root.LowerBound = 1

	res, err := b.Branch(context.Background(), root, sol)
	require.NoError(t, err)
	require.Equal(t, bnp.StatusBranched, res.Status)
	assert.Equal(t, c, res.Candidate)
	assert.Equal(t, 2, res.Probes)
	assert.Equal(t, 3.0, res.Same.LowerBound)
	assert.True(t, math.IsInf(res.Diff.LowerBound, 1))
}

func TestBranch_ProductPicksBestCandidate(t *testing.T) {
	p, m, sol := halfK4(t)
	sol.Objective = 0
	ctrl := gomock.NewController(t)
	prober := bnp.NewMockProber(ctrl)
	first := bnp.NewConstraint(0, 1, 0, true)
	second := bnp.NewConstraint(0, 1, 2, true)
	gomock.InOrder(
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), first.Negate()).Return(bnp.ProbeResult{Objective: 0}, nil),
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), first).Return(bnp.ProbeResult{Objective: 2}, nil),
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), second.Negate()).Return(bnp.ProbeResult{Objective: 1}, nil),
		prober.EXPECT().Probe(gomock.Any(), gomock.Any(), second).Return(bnp.ProbeResult{Objective: 1}, nil),
	)

	b := bnp.NewBrancher(p, m, prober, quietOptions())
	root := bnp.NewRoot(p)
	root.LowerBound = 0

	res, err := b.Branch(context.Background(), root, sol)
	require.NoError(t, err)
	require.Equal(t, bnp.StatusBranched, res.Status)
	// (0.1)(2.1)=0.21 loses to (1.1)(1.1)=1.21
	assert.Equal(t, second, res.Candidate)
	assert.Equal(t, 4, res.Probes)
	assert.Equal(t, 1.0, res.Same.LowerBound)
	assert.Equal(t, 1.0, res.Diff.LowerBound)
}

func TestBranch_ProbeErrorPropagates(t *testing.T) {
	p, m, sol := halfK4(t)
	ctrl := gomock.NewController(t)
	prober := bnp.NewMockProber(ctrl)
	prober.EXPECT().Probe(gomock.Any(), gomock.Any(), gomock.Any()).Return(bnp.ProbeResult{}, context.Canceled)

	b := bnp.NewBrancher(p, m, prober, quietOptions())
	_, err := b.Branch(context.Background(), bnp.NewRoot(p), sol)
	require.ErrorIs(t, err, context.Canceled)
}
