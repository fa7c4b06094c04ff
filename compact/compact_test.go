package compact_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrsched/bnp"
	"github.com/katalvlaran/rrsched/compact"
	"github.com/katalvlaran/rrsched/logger"
	"github.com/katalvlaran/rrsched/simplex"
	"github.com/katalvlaran/rrsched/srr"
)

func TestRelaxation_FeasiblePoint(t *testing.T) {
	p, err := srr.RandomBinary(6, 0.4, 3)
	require.NoError(t, err)

	rx, err := compact.Solve(context.Background(), p, simplex.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, rx.X, 15*5)

	for k := 0; k < 15; k++ {
		var sum float64
		for r := 0; r < 5; r++ {
			assert.GreaterOrEqual(t, rx.X[k*5+r], -1e-9)
			sum += rx.X[k*5+r]
		}
		assert.InDelta(t, 1, sum, 1e-6, "match %d", k)
	}
	for team := 0; team < 6; team++ {
		for r := 0; r < 5; r++ {
			var sum float64
			for other := 0; other < 6; other++ {
				if other != team {
					sum += rx.X[srr.PairIndex(6, team, other)*5+r]
				}
			}
			assert.InDelta(t, 1, sum, 1e-6, "team %d round %d", team, r)
		}
	}
}

func TestRelaxationBound_BelowOptimum(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		p, err := srr.RandomBinary(6, 0.6, seed)
		require.NoError(t, err)

		bound, err := compact.RelaxationBound(context.Background(), p)
		require.NoError(t, err)

		sv, err := bnp.NewSolver(p, bnp.WithLogger(logger.NewLoggerTo(io.Discard, "error", "bnp")))
		require.NoError(t, err)
		res, err := sv.Solve(context.Background())
		require.NoError(t, err)
		require.Equal(t, bnp.Optimal, res.Status)

		assert.LessOrEqual(t, bound, res.RootBound+1e-6, "seed %d", seed)
		assert.LessOrEqual(t, bound, res.Objective+1e-6, "seed %d", seed)
		assert.GreaterOrEqual(t, bound, -1e-9, "binary costs")
	}
}

func TestRelaxationBound_ZeroOnCirclePlan(t *testing.T) {
	p, err := srr.NewProblem(8)
	require.NoError(t, err)
	plan, err := srr.Circle(8)
	require.NoError(t, err)

	// Every cell off the circle plan costs 1.
	for k := 0; k < p.NumMatches(); k++ {
		i, j := srr.TeamsOfIndex(8, k)
		for r := 0; r < p.NRounds; r++ {
			if plan.RoundOf(i, j) != r {
				require.NoError(t, p.SetCost(i, j, r, 1))
			}
		}
	}

	rx, err := compact.Solve(context.Background(), p, simplex.DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0, rx.Bound, 1e-6)
	// only zero-cost cells carry mass, one per match
	assert.Zero(t, rx.Fractional(1e-6))
}
