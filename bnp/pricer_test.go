package bnp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrsched/bnp"
)

func TestPrice_FarkasOnEmptyMaster(t *testing.T) {
	p, m := newK4(t)
	pr := bnp.NewPricer(p, m, bnp.DefaultPricingTol, bnp.DefaultDualZeroTol)
	nd := bnp.NewRoot(p).Child(bnp.NewConstraint(0, 1, 0, true))

	sol, err := m.Solve(context.Background())
	require.NoError(t, err)
	require.True(t, sol.Infeasible)

	res, err := pr.Price(nd, sol)
	require.NoError(t, err)
	assert.Equal(t, bnp.StatusAdded, res.Status)
	require.Len(t, res.Added, 3, "one column per round")
	assert.False(t, res.RoundWithoutMatching)
	assert.True(t, math.IsInf(res.LagrangianBound, -1))

	for r, id := range res.Added {
		c, err := m.Column(id)
		require.NoError(t, err)
		assert.Equal(t, r, c.Round)
		assert.True(t, nd.Admits(c))
	}
	first, err := m.Column(res.Added[0])
	require.NoError(t, err)
	assert.Equal(t, k4Matchings[0], first.Matches)
}

func TestPrice_ConvergedHasTightBound(t *testing.T) {
	p, m := newK4(t)
	require.NoError(t, p.SetCost(0, 1, 0, 3))
	require.NoError(t, p.SetCost(1, 3, 1, 2))
	for r := 0; r < 3; r++ {
		for _, mt := range k4Matchings {
			var cost float64
			for _, k := range mt {
				cost += p.MatchCost(k, r)
			}
			_, err := m.AddColumn(r, mt, cost, true)
			require.NoError(t, err)
		}
	}
	pr := bnp.NewPricer(p, m, bnp.DefaultPricingTol, bnp.DefaultDualZeroTol)

	sol, err := m.Solve(context.Background())
	require.NoError(t, err)
	require.False(t, sol.Infeasible)

	res, err := pr.Price(bnp.NewRoot(p), sol)
	require.NoError(t, err)
	assert.Equal(t, bnp.StatusExhausted, res.Status)
	assert.Empty(t, res.Added)
	assert.Equal(t, 9, m.Len())
	assert.InDelta(t, sol.Objective, res.LagrangianBound, 1e-5)
}

func TestPrice_RoundWithoutMatching(t *testing.T) {
	p, m := newK4(t)
	pr := bnp.NewPricer(p, m, bnp.DefaultPricingTol, bnp.DefaultDualZeroTol)
	nd := bnp.NewRoot(p)
	for j := 1; j < 4; j++ {
		nd = nd.Child(bnp.NewConstraint(0, j, 0, false))
	}

	sol, err := m.Solve(context.Background())
	require.NoError(t, err)

	res, err := pr.Price(nd, sol)
	require.NoError(t, err)
	assert.True(t, res.RoundWithoutMatching)
	assert.Len(t, res.Added, 2, "rounds 1 and 2 still price")
	for _, id := range res.Added {
		c, err := m.Column(id)
		require.NoError(t, err)
		assert.NotEqual(t, 0, c.Round)
	}
}

func TestPrice_TeamNeededTwice(t *testing.T) {
	p, m := newK4(t)
	pr := bnp.NewPricer(p, m, bnp.DefaultPricingTol, bnp.DefaultDualZeroTol)
	nd := bnp.NewRoot(p,
		bnp.NewConstraint(0, 1, 0, true),
		bnp.NewConstraint(0, 2, 0, true),
	)

	sol, err := m.Solve(context.Background())
	require.NoError(t, err)

	res, err := pr.Price(nd, sol)
	require.NoError(t, err)
	assert.True(t, res.RoundWithoutMatching)
	for _, id := range res.Added {
		c, err := m.Column(id)
		require.NoError(t, err)
		assert.NotEqual(t, 0, c.Round, "no matching may cover round 0")
		assert.True(t, nd.Admits(c))
	}
}
