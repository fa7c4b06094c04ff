package matching_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrsched/matching"
	"github.com/katalvlaran/rrsched/srr"
)

const epsWeight = 1e-9

// bruteForce enumerates every perfect matching and returns the best weight.
func bruteForce(n int, w []float64, exists []bool) (float64, bool) {
	used := make([]bool, n)
	best, found := math.Inf(-1), false

	var rec func(acc float64)
	rec = func(acc float64) {
		v := -1
		for x := 0; x < n; x++ {
			if !used[x] {
				v = x
				break
			}
		}
		if v == -1 {
			found = true
			if acc > best {
				best = acc
			}
			return
		}
		used[v] = true
		for u := v + 1; u < n; u++ {
			k := srr.MatchIndex(n, v, u)
			if used[u] || (exists != nil && !exists[k]) {
				continue
			}
			used[u] = true
			rec(acc + w[k])
			used[u] = false
		}
		used[v] = false
	}
	rec(0)

	return best, found
}

func requirePerfect(t *testing.T, n int, exists []bool, res matching.Result) {
	t.Helper()
	require.Len(t, res.Mate, n)
	require.Len(t, res.Edges, n/2)
	for v, u := range res.Mate {
		require.NotEqual(t, v, u)
		require.Equal(t, v, res.Mate[u])
		if exists != nil {
			require.True(t, exists[srr.PairIndex(n, v, u)])
		}
	}
}

func TestMaxWeightPerfect_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 2; n <= 8; n += 2 {
		m := srr.NumMatches(n)
		for trial := 0; trial < 200; trial++ {
			w := make([]float64, m)
			exists := make([]bool, m)
			for k := range w {
				w[k] = math.Round((rng.Float64()*20-10)*100) / 100
				exists[k] = rng.Float64() < 0.75
			}
			if trial%4 == 0 {
				exists = nil
			}

			want, ok := bruteForce(n, w, exists)
			res, err := matching.MaxWeightPerfect(n, w, exists)
			if !ok {
				require.ErrorIs(t, err, matching.ErrNoPerfectMatching, "n=%d trial=%d", n, trial)
				continue
			}
			require.NoError(t, err, "n=%d trial=%d", n, trial)
			requirePerfect(t, n, exists, res)
			require.InDelta(t, want, res.Weight, epsWeight, "n=%d trial=%d", n, trial)
		}
	}
}

func TestMaxWeightPerfect_IntegerWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 8
	m := srr.NumMatches(n)
	for trial := 0; trial < 100; trial++ {
		w := make([]float64, m)
		for k := range w {
			w[k] = float64(rng.Intn(5))
		}
		want, ok := bruteForce(n, w, nil)
		require.True(t, ok)
		res, err := matching.MaxWeightPerfect(n, w, nil)
		require.NoError(t, err)
		require.InDelta(t, want, res.Weight, epsWeight)
	}
}

func TestMaxWeightPerfect_Errors(t *testing.T) {
	_, err := matching.MaxWeightPerfect(3, make([]float64, 3), nil)
	require.ErrorIs(t, err, matching.ErrOddVertices)

	_, err = matching.MaxWeightPerfect(4, make([]float64, 5), nil)
	require.ErrorIs(t, err, matching.ErrDimensionMismatch)

	_, err = matching.MaxWeightPerfect(4, make([]float64, 6), make([]bool, 2))
	require.ErrorIs(t, err, matching.ErrDimensionMismatch)

	// Team 0 only connects to 1, team 2 only to 1 as well.
	exists := make([]bool, 6)
	exists[srr.MatchIndex(4, 0, 1)] = true
	exists[srr.MatchIndex(4, 1, 2)] = true
	exists[srr.MatchIndex(4, 2, 3)] = true
	exists[srr.MatchIndex(4, 1, 3)] = true
	_, err = matching.MaxWeightPerfect(4, make([]float64, 6), exists)
	require.NoError(t, err)
	exists[srr.MatchIndex(4, 2, 3)] = false
	_, err = matching.MaxWeightPerfect(4, make([]float64, 6), exists)
	require.ErrorIs(t, err, matching.ErrNoPerfectMatching)

	_, err = matching.MaxWeightPerfect(4, make([]float64, 6), make([]bool, 6))
	require.ErrorIs(t, err, matching.ErrNoPerfectMatching)
}

func TestMaxWeightPerfect_PrefersPerfectOverHeavy(t *testing.T) {
	// One very heavy edge {1,2} would block a perfect matching on a path.
	const n = 4
	w := make([]float64, 6)
	exists := make([]bool, 6)
	for _, e := range [][3]float64{{0, 1, 1}, {1, 2, 100}, {2, 3, 1}} {
		k := srr.MatchIndex(n, int(e[0]), int(e[1]))
		w[k], exists[k] = e[2], true
	}
	res, err := matching.MaxWeightPerfect(n, w, exists)
	require.NoError(t, err)
	require.Equal(t, 2.0, res.Weight)
	require.Equal(t, []int{1, 0, 3, 2}, res.Mate)
}
