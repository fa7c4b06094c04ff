package srr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrsched/srr"
)

func TestMatchIndex_Bijection(t *testing.T) {
	for n := 2; n <= 12; n += 2 {
		seen := make(map[int]bool)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				k := srr.MatchIndex(n, i, j)
				require.GreaterOrEqual(t, k, 0)
				require.Less(t, k, srr.NumMatches(n))
				require.False(t, seen[k], "n=%d duplicate index %d", n, k)
				seen[k] = true

				gi, gj := srr.TeamsOfIndex(n, k)
				require.Equal(t, i, gi)
				require.Equal(t, j, gj)
			}
		}
		require.Len(t, seen, srr.NumMatches(n))
	}
}

func TestMatchIndex_Layout(t *testing.T) {
	const n = 6
	// strictly increasing in j, block i has n-1-i entries
	next := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			require.Equal(t, next, srr.MatchIndex(n, i, j))
			next++
		}
	}
	require.Equal(t, 0, srr.MatchIndex(4, 0, 1))
	require.Equal(t, 3, srr.MatchIndex(4, 1, 2))
	require.Equal(t, 5, srr.MatchIndex(4, 2, 3))
	require.Equal(t, srr.MatchIndex(4, 1, 3), srr.PairIndex(4, 3, 1))
}

func TestMatchIndex_Panics(t *testing.T) {
	require.Panics(t, func() { srr.MatchIndex(4, 2, 1) })
	require.Panics(t, func() { srr.MatchIndex(4, 1, 1) })
	require.Panics(t, func() { srr.MatchIndex(4, 0, 4) })
	require.Panics(t, func() { srr.TeamsOfIndex(4, 6) })
	require.Panics(t, func() { srr.TeamsOfIndex(4, -1) })
}
