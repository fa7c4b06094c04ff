package srr_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rrsched/srr"
)

func TestNewProblem_Validation(t *testing.T) {
	_, err := srr.NewProblem(5)
	require.ErrorIs(t, err, srr.ErrOddTeams)
	_, err = srr.NewProblem(0)
	require.ErrorIs(t, err, srr.ErrNonPositiveTeams)

	p, err := srr.NewProblem(4)
	require.NoError(t, err)
	assert.Equal(t, 3, p.NRounds)
	assert.Equal(t, 6, p.NumMatches())
	assert.True(t, p.IntegralObjective())
}

func TestProblem_SetCostSymmetric(t *testing.T) {
	p, err := srr.NewProblem(4)
	require.NoError(t, err)

	require.NoError(t, p.SetCost(2, 1, 0, 1.5))
	assert.Equal(t, 1.5, p.Cost(1, 2, 0))
	assert.Equal(t, 1.5, p.Cost(2, 1, 0))
	assert.Equal(t, 1.5, p.MatchCost(srr.MatchIndex(4, 1, 2), 0))
	assert.False(t, p.IntegralObjective())
	assert.Equal(t, 1.5, p.MaxAbsCost())

	require.ErrorIs(t, p.SetCost(1, 1, 0, 1), srr.ErrSelfMatch)
	require.ErrorIs(t, p.SetCost(0, 4, 0, 1), srr.ErrTeamOutOfRange)
	require.ErrorIs(t, p.SetCost(0, 1, 3, 1), srr.ErrRoundOutOfRange)
}

func TestProblem_SetCostNonFinite(t *testing.T) {
	p, err := srr.NewProblem(4)
	require.NoError(t, err)

	for _, c := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		require.ErrorIs(t, p.SetCost(0, 1, 0, c), srr.ErrNonFiniteCost)
	}
	assert.Equal(t, 0.0, p.Cost(0, 1, 0))
	assert.Equal(t, 0.0, p.Cost(1, 0, 0))
}

func TestRead_NonFiniteCostNamesLine(t *testing.T) {
	_, err := srr.Read(strings.NewReader("4\n0 1 0 1\n2 3 1 -Inf\n"))
	require.ErrorIs(t, err, srr.ErrNonFiniteCost)
	assert.Contains(t, err.Error(), "line 3")
}

func TestRead(t *testing.T) {
	in := "\n4\n0 1 0 1\n\n3 2 2 -2.5\n"
	p, err := srr.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 4, p.NTeams)
	assert.Equal(t, 1.0, p.Cost(1, 0, 0))
	assert.Equal(t, -2.5, p.Cost(2, 3, 2))
	assert.Equal(t, 0.0, p.Cost(0, 1, 1))
}

func TestRead_Errors(t *testing.T) {
	cases := map[string]error{
		"":                srr.ErrEmptyInput,
		"3\n":             srr.ErrOddTeams,
		"-2\n":            srr.ErrNonPositiveTeams,
		"x\n":             srr.ErrMalformedRecord,
		"4\n0 1 0\n":      srr.ErrMalformedRecord,
		"4\n0 1 a 1\n":    srr.ErrMalformedRecord,
		"4\n0 1 0 zz\n":   srr.ErrMalformedRecord,
		"4\n0 4 0 1\n":    srr.ErrTeamOutOfRange,
		"4\n0 1 3 1\n":    srr.ErrRoundOutOfRange,
		"4\n2 2 0 1\n":    srr.ErrSelfMatch,
		"4 1\n0 1 0 1\n":  srr.ErrMalformedRecord,
		"4\n0 1 2 NaN\n":  srr.ErrNonFiniteCost,
		"4\n0 1 0 inf\n":  srr.ErrNonFiniteCost,
	}
	for in, want := range cases {
		_, err := srr.Read(strings.NewReader(in))
		require.ErrorIs(t, err, want, "input %q", in)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	p, err := srr.RandomBinary(6, 0.3, 7)
	require.NoError(t, err)
	require.NoError(t, p.SetCost(0, 5, 4, -0.25))

	var buf bytes.Buffer
	require.NoError(t, srr.Write(&buf, p))
	q, err := srr.Read(&buf)
	require.NoError(t, err)

	require.Equal(t, p.NTeams, q.NTeams)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i == j {
				continue
			}
			for r := 0; r < 5; r++ {
				require.Equal(t, p.Cost(i, j, r), q.Cost(i, j, r))
			}
		}
	}
}

func TestRandomBinary(t *testing.T) {
	p, err := srr.RandomBinary(6, 0.5, 0)
	require.NoError(t, err)
	q, err := srr.RandomBinary(6, 0.5, 0)
	require.NoError(t, err)

	ones := 0
	for k := 0; k < p.NumMatches(); k++ {
		for r := 0; r < p.NRounds; r++ {
			c := p.MatchCost(k, r)
			require.Equal(t, c, q.MatchCost(k, r))
			require.Contains(t, []float64{0, 1}, c)
			if c == 1 {
				ones++
			}
		}
	}
	assert.Equal(t, 37, ones) // floor(0.5 * 15 * 5)

	_, err = srr.RandomBinary(7, 0.5, 1)
	require.ErrorIs(t, err, srr.ErrOddTeams)
}
