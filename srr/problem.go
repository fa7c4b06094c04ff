// Package srr - the cost tensor of a round-robin instance.
package srr

import (
	"fmt"
	"math"
)

// Problem is a single round-robin instance: NTeams teams, NRounds = NTeams-1
// rounds and a symmetric cost tensor coefs[i,j,r] for playing {i,j} in
// round r. The zero value is not usable; construct with NewProblem.
type Problem struct {
	NTeams  int
	NRounds int

	// coefs is dense, row-major over (i, j, r).
	coefs []float64
}

// NewProblem returns an all-zero instance over n teams.
// It returns ErrNonPositiveTeams for n <= 0 and ErrOddTeams for odd n.
func NewProblem(n int) (*Problem, error) {
	if err := ValidateTeams(n); err != nil {
		return nil, err
	}

	return &Problem{
		NTeams:  n,
		NRounds: n - 1,
		coefs:   make([]float64, n*n*(n-1)),
	}, nil
}

// ValidateTeams checks that n is a usable team count.
func ValidateTeams(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveTeams, n)
	}
	if n%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrOddTeams, n)
	}

	return nil
}

// NumMatches returns n(n-1)/2 for the instance.
func (p *Problem) NumMatches() int { return NumMatches(p.NTeams) }

// Cost returns coefs[i,j,r].
func (p *Problem) Cost(i, j, r int) float64 {
	return p.coefs[p.offset(i, j, r)]
}

// MatchCost returns the cost of playing match k in round r.
func (p *Problem) MatchCost(k, r int) float64 {
	i, j := TeamsOfIndex(p.NTeams, k)

	return p.Cost(i, j, r)
}

// SetCost writes coefs[i,j,r] and coefs[j,i,r]. NaN and ±Inf are
// rejected with ErrNonFiniteCost.
func (p *Problem) SetCost(i, j, r int, c float64) error {
	if err := p.checkCell(i, j, r); err != nil {
		return err
	}
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("%w: %g at (%d,%d,%d)", ErrNonFiniteCost, c, i, j, r)
	}
	p.coefs[p.offset(i, j, r)] = c
	p.coefs[p.offset(j, i, r)] = c

	return nil
}

// IntegralObjective reports whether every coefficient is integral. The
// objective value of any schedule is then integral as well, which lets a
// search round fractional lower bounds up.
func (p *Problem) IntegralObjective() bool {
	for _, c := range p.coefs {
		if c != math.Trunc(c) {
			return false
		}
	}

	return true
}

// MaxAbsCost returns max |coefs[i,j,r]|.
func (p *Problem) MaxAbsCost() float64 {
	var m float64
	for _, c := range p.coefs {
		if a := math.Abs(c); a > m {
			m = a
		}
	}

	return m
}

func (p *Problem) checkCell(i, j, r int) error {
	n := p.NTeams
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("%w: (%d,%d) with %d teams", ErrTeamOutOfRange, i, j, n)
	}
	if i == j {
		return fmt.Errorf("%w: %d", ErrSelfMatch, i)
	}
	if r < 0 || r >= p.NRounds {
		return fmt.Errorf("%w: %d with %d rounds", ErrRoundOutOfRange, r, p.NRounds)
	}

	return nil
}

func (p *Problem) offset(i, j, r int) int {
	return (i*p.NTeams+j)*p.NRounds + r
}
