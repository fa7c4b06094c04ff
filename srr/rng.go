// Package srr - RNG utilities and random instance generation.
package srr

import "math/rand"

// defaultSeed replaces seed==0 so that the zero value is still reproducible.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// RandomBinary builds an instance whose cost tensor holds exactly
// floor(ratio * n(n-1)/2 * (n-1)) ones at distinct (match, round) cells and
// zeros elsewhere. The same (n, ratio, seed) always yields the same instance.
//
// Complexity: O(n³).
func RandomBinary(n int, ratio float64, seed int64) (*Problem, error) {
	p, err := NewProblem(n)
	if err != nil {
		return nil, err
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	cells := p.NumMatches() * p.NRounds
	ones := int(ratio * float64(cells))
	rng := rngFromSeed(seed)
	for _, cell := range rng.Perm(cells)[:ones] {
		i, j := TeamsOfIndex(n, cell/p.NRounds)
		// Cells come from a valid permutation; SetCost cannot fail here.
		_ = p.SetCost(i, j, cell%p.NRounds, 1)
	}

	return p, nil
}
