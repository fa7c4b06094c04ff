package matching_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/rrsched/matching"
	"github.com/katalvlaran/rrsched/srr"
)

// BenchmarkMaxWeightPerfect_n20 measures one pricing-sized oracle call on a
// dense random graph.
func BenchmarkMaxWeightPerfect_n20(b *testing.B) {
	const n = 20
	var m = srr.NumMatches(n)
	var rng = rand.New(rand.NewSource(42)) // deterministic weights
	var weights = make([]float64, m)
	var exists = make([]bool, m)
	for k := 0; k < m; k++ {
		weights[k] = rng.Float64()*10 - 5
		exists[k] = rng.Intn(10) > 0 // roughly 90% of the edges
	}

	b.ReportAllocs()
	b.ResetTimer()
	for it := 0; it < b.N; it++ {
		if _, err := matching.MaxWeightPerfect(n, weights, exists); err != nil {
			b.Fatalf("MaxWeightPerfect failed: %v", err)
		}
	}
}
