package matching

import "errors"

var (
	// ErrNoPerfectMatching is returned when no perfect matching exists on
	// the edges marked present.
	ErrNoPerfectMatching = errors.New("matching: no perfect matching")

	// ErrOddVertices is returned for an odd vertex count.
	ErrOddVertices = errors.New("matching: odd number of vertices")

	// ErrDimensionMismatch is returned when weights or exists do not have
	// n(n-1)/2 entries.
	ErrDimensionMismatch = errors.New("matching: weights/exists length mismatch")
)

// Result is a perfect matching.
type Result struct {
	// Weight is the total weight of the matched edges, in input units.
	Weight float64

	// Mate[v] is the partner of vertex v.
	Mate []int

	// Edges lists the matched edge indices in increasing order.
	Edges []int
}
