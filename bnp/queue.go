// Package bnp - best-bound priority queue.
package bnp

import "math"

// nodePQ is a min-heap of open nodes ordered by best bound. Ties prefer
// higher branching priority, then lower estimate, then creation order.
type nodePQ []*Node

// Len returns the number of open nodes.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by (LowerBound asc, Priority desc, Estimate asc, ID asc).
func (pq nodePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.LowerBound != b.LowerBound {
		return a.LowerBound < b.LowerBound
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.Estimate != b.Estimate {
		return a.Estimate < b.Estimate
	}

	return a.ID < b.ID
}

// Swap swaps two nodes in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a *Node.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*Node)) }

// Pop removes and returns the last node.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return nd
}

// minBound returns the smallest open LowerBound, or +Inf when empty.
func (pq nodePQ) minBound() float64 {
	best := math.Inf(1)
	for _, nd := range pq {
		best = math.Min(best, nd.LowerBound)
	}

	return best
}
