// Package bnp solves single round-robin scheduling problems by
// branch-and-price.
//
// The restricted master (package master) chooses one perfect matching per
// round so that every match is played exactly once. This package supplies
// the algorithmic core around it:
//
//   - Pricer: per round, a maximum-weight perfect matching over the match
//     duals minus the round's costs (Farkas duals only when the master is
//     infeasible). Columns with positive reduced profit are added.
//   - Brancher: aggregates column values into y[k,r] (how much of match k
//     is played in round r), scores fractional cells, optionally probes
//     the best ones (strong branching) and splits the node into
//     "same" (k must be played in r) and "diff" (k must not be played in r).
//   - Propagator: disables every column that conflicts with the branching
//     decisions on the path to the current node and detects nodes where a
//     team has no admissible opponent in some round.
//   - Solver: best-bound node selection, column generation per node,
//     scoped probing, incumbent bookkeeping and cancellation.
//
// Search nodes carry a feasibility bitmap over (match, round) cells built
// incrementally from their parent, so edge admissibility is an O(1) lookup.
//
// Example:
//
//	p, _ := srr.RandomBinary(6, 0.5, 1)
//	s, _ := bnp.NewSolver(p, bnp.WithMaxNodes(1000))
//	res, err := s.Solve(context.Background())
//
// Concurrency: a Solver is single-threaded and not safe for concurrent use.
// Separate solvers are independent.
package bnp
