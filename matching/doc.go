// Package matching finds maximum-weight perfect matchings on complete-graph
// edge subsets.
//
// The graph is K_n with edges addressed by srr.MatchIndex. Callers pass a
// weight per edge and an existence mask; missing edges are never matched.
// MaxWeightPerfect returns the perfect matching of maximum total weight or
// ErrNoPerfectMatching when the mask admits none.
//
// Algorithm:
//   - Edmonds' primal-dual blossom method with maximum cardinality first.
//     All weights are shifted to be strictly positive, which leaves the
//     ranking of perfect matchings unchanged because every perfect matching
//     has n/2 edges.
//   - The search grows alternating trees from exposed vertices, shrinks odd
//     cycles into blossoms, and adjusts the vertex/blossom duals when no
//     tight edge is available.
//
// Complexity: O(n³) time, O(n²) memory.
package matching
