// Package srr models the single round-robin scheduling problem.
//
// A single round-robin tournament over n teams (n even) is played in n-1
// rounds. Every pair of teams meets exactly once, and every team plays
// exactly one match per round. A complete schedule is therefore a
// 1-factorization of the complete graph K_n: each round is a perfect
// matching and the rounds partition the edges.
//
// What lives here:
//   - Index map: a bijection between unordered pairs {i,j} and the
//     triangular range [0, n(n-1)/2). Every other package addresses matches
//     through MatchIndex / TeamsOfIndex.
//   - Problem: the team count plus the symmetric cost tensor coefs[i,j,r].
//   - Reader/Writer for the plain-text instance format:
//
//	4
//	0 1 0 1.5
//	2 3 1 -2
//
//     The first non-empty line is the team count; every further line is a
//     record "i j r cost". Records are symmetrized.
//   - RandomBinary: deterministic random 0/1 instances.
//   - Schedule: a solved tournament with validation and costing.
//
// Errors:
//   - ErrOddTeams, ErrNonPositiveTeams  - invalid team counts.
//   - ErrTeamOutOfRange, ErrRoundOutOfRange, ErrSelfMatch, ErrMalformedRecord,
//     ErrEmptyInput                     - malformed input records.
//   - ErrNotRoundRobin                  - a Schedule is not a 1-factorization.
//
// Complexity:
//   - MatchIndex O(1), TeamsOfIndex O(n).
//   - Read/Write O(records), Validate O(n²).
package srr
