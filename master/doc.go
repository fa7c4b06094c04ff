// Package master holds the restricted master problem of the set-partitioning
// formulation of single round-robin scheduling.
//
// Rows:
//   - one round-coverage row per round r: exactly one column is chosen for r;
//   - one match-coverage row per match k: k is played in exactly one round.
//
// Every row has right-hand side 1. A column is a pair (round r, perfect
// matching M) with coefficient 1 in round row r and in the row of every
// match of M; its cost is the sum of coefs[i,j,r] over M.
//
// Columns are registered under a stable ColumnID. Their upper bound is 0 or
// 1; bound 0 hides the column from the LP without deleting it. Deletion is
// permanent and notifies every listener registered with OnDelete, so that
// engine-side bookkeeping can be released.
//
// Snapshot/Restore bracket temporary excursions (strong-branching probes):
// columns created after the snapshot are deleted on restore and every
// surviving bound is reset.
package master
