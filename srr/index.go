package srr

import "fmt"

// NumMatches returns the number of unordered team pairs, n(n-1)/2.
func NumMatches(n int) int {
	return n * (n - 1) / 2
}

// MatchIndex maps the unordered pair {i,j}, 0 <= i < j < n, to its dense
// triangular index. Pairs are enumerated row by row:
//
//	(0,1)=0, (0,2)=1, ..., (0,n-1)=n-2, (1,2)=n-1, ...
//
// so the block for team i holds n-1-i consecutive indices.
// Calling it with i >= j or with a team outside [0, n) is a programming
// error and panics.
//
// Complexity: O(1).
func MatchIndex(n, i, j int) int {
	if i < 0 || j >= n || i >= j {
		panic(fmt.Sprintf("srr: MatchIndex(%d, %d, %d): want 0 <= i < j < n", n, i, j))
	}

	return (j - i) + i*(2*n-i-1)/2 - 1
}

// PairIndex is MatchIndex for an unordered pair given in any order.
func PairIndex(n, a, b int) int {
	if a > b {
		a, b = b, a
	}

	return MatchIndex(n, a, b)
}

// TeamsOfIndex is the inverse of MatchIndex: it returns the pair (i, j),
// i < j, stored at index k. It panics when k is outside [0, n(n-1)/2).
//
// Complexity: O(n).
func TeamsOfIndex(n, k int) (i, j int) {
	if k < 0 || k >= NumMatches(n) {
		panic(fmt.Sprintf("srr: TeamsOfIndex(%d, %d): index out of range", n, k))
	}
	// Walk the i-blocks; block i has n-1-i entries.
	for l := n - 1; l > 0; l-- {
		if k < l {
			break
		}
		k -= l
		i++
	}

	return i, k + i + 1
}
