package master

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownColumn is returned for an ID not in the registry.
	ErrUnknownColumn = errors.New("master: unknown column")

	// ErrInvalidColumn is returned when a column is not a perfect matching
	// of a valid round.
	ErrInvalidColumn = errors.New("master: invalid column")

	// ErrDuplicateColumn is returned when an identical (round, matching)
	// column is already registered.
	ErrDuplicateColumn = errors.New("master: duplicate column")
)

// ColumnID identifies a column for its whole lifetime. IDs are never reused.
type ColumnID int64

// Column is a (round, perfect matching) pair of the master problem.
type Column struct {
	ID    ColumnID
	Round int

	// Matches holds the match indices of the matching in increasing order.
	Matches []int

	Cost       float64
	UpperBound float64

	// Removable columns may be deleted by CleanUp.
	Removable bool

	// Age counts consecutive LP solves in which the column stayed at zero.
	Age int
}

// Active reports whether the column takes part in the LP.
func (c *Column) Active() bool { return c.UpperBound > 0 }

// key is the registry key used for duplicate detection.
func key(round int, matches []int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:", round)
	for _, k := range matches {
		fmt.Fprintf(&sb, "%d,", k)
	}

	return sb.String()
}

// Solution is a solved restricted master.
type Solution struct {
	// Infeasible is set when the active columns cannot partition the rows.
	// RoundDuals and MatchDuals then hold a Farkas ray.
	Infeasible bool

	// Objective is the LP value; zero when Infeasible.
	Objective float64

	// Values maps every active column to its LP value.
	Values map[ColumnID]float64

	RoundDuals []float64
	MatchDuals []float64
}

// Stats counts registry events.
type Stats struct {
	Added    int
	Deleted  int
	LPSolves int
}
