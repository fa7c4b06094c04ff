// Package master - column registry and LP assembly of the restricted
// master problem.
package master

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/rrsched/simplex"
	"github.com/katalvlaran/rrsched/srr"
)

// valueTol separates zero LP values from positive ones.
const valueTol = 1e-9

// Master is the restricted master problem. It is not safe for concurrent use.
type Master struct {
	p *srr.Problem

	cols   map[ColumnID]*Column
	keys   map[string]ColumnID
	order  []ColumnID
	nextID ColumnID

	listeners []func(ColumnID)
	lpOpts    simplex.Options
	stats     Stats
}

// New returns an empty master for p.
func New(p *srr.Problem, lpOpts simplex.Options) *Master {
	return &Master{
		p:      p,
		cols:   make(map[ColumnID]*Column),
		keys:   make(map[string]ColumnID),
		lpOpts: lpOpts,
	}
}

// NumRows returns the number of rows: rounds plus matches.
func (m *Master) NumRows() int { return m.p.NRounds + m.p.NumMatches() }

// RoundRow returns the row index of round r's coverage row.
func (m *Master) RoundRow(r int) int { return r }

// MatchRow returns the row index of match k's coverage row.
func (m *Master) MatchRow(k int) int { return m.p.NRounds + k }

// OnDelete registers fn to be called with the ID of every deleted column.
func (m *Master) OnDelete(fn func(ColumnID)) {
	m.listeners = append(m.listeners, fn)
}

// AddColumn registers the column (round, matches) with the given cost and
// upper bound 1. matches may be in any order; it is copied and sorted.
// An identical column that already exists is reported with its ID and
// ErrDuplicateColumn.
func (m *Master) AddColumn(round int, matches []int, cost float64, removable bool) (ColumnID, error) {
	sorted := append([]int(nil), matches...)
	sort.Ints(sorted)
	if err := m.validate(round, sorted); err != nil {
		return 0, err
	}

	k := key(round, sorted)
	if id, ok := m.keys[k]; ok {
		return id, fmt.Errorf("%w: %d", ErrDuplicateColumn, id)
	}

	id := m.nextID
	m.nextID++
	m.cols[id] = &Column{
		ID:         id,
		Round:      round,
		Matches:    sorted,
		Cost:       cost,
		UpperBound: 1,
		Removable:  removable,
	}
	m.keys[k] = id
	m.order = append(m.order, id)
	m.stats.Added++

	return id, nil
}

func (m *Master) validate(round int, matches []int) error {
	n := m.p.NTeams
	if round < 0 || round >= m.p.NRounds {
		return fmt.Errorf("%w: round %d", ErrInvalidColumn, round)
	}
	if len(matches) != n/2 {
		return fmt.Errorf("%w: %d matches, want %d", ErrInvalidColumn, len(matches), n/2)
	}
	busy := make([]bool, n)
	for _, k := range matches {
		if k < 0 || k >= m.p.NumMatches() {
			return fmt.Errorf("%w: match %d", ErrInvalidColumn, k)
		}
		i, j := srr.TeamsOfIndex(n, k)
		if busy[i] || busy[j] {
			return fmt.Errorf("%w: team plays twice in round %d", ErrInvalidColumn, round)
		}
		busy[i], busy[j] = true, true
	}

	return nil
}

// Column returns the column registered under id.
func (m *Master) Column(id ColumnID) (*Column, error) {
	c, ok := m.cols[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColumn, id)
	}

	return c, nil
}

// Columns returns all columns in creation order.
func (m *Master) Columns() []*Column {
	out := make([]*Column, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.cols[id])
	}

	return out
}

// Len returns the number of registered columns.
func (m *Master) Len() int { return len(m.order) }

// Stats returns the registry counters.
func (m *Master) Stats() Stats { return m.stats }

// SetUpperBound sets the bound of column id. Only 0 and 1 are meaningful.
func (m *Master) SetUpperBound(id ColumnID, ub float64) error {
	c, ok := m.cols[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownColumn, id)
	}
	c.UpperBound = ub

	return nil
}

// ResetBounds lifts every column back to upper bound 1.
func (m *Master) ResetBounds() {
	for _, c := range m.cols {
		c.UpperBound = 1
	}
}

// Delete removes column id permanently and notifies the listeners.
func (m *Master) Delete(id ColumnID) error {
	c, ok := m.cols[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownColumn, id)
	}
	delete(m.cols, id)
	delete(m.keys, key(c.Round, c.Matches))
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.stats.Deleted++
	for _, fn := range m.listeners {
		fn(id)
	}

	return nil
}

// Solve solves the LP over the active columns. ctx reaches the simplex
// pivot loop, so a deadline interrupts a long solve.
//
// Complexity: dominated by simplex.Solve on a (rounds+matches) x active
// matrix.
func (m *Master) Solve(ctx context.Context) (*Solution, error) {
	active := make([]*Column, 0, len(m.order))
	for _, id := range m.order {
		if c := m.cols[id]; c.Active() {
			active = append(active, c)
		}
	}

	rows := m.NumRows()
	b := make([]float64, rows)
	for i := range b {
		b[i] = 1
	}

	var (
		A mat.Matrix
		c = make([]float64, len(active))
	)
	if len(active) > 0 {
		dense := mat.NewDense(rows, len(active), nil)
		for j, col := range active {
			dense.Set(m.RoundRow(col.Round), j, 1)
			for _, k := range col.Matches {
				dense.Set(m.MatchRow(k), j, 1)
			}
			c[j] = col.Cost
		}
		A = dense
	}

	m.stats.LPSolves++
	res, err := simplex.Solve(ctx, c, A, b, m.lpOpts)
	if err != nil {
		return nil, fmt.Errorf("master: %w", err)
	}

	sol := &Solution{
		Infeasible: res.Infeasible,
		Objective:  res.Objective,
		Values:     make(map[ColumnID]float64, len(active)),
		RoundDuals: append([]float64(nil), res.Duals[:m.p.NRounds]...),
		MatchDuals: append([]float64(nil), res.Duals[m.p.NRounds:]...),
	}
	if !res.Infeasible {
		for j, col := range active {
			sol.Values[col.ID] = res.X[j]
		}
	}

	return sol, nil
}

// Age updates column ages from sol: active columns at zero grow older,
// positive ones are reset.
func (m *Master) Age(sol *Solution) {
	if sol == nil || sol.Infeasible {
		return
	}
	for id, v := range sol.Values {
		c := m.cols[id]
		if c == nil {
			continue
		}
		if v > valueTol {
			c.Age = 0
		} else {
			c.Age++
		}
	}
}

// CleanUp deletes removable columns whose age reached limit and that are at
// zero in sol. A non-positive limit disables cleanup. It returns the number
// of deleted columns.
func (m *Master) CleanUp(limit int, sol *Solution) int {
	if limit <= 0 {
		return 0
	}
	var doomed []ColumnID
	for _, id := range m.order {
		c := m.cols[id]
		if !c.Removable || c.Age < limit {
			continue
		}
		if sol != nil && sol.Values[id] > valueTol {
			continue
		}
		doomed = append(doomed, id)
	}
	for _, id := range doomed {
		// id comes from the registry; Delete cannot fail.
		_ = m.Delete(id)
	}

	return len(doomed)
}

// Snapshot records the registry state for a later Restore.
type Snapshot struct {
	nextID ColumnID
	bounds map[ColumnID]float64
}

// Snapshot captures the current column set and bounds.
func (m *Master) Snapshot() Snapshot {
	s := Snapshot{nextID: m.nextID, bounds: make(map[ColumnID]float64, len(m.cols))}
	for id, c := range m.cols {
		s.bounds[id] = c.UpperBound
	}

	return s
}

// Restore deletes every column created after s was taken and resets the
// bounds of the surviving ones.
func (m *Master) Restore(s Snapshot) {
	var fresh []ColumnID
	for _, id := range m.order {
		if id >= s.nextID {
			fresh = append(fresh, id)
		}
	}
	for _, id := range fresh {
		_ = m.Delete(id)
	}
	for id, ub := range s.bounds {
		if c, ok := m.cols[id]; ok {
			c.UpperBound = ub
		}
	}
}
