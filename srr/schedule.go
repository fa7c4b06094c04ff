// Package srr - schedules, their validation and YAML form.
package srr

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Match is an unordered pairing of two teams, stored with I < J.
type Match struct {
	I int `yaml:"i"`
	J int `yaml:"j"`
}

// NewMatch returns the match {a,b} in canonical order.
func NewMatch(a, b int) Match {
	if a > b {
		a, b = b, a
	}

	return Match{I: a, J: b}
}

// String renders the match as "i-j".
func (m Match) String() string { return fmt.Sprintf("%d-%d", m.I, m.J) }

// Schedule is a tournament plan: Rounds[r] lists the matches of round r.
type Schedule struct {
	Teams  int       `yaml:"teams"`
	Cost   float64   `yaml:"cost"`
	Rounds [][]Match `yaml:"rounds"`
}

// NewSchedule returns an empty schedule with n-1 rounds.
func NewSchedule(n int) *Schedule {
	return &Schedule{Teams: n, Rounds: make([][]Match, n-1)}
}

// Add appends {a,b} to round r.
func (s *Schedule) Add(r, a, b int) {
	s.Rounds[r] = append(s.Rounds[r], NewMatch(a, b))
}

// Normalize sorts every round by (I, J).
func (s *Schedule) Normalize() {
	for _, round := range s.Rounds {
		sort.Slice(round, func(x, y int) bool {
			if round[x].I != round[y].I {
				return round[x].I < round[y].I
			}
			return round[x].J < round[y].J
		})
	}
}

// Validate checks that s is a 1-factorization of K_n: n-1 rounds, each a
// perfect matching, and every pair scheduled exactly once.
//
// Complexity: O(n²).
func (s *Schedule) Validate() error {
	n := s.Teams
	if err := ValidateTeams(n); err != nil {
		return err
	}
	if len(s.Rounds) != n-1 {
		return fmt.Errorf("%w: %d rounds for %d teams", ErrNotRoundRobin, len(s.Rounds), n)
	}

	seen := make([]bool, NumMatches(n))
	for r, round := range s.Rounds {
		if len(round) != n/2 {
			return fmt.Errorf("%w: round %d has %d matches", ErrNotRoundRobin, r, len(round))
		}
		busy := make([]bool, n)
		for _, m := range round {
			if m.I < 0 || m.J >= n || m.I >= m.J {
				return fmt.Errorf("%w: round %d: bad match %s", ErrNotRoundRobin, r, m)
			}
			if busy[m.I] || busy[m.J] {
				return fmt.Errorf("%w: round %d: team plays twice", ErrNotRoundRobin, r)
			}
			busy[m.I], busy[m.J] = true, true

			k := MatchIndex(n, m.I, m.J)
			if seen[k] {
				return fmt.Errorf("%w: match %s scheduled twice", ErrNotRoundRobin, m)
			}
			seen[k] = true
		}
	}

	return nil
}

// Total returns the cost of s under p.
func (s *Schedule) Total(p *Problem) float64 {
	var total float64
	for r, round := range s.Rounds {
		for _, m := range round {
			total += p.Cost(m.I, m.J, r)
		}
	}

	return total
}

// RoundOf returns the round in which {a,b} is played, or -1.
func (s *Schedule) RoundOf(a, b int) int {
	want := NewMatch(a, b)
	for r, round := range s.Rounds {
		for _, m := range round {
			if m == want {
				return r
			}
		}
	}

	return -1
}

// Opponents returns the per-team view: Opponents()[t][r] is the team t
// meets in round r.
func (s *Schedule) Opponents() [][]int {
	opp := make([][]int, s.Teams)
	for t := range opp {
		opp[t] = make([]int, len(s.Rounds))
		for r := range opp[t] {
			opp[t][r] = -1
		}
	}
	for r, round := range s.Rounds {
		for _, m := range round {
			opp[m.I][r] = m.J
			opp[m.J][r] = m.I
		}
	}

	return opp
}

// YAML encodes s as a YAML document.
func (s *Schedule) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// ParseYAML decodes a schedule written by YAML.
func ParseYAML(data []byte) (*Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Circle returns the canonical circle-method 1-factorization of K_n: team
// n-1 stays fixed while the others rotate one position per round.
func Circle(n int) (*Schedule, error) {
	if err := ValidateTeams(n); err != nil {
		return nil, err
	}

	s := NewSchedule(n)
	m := n - 1
	for r := 0; r < m; r++ {
		s.Add(r, r, n-1)
		for d := 1; d < n/2; d++ {
			s.Add(r, (r+d)%m, (r-d+m)%m)
		}
	}
	s.Normalize()

	return s, nil
}
