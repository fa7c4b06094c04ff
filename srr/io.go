// Package srr - plain-text instance reader and writer.
package srr

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses an instance in the text format described in the package
// documentation. Records may repeat a cell; the last one wins. Odd team
// counts are rejected before any tensor is allocated.
//
// Complexity: O(records + n³).
func Read(r io.Reader) (*Problem, error) {
	var (
		sc   = bufio.NewScanner(r)
		p    *Problem
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)

		if p == nil {
			if len(fields) != 1 {
				return nil, fmt.Errorf("line %d: %w: want team count", line, ErrMalformedRecord)
			}
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRecord, err)
			}
			if p, err = NewProblem(n); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}

		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: %w: want \"i j r cost\"", line, ErrMalformedRecord)
		}
		var cell [3]int
		for f := 0; f < 3; f++ {
			v, err := strconv.Atoi(fields[f])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRecord, err)
			}
			cell[f] = v
		}
		c, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRecord, err)
		}
		if err = p.SetCost(cell[0], cell[1], cell[2], c); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrEmptyInput
	}

	return p, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Write emits p in the format accepted by Read. Only non-zero cells with
// i < j are written, ordered by (i, j, r).
func Write(w io.Writer, p *Problem) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", p.NTeams); err != nil {
		return err
	}
	for i := 0; i < p.NTeams; i++ {
		for j := i + 1; j < p.NTeams; j++ {
			for r := 0; r < p.NRounds; r++ {
				c := p.Cost(i, j, r)
				if c == 0 {
					continue
				}
				if _, err := fmt.Fprintf(bw, "%d %d %d %s\n", i, j, r,
					strconv.FormatFloat(c, 'g', -1, 64)); err != nil {
					return err
				}
			}
		}
	}

	return bw.Flush()
}
