// Package matching - Edmonds' blossom algorithm on dense complete graphs.
//
// MaxWeightPerfect shifts every present weight to at least 1 and runs the
// maximum-cardinality primal-dual blossom method, which has O(n) stages of
// O(n²) work each. A perfect matching exists iff the result covers every
// vertex.
package matching

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/rrsched/srr"
)

// MaxWeightPerfect returns a maximum-weight perfect matching of the graph on
// n vertices whose edge k = srr.MatchIndex(n, i, j) carries weights[k] and
// is present iff exists[k]. A nil exists marks every edge present.
//
// Errors:
//   - ErrOddVertices if n is odd.
//   - ErrDimensionMismatch if len(weights) or len(exists) differs from n(n-1)/2.
//   - ErrNoPerfectMatching if the present edges admit no perfect matching.
//
// Complexity: O(n³).
func MaxWeightPerfect(n int, weights []float64, exists []bool) (Result, error) {
	if n%2 != 0 || n < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrOddVertices, n)
	}
	m := n * (n - 1) / 2
	if len(weights) != m || (exists != nil && len(exists) != m) {
		return Result{}, fmt.Errorf("%w: want %d entries", ErrDimensionMismatch, m)
	}
	if n == 0 {
		return Result{Mate: []int{}, Edges: []int{}}, nil
	}

	// Stage 1 (Edges): collect present edges, shifting weights to >= 1.
	var (
		ids  = make([]int, 0, m)
		minW float64
	)
	for k := 0; k < m; k++ {
		if exists != nil && !exists[k] {
			continue
		}
		if len(ids) == 0 || weights[k] < minW {
			minW = weights[k]
		}
		ids = append(ids, k)
	}
	if len(ids) < n/2 {
		return Result{}, ErrNoPerfectMatching
	}

	edges := make([]edge, len(ids))
	for e, k := range ids {
		i, j := srr.TeamsOfIndex(n, k)
		edges[e] = edge{i: i, j: j, w: weights[k] - minW + 1}
	}

	// Stage 2 (Solve): maximum-cardinality, maximum-weight matching.
	mate := newBlossomSolver(n, edges).solve()

	// Stage 3 (Collect): reject non-perfect results, report input weights.
	res := Result{Mate: mate, Edges: make([]int, 0, n/2)}
	for v, u := range mate {
		if u < 0 {
			return Result{}, ErrNoPerfectMatching
		}
		if v < u {
			k := srr.MatchIndex(n, v, u)
			res.Edges = append(res.Edges, k)
			res.Weight += weights[k]
		}
	}
	sort.Ints(res.Edges)

	return res, nil
}

type edge struct {
	i, j int
	w    float64
}

// blossomSolver holds the state of one primal-dual run. Vertices are
// 0..nv-1, non-trivial blossoms nv..2nv-1. An endpoint p addresses one end
// of edge p/2: the i end when p is even, the j end when p is odd.
type blossomSolver struct {
	nv    int
	edges []edge

	endpoint  []int
	neighbend [][]int

	// mate[v] is the endpoint matched to v, or -1.
	mate []int

	// label: 0 free, 1 S (outer), 2 T (inner); bit 4 marks scanBlossom visits.
	label    []int
	labelend []int

	inblossom        []int
	blossomparent    []int
	blossomchilds    [][]int
	blossombase      []int
	blossomendps     [][]int
	bestedge         []int
	blossombestedges [][]int
	unusedblossoms   []int

	dualvar   []float64
	allowedge []bool
	queue     []int
}

func newBlossomSolver(nv int, edges []edge) *blossomSolver {
	s := &blossomSolver{
		nv:               nv,
		edges:            edges,
		endpoint:         make([]int, 2*len(edges)),
		neighbend:        make([][]int, nv),
		mate:             make([]int, nv),
		label:            make([]int, 2*nv),
		labelend:         make([]int, 2*nv),
		inblossom:        make([]int, nv),
		blossomparent:    make([]int, 2*nv),
		blossomchilds:    make([][]int, 2*nv),
		blossombase:      make([]int, 2*nv),
		blossomendps:     make([][]int, 2*nv),
		bestedge:         make([]int, 2*nv),
		blossombestedges: make([][]int, 2*nv),
		unusedblossoms:   make([]int, 0, nv),
		dualvar:          make([]float64, 2*nv),
		allowedge:        make([]bool, len(edges)),
	}

	var maxW float64
	for k, e := range edges {
		s.endpoint[2*k] = e.i
		s.endpoint[2*k+1] = e.j
		s.neighbend[e.i] = append(s.neighbend[e.i], 2*k+1)
		s.neighbend[e.j] = append(s.neighbend[e.j], 2*k)
		if e.w > maxW {
			maxW = e.w
		}
	}
	for v := 0; v < nv; v++ {
		s.mate[v] = -1
		s.inblossom[v] = v
		s.blossombase[v] = v
		s.dualvar[v] = maxW
	}
	for b := 0; b < 2*nv; b++ {
		s.labelend[b] = -1
		s.blossomparent[b] = -1
		s.bestedge[b] = -1
		if b >= nv {
			s.blossombase[b] = -1
			s.unusedblossoms = append(s.unusedblossoms, b)
		}
	}

	return s
}

func (s *blossomSolver) slack(k int) float64 {
	e := s.edges[k]

	return s.dualvar[e.i] + s.dualvar[e.j] - 2*e.w
}

// leaves appends the vertices contained in blossom b to out.
func (s *blossomSolver) leaves(b int, out []int) []int {
	if b < s.nv {
		return append(out, b)
	}
	for _, t := range s.blossomchilds[b] {
		if t < s.nv {
			out = append(out, t)
		} else {
			out = s.leaves(t, out)
		}
	}

	return out
}

// assignLabel labels w and its top-level blossom with t, reached through
// endpoint p. T-blossoms pull their mate into S.
func (s *blossomSolver) assignLabel(w, t, p int) {
	b := s.inblossom[w]
	s.label[w], s.label[b] = t, t
	s.labelend[w], s.labelend[b] = p, p
	s.bestedge[w], s.bestedge[b] = -1, -1
	if t == 1 {
		s.queue = s.leaves(b, s.queue)
		return
	}
	base := s.blossombase[b]
	s.assignLabel(s.endpoint[s.mate[base]], 1, s.mate[base]^1)
}

// scanBlossom traces back from v and w to find a common base. It returns
// the base vertex of a new blossom or -1 for an augmenting path.
func (s *blossomSolver) scanBlossom(v, w int) int {
	var (
		path []int
		base = -1
	)
	for v != -1 || w != -1 {
		b := s.inblossom[v]
		if s.label[b]&4 != 0 {
			base = s.blossombase[b]
			break
		}
		path = append(path, b)
		s.label[b] = 5
		if s.labelend[b] == -1 {
			v = -1
		} else {
			v = s.endpoint[s.labelend[b]]
			b = s.inblossom[v]
			v = s.endpoint[s.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b := range path {
		s.label[b] = 1
	}

	return base
}

// addBlossom shrinks the odd cycle closed by edge k into a new S-blossom
// with the given base.
func (s *blossomSolver) addBlossom(base, k int) {
	v, w := s.edges[k].i, s.edges[k].j
	bb := s.inblossom[base]
	bv := s.inblossom[v]
	bw := s.inblossom[w]

	b := s.unusedblossoms[len(s.unusedblossoms)-1]
	s.unusedblossoms = s.unusedblossoms[:len(s.unusedblossoms)-1]
	s.blossombase[b] = base
	s.blossomparent[b] = -1
	s.blossomparent[bb] = b

	var path, endps []int
	for bv != bb {
		s.blossomparent[bv] = b
		path = append(path, bv)
		endps = append(endps, s.labelend[bv])
		v = s.endpoint[s.labelend[bv]]
		bv = s.inblossom[v]
	}
	path = append(path, bb)
	reverseInts(path)
	reverseInts(endps)
	endps = append(endps, 2*k)
	for bw != bb {
		s.blossomparent[bw] = b
		path = append(path, bw)
		endps = append(endps, s.labelend[bw]^1)
		w = s.endpoint[s.labelend[bw]]
		bw = s.inblossom[w]
	}
	s.blossomchilds[b] = path
	s.blossomendps[b] = endps

	s.label[b] = 1
	s.labelend[b] = s.labelend[bb]
	s.dualvar[b] = 0
	for _, x := range s.leaves(b, nil) {
		if s.label[s.inblossom[x]] == 2 {
			// former T-vertices become S and must be scanned
			s.queue = append(s.queue, x)
		}
		s.inblossom[x] = b
	}

	// Least-slack edges from the new blossom to other S-blossoms.
	bestedgeto := make([]int, 2*s.nv)
	for i := range bestedgeto {
		bestedgeto[i] = -1
	}
	for _, sub := range path {
		var nblists [][]int
		if s.blossombestedges[sub] == nil {
			for _, x := range s.leaves(sub, nil) {
				nb := make([]int, len(s.neighbend[x]))
				for i, p := range s.neighbend[x] {
					nb[i] = p / 2
				}
				nblists = append(nblists, nb)
			}
		} else {
			nblists = [][]int{s.blossombestedges[sub]}
		}
		for _, nblist := range nblists {
			for _, kk := range nblist {
				j := s.edges[kk].j
				if s.inblossom[j] == b {
					j = s.edges[kk].i
				}
				bj := s.inblossom[j]
				if bj != b && s.label[bj] == 1 &&
					(bestedgeto[bj] == -1 || s.slack(kk) < s.slack(bestedgeto[bj])) {
					bestedgeto[bj] = kk
				}
			}
		}
		s.blossombestedges[sub] = nil
		s.bestedge[sub] = -1
	}

	best := make([]int, 0, len(bestedgeto))
	for _, kk := range bestedgeto {
		if kk != -1 {
			best = append(best, kk)
		}
	}
	s.blossombestedges[b] = best
	s.bestedge[b] = -1
	for _, kk := range best {
		if s.bestedge[b] == -1 || s.slack(kk) < s.slack(s.bestedge[b]) {
			s.bestedge[b] = kk
		}
	}
}

// expandBlossom dissolves blossom b. Outside the end stage a T-blossom
// relabels the children along the even path to its entry point.
func (s *blossomSolver) expandBlossom(b int, endstage bool) {
	for _, sub := range s.blossomchilds[b] {
		s.blossomparent[sub] = -1
		switch {
		case sub < s.nv:
			s.inblossom[sub] = sub
		case endstage && s.dualvar[sub] == 0:
			s.expandBlossom(sub, endstage)
		default:
			for _, x := range s.leaves(sub, nil) {
				s.inblossom[x] = sub
			}
		}
	}

	if !endstage && s.label[b] == 2 {
		childs := s.blossomchilds[b]
		endps := s.blossomendps[b]
		at := cyclic(len(childs))

		entrychild := s.inblossom[s.endpoint[s.labelend[b]^1]]
		j := indexOf(childs, entrychild)
		jstep, endptrick := -1, 1
		if j&1 != 0 {
			j -= len(childs)
			jstep, endptrick = 1, 0
		}

		p := s.labelend[b]
		for j != 0 {
			s.label[s.endpoint[p^1]] = 0
			s.label[s.endpoint[endps[at(j-endptrick)]^endptrick^1]] = 0
			s.assignLabel(s.endpoint[p^1], 2, p)
			s.allowedge[endps[at(j-endptrick)]/2] = true
			j += jstep
			p = endps[at(j-endptrick)] ^ endptrick
			s.allowedge[p/2] = true
			j += jstep
		}

		bv := childs[at(j)]
		s.label[s.endpoint[p^1]], s.label[bv] = 2, 2
		s.labelend[s.endpoint[p^1]], s.labelend[bv] = p, p
		s.bestedge[bv] = -1
		j += jstep
		for childs[at(j)] != entrychild {
			bv = childs[at(j)]
			if s.label[bv] == 1 {
				j += jstep
				continue
			}
			reached := -1
			for _, x := range s.leaves(bv, nil) {
				if s.label[x] != 0 {
					reached = x
					break
				}
			}
			if reached != -1 {
				s.label[reached] = 0
				s.label[s.endpoint[s.mate[s.blossombase[bv]]]] = 0
				s.assignLabel(reached, 2, s.labelend[reached])
			}
			j += jstep
		}
	}

	s.label[b], s.labelend[b] = -1, -1
	s.blossomchilds[b], s.blossomendps[b] = nil, nil
	s.blossombase[b] = -1
	s.blossombestedges[b] = nil
	s.bestedge[b] = -1
	s.unusedblossoms = append(s.unusedblossoms, b)
}

// augmentBlossom flips the matching inside b along the even path from v to
// the base, making v the new base.
func (s *blossomSolver) augmentBlossom(b, v int) {
	t := v
	for s.blossomparent[t] != b {
		t = s.blossomparent[t]
	}
	if t >= s.nv {
		s.augmentBlossom(t, v)
	}

	childs := s.blossomchilds[b]
	endps := s.blossomendps[b]
	at := cyclic(len(childs))

	i := indexOf(childs, t)
	j := i
	jstep, endptrick := -1, 1
	if i&1 != 0 {
		j -= len(childs)
		jstep, endptrick = 1, 0
	}
	for j != 0 {
		j += jstep
		t = childs[at(j)]
		p := endps[at(j-endptrick)] ^ endptrick
		if t >= s.nv {
			s.augmentBlossom(t, s.endpoint[p])
		}
		j += jstep
		t = childs[at(j)]
		if t >= s.nv {
			s.augmentBlossom(t, s.endpoint[p^1])
		}
		s.mate[s.endpoint[p]] = p ^ 1
		s.mate[s.endpoint[p^1]] = p
	}

	s.blossomchilds[b] = rotateInts(childs, i)
	s.blossomendps[b] = rotateInts(endps, i)
	s.blossombase[b] = s.blossombase[s.blossomchilds[b][0]]
}

// augmentMatching augments along the path through edge k.
func (s *blossomSolver) augmentMatching(k int) {
	e := s.edges[k]
	starts := [2][2]int{{e.i, 2*k + 1}, {e.j, 2 * k}}
	for _, st := range starts {
		x, p := st[0], st[1]
		for {
			bs := s.inblossom[x]
			if bs >= s.nv {
				s.augmentBlossom(bs, x)
			}
			s.mate[x] = p
			if s.labelend[bs] == -1 {
				// reached an exposed vertex
				break
			}
			t := s.endpoint[s.labelend[bs]]
			bt := s.inblossom[t]
			x = s.endpoint[s.labelend[bt]]
			j := s.endpoint[s.labelend[bt]^1]
			if bt >= s.nv {
				s.augmentBlossom(bt, j)
			}
			s.mate[j] = s.labelend[bt]
			p = s.labelend[bt] ^ 1
		}
	}
}

// solve runs at most nv stages; each stage either augments once or proves
// the matching has maximum cardinality. It returns mate as vertex ids.
func (s *blossomSolver) solve() []int {
	for stage := 0; stage < s.nv; stage++ {
		for b := range s.label {
			s.label[b] = 0
			s.bestedge[b] = -1
			if b >= s.nv {
				s.blossombestedges[b] = nil
			}
		}
		for k := range s.allowedge {
			s.allowedge[k] = false
		}
		s.queue = s.queue[:0]

		for v := 0; v < s.nv; v++ {
			if s.mate[v] == -1 && s.label[s.inblossom[v]] == 0 {
				s.assignLabel(v, 1, -1)
			}
		}

		if !s.grow() {
			break
		}

		for b := s.nv; b < 2*s.nv; b++ {
			if s.blossomparent[b] == -1 && s.blossombase[b] >= 0 &&
				s.label[b] == 1 && s.dualvar[b] == 0 {
				s.expandBlossom(b, true)
			}
		}
	}

	out := make([]int, s.nv)
	for v := 0; v < s.nv; v++ {
		out[v] = -1
		if s.mate[v] >= 0 {
			out[v] = s.endpoint[s.mate[v]]
		}
	}

	return out
}

// grow runs one stage: scan S-vertices, and adjust duals when stuck.
// It reports whether an augmentation happened.
func (s *blossomSolver) grow() bool {
	for {
		for len(s.queue) > 0 {
			v := s.queue[len(s.queue)-1]
			s.queue = s.queue[:len(s.queue)-1]

			for _, p := range s.neighbend[v] {
				k := p / 2
				w := s.endpoint[p]
				if s.inblossom[v] == s.inblossom[w] {
					continue
				}
				var kslack float64
				if !s.allowedge[k] {
					kslack = s.slack(k)
					if kslack <= 0 {
						s.allowedge[k] = true
					}
				}

				switch {
				case s.allowedge[k]:
					switch {
					case s.label[s.inblossom[w]] == 0:
						s.assignLabel(w, 2, p^1)
					case s.label[s.inblossom[w]] == 1:
						base := s.scanBlossom(v, w)
						if base >= 0 {
							s.addBlossom(base, k)
						} else {
							s.augmentMatching(k)
							return true
						}
					case s.label[w] == 0:
						s.label[w] = 2
						s.labelend[w] = p ^ 1
					}
				case s.label[s.inblossom[w]] == 1:
					b := s.inblossom[v]
					if s.bestedge[b] == -1 || kslack < s.slack(s.bestedge[b]) {
						s.bestedge[b] = k
					}
				case s.label[w] == 0:
					if s.bestedge[w] == -1 || kslack < s.slack(s.bestedge[w]) {
						s.bestedge[w] = k
					}
				}
			}
		}

		// No tight edge left: pick the smallest dual adjustment.
		var (
			deltatype    = -1
			delta        float64
			deltaedge    = -1
			deltablossom = -1
		)
		for v := 0; v < s.nv; v++ {
			if s.label[s.inblossom[v]] == 0 && s.bestedge[v] != -1 {
				d := s.slack(s.bestedge[v])
				if deltatype == -1 || d < delta {
					delta, deltatype, deltaedge = d, 2, s.bestedge[v]
				}
			}
		}
		for b := 0; b < 2*s.nv; b++ {
			if s.blossomparent[b] == -1 && s.label[b] == 1 && s.bestedge[b] != -1 {
				d := s.slack(s.bestedge[b]) / 2
				if deltatype == -1 || d < delta {
					delta, deltatype, deltaedge = d, 3, s.bestedge[b]
				}
			}
		}
		for b := s.nv; b < 2*s.nv; b++ {
			if s.blossombase[b] >= 0 && s.blossomparent[b] == -1 && s.label[b] == 2 &&
				(deltatype == -1 || s.dualvar[b] < delta) {
				delta, deltatype, deltablossom = s.dualvar[b], 4, b
			}
		}
		if deltatype == -1 {
			// Maximum cardinality reached; final dual shift then stop.
			deltatype = 1
			delta = s.dualvar[0]
			for v := 1; v < s.nv; v++ {
				if s.dualvar[v] < delta {
					delta = s.dualvar[v]
				}
			}
			if delta < 0 {
				delta = 0
			}
		}

		for v := 0; v < s.nv; v++ {
			switch s.label[s.inblossom[v]] {
			case 1:
				s.dualvar[v] -= delta
			case 2:
				s.dualvar[v] += delta
			}
		}
		for b := s.nv; b < 2*s.nv; b++ {
			if s.blossombase[b] >= 0 && s.blossomparent[b] == -1 {
				switch s.label[b] {
				case 1:
					s.dualvar[b] += delta
				case 2:
					s.dualvar[b] -= delta
				}
			}
		}

		switch deltatype {
		case 1:
			return false
		case 2:
			s.allowedge[deltaedge] = true
			i := s.edges[deltaedge].i
			if s.label[s.inblossom[i]] == 0 {
				i = s.edges[deltaedge].j
			}
			s.queue = append(s.queue, i)
		case 3:
			s.allowedge[deltaedge] = true
			s.queue = append(s.queue, s.edges[deltaedge].i)
		case 4:
			s.expandBlossom(deltablossom, false)
		}
	}
}

func reverseInts(a []int) {
	for l, r := 0, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
}

// rotateInts returns a[i:] followed by a[:i] in a fresh slice.
func rotateInts(a []int, i int) []int {
	out := make([]int, 0, len(a))
	out = append(out, a[i:]...)

	return append(out, a[:i]...)
}

// cyclic maps indices in (-n, n) onto [0, n).
func cyclic(n int) func(int) int {
	return func(j int) int {
		if j < 0 {
			return j + n
		}
		return j
	}
}

func indexOf(a []int, x int) int {
	for i, v := range a {
		if v == x {
			return i
		}
	}

	return -1
}
