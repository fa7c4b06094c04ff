// Package bnp - best-bound branch-and-price driver.
//
// Solver owns the master, the pricer, the propagator and the brancher and
// runs them node by node:
//  1. Reset and propagate the node's fixings onto the column bounds.
//  2. Alternate master solves and pricing until no column improves.
//  3. Record an integral solution or branch on a fractional (match, round).
//
// The search context reaches every LP solve, so a time limit or a
// cancellation interrupts the node being processed and re-queues it.
package bnp

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/op/go-logging"

	"github.com/katalvlaran/rrsched/logger"
	"github.com/katalvlaran/rrsched/master"
	"github.com/katalvlaran/rrsched/srr"
)

// boundTol absorbs LP noise when comparing bounds with the incumbent.
const boundTol = 1e-6

// Solver runs branch-and-price on one instance. Solve may be called once.
type Solver struct {
	p    *srr.Problem
	opts Options
	log  *logging.Logger

	m        *master.Master
	pricer   *Pricer
	prop     *Propagator
	brancher *Brancher

	queue  nodePQ
	nextID int

	incumbent    *srr.Schedule
	incumbentObj float64
	integralObj  bool

	stats Stats
}

// lpOutcome is the result of column generation at one node.
type lpOutcome struct {
	infeasible bool
	pruned     bool
	bound      float64
	sol        *master.Solution
}

// NewSolver validates the options and builds the master, pricer,
// propagator and brancher for p.
func NewSolver(p *srr.Problem, opts ...Option) (*Solver, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil problem", ErrBadOption)
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := validateOptions(o, p); err != nil {
		return nil, err
	}

	s := &Solver{
		p:            p,
		opts:         o,
		log:          o.logger(),
		incumbentObj: math.Inf(1),
		integralObj:  p.IntegralObjective(),
	}
	s.opts.Logger = s.log
	s.m = master.New(p, o.LP)
	s.m.OnDelete(func(master.ColumnID) { s.stats.ColumnsDeleted++ })
	s.pricer = NewPricer(p, s.m, o.PricingTol, o.DualZeroTol)
	s.prop = NewPropagator(s.m)
	s.brancher = NewBrancher(p, s.m, s, s.opts)

	return s, nil
}

// Master exposes the column pool, mainly for inspection in tests.
func (s *Solver) Master() *master.Master { return s.m }

// Solve searches for an optimal schedule. On cancellation it returns the
// best result so far together with the context error. A configured time
// limit ends the search with status TimeLimit and no error.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	start := time.Now()
	parent := ctx
	if s.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TimeLimit)
		defer cancel()
	}

	root := NewRoot(s.p, s.opts.Fixings...)
	root.LowerBound = math.Inf(-1)
	s.push(root)

	res := &Result{Status: Optimal, RootBound: math.Inf(-1)}
	var runErr error
	for s.queue.Len() > 0 {
		if s.opts.MaxNodes > 0 && s.stats.Nodes >= s.opts.MaxNodes {
			res.Status = NodeLimit
			break
		}
		if ctx.Err() != nil {
			res.Status, runErr = s.interrupted(parent, ctx)
			break
		}

		nd := heap.Pop(&s.queue).(*Node)
		if s.prunable(nd.LowerBound) {
			s.stats.Pruned++
			continue
		}

		if err := s.process(ctx, nd, res); err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			heap.Push(&s.queue, nd)
			res.Status, runErr = s.interrupted(parent, ctx)
			break
		}
	}

	s.finish(res, start)

	return res, runErr
}

// interrupted maps a done context to a status: the solver's own deadline
// is a time limit, anything else is a cancellation.
func (s *Solver) interrupted(parent, ctx context.Context) (SolveStatus, error) {
	if parent.Err() == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return TimeLimit, nil
	}

	return Canceled, parent.Err()
}

func (s *Solver) finish(res *Result, start time.Time) {
	s.stats.Elapsed = time.Since(start)
	res.Stats = s.stats
	res.Schedule = s.incumbent
	res.Objective = s.incumbentObj
	res.LowerBound = math.Min(s.queue.minBound(), s.incumbentObj)

	if res.Status == Optimal {
		if s.incumbent == nil {
			res.Status = Infeasible
			res.Objective = math.Inf(1)
			res.LowerBound = math.Inf(1)
		} else {
			res.LowerBound = s.incumbentObj
		}
	}
	if s.incumbent == nil {
		res.Objective = math.Inf(1)
	}

	h, m, sec := logger.ParseTime(s.stats.Elapsed)
	s.log.Infof("%s after %d nodes, %d LPs, %d probes in %02d:%02d:%02d; objective %g, bound %g",
		res.Status, s.stats.Nodes, s.stats.LPSolves, s.stats.Probes, h, m, sec, res.Objective, res.LowerBound)
}

func (s *Solver) push(nd *Node) {
	nd.ID = s.nextID
	s.nextID++
	heap.Push(&s.queue, nd)
}

// process evaluates nd: propagate, generate columns, then either record
// an incumbent or branch.
func (s *Solver) process(ctx context.Context, nd *Node, res *Result) error {
	s.stats.Nodes++
	if nd.Depth > s.stats.MaxDepth {
		s.stats.MaxDepth = nd.Depth
	}

	s.prop.Reset()
	pres, err := s.prop.Propagate(nd)
	if err != nil {
		return err
	}
	if pres.Status == StatusCutoff {
		s.log.Debugf("node %d: cut off by propagation (%v)", nd.ID, nd.Chain())
		s.stats.Pruned++
		if nd.Parent == nil {
			res.RootBound = math.Inf(1)
		}
		return nil
	}

	out, err := s.columnGeneration(ctx, nd, true)
	if err != nil {
		return err
	}
	if nd.Parent == nil {
		res.RootBound = out.bound
		if out.infeasible {
			res.RootBound = math.Inf(1)
		}
	}
	if out.infeasible || out.pruned {
		s.log.Debugf("node %d: pruned (infeasible=%t)", nd.ID, out.infeasible)
		s.stats.Pruned++
		return nil
	}

	nd.LowerBound = math.Max(nd.LowerBound, out.bound)
	if s.prunable(nd.LowerBound) {
		s.stats.Pruned++
		return nil
	}

	y := s.brancher.Aggregate(out.sol)
	if s.brancher.Integral(y) {
		s.record(out.sol)
		return nil
	}

	if s.opts.ColumnAgeLimit > 0 {
		s.m.CleanUp(s.opts.ColumnAgeLimit, out.sol)
	}

	br, err := s.brancher.Branch(ctx, nd, out.sol)
	if err != nil {
		return err
	}
	s.stats.Probes += br.Probes
	switch br.Status {
	case StatusPruneNode:
		s.stats.Pruned++
	case StatusBranched:
		for _, child := range []*Node{br.Same, br.Diff} {
			if math.IsInf(child.LowerBound, 1) {
				s.stats.Pruned++
				continue
			}
			s.push(child)
		}
		s.log.Debugf("node %d (depth %d, bound %g): %s -> nodes %d/%d",
			nd.ID, nd.Depth, nd.LowerBound, br.Candidate, br.Same.ID, br.Diff.ID)
	}

	return nil
}

// columnGeneration alternates master solves and pricing at nd until no
// improving column is left. aging is off during probes so that excursions
// do not influence cleanup.
func (s *Solver) columnGeneration(ctx context.Context, nd *Node, aging bool) (*lpOutcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sol, err := s.m.Solve(ctx)
		if err != nil {
			return nil, err
		}
		s.stats.LPSolves++
		if aging {
			s.m.Age(sol)
		}

		pr, err := s.pricer.Price(nd, sol)
		if err != nil {
			return nil, err
		}
		s.stats.PricingRounds++
		s.stats.ColumnsAdded += len(pr.Added)

		switch {
		case pr.RoundWithoutMatching:
			return &lpOutcome{infeasible: true}, nil
		case pr.Status == StatusExhausted && sol.Infeasible:
			return &lpOutcome{infeasible: true}, nil
		case pr.Status == StatusExhausted:
			return &lpOutcome{bound: sol.Objective, sol: sol}, nil
		case !sol.Infeasible && s.prunable(pr.LagrangianBound):
			return &lpOutcome{pruned: true, bound: pr.LagrangianBound}, nil
		}
	}
}

// Probe solves the LP of nd's child carrying c and restores the master
// afterwards, whatever the outcome.
func (s *Solver) Probe(ctx context.Context, nd *Node, c Constraint) (ProbeResult, error) {
	snap := s.m.Snapshot()
	defer s.m.Restore(snap)

	child := nd.Child(c)
	s.prop.Reset()
	pres, err := s.prop.Propagate(child)
	if err != nil {
		return ProbeResult{}, err
	}
	if pres.Status == StatusCutoff {
		return ProbeResult{Cutoff: true}, nil
	}

	out, err := s.columnGeneration(ctx, child, false)
	if err != nil {
		return ProbeResult{}, err
	}
	if out.infeasible || out.pruned {
		return ProbeResult{Cutoff: true, Objective: out.bound}, nil
	}

	return ProbeResult{Objective: out.bound}, nil
}

// prunable reports whether a subtree with the given bound cannot beat the
// incumbent. Integral objectives round the bound up first.
func (s *Solver) prunable(bound float64) bool {
	if s.incumbent == nil {
		return false
	}
	if s.integralObj {
		bound = math.Ceil(bound - boundTol)
	}

	return bound >= s.incumbentObj-boundTol
}

// record turns an integral master solution into a schedule and keeps it
// if it improves the incumbent.
func (s *Solver) record(sol *master.Solution) {
	sched := srr.NewSchedule(s.p.NTeams)
	for id, v := range sol.Values {
		if v < 0.5 {
			continue
		}
		c, err := s.m.Column(id)
		if err != nil {
			continue
		}
		for _, k := range c.Matches {
			i, j := srr.TeamsOfIndex(s.p.NTeams, k)
			sched.Add(c.Round, i, j)
		}
	}
	sched.Normalize()
	if err := sched.Validate(); err != nil {
		s.log.Warningf("integral LP solution is not a schedule: %v", err)
		return
	}

	obj := sched.Total(s.p)
	sched.Cost = obj
	if obj >= s.incumbentObj-boundTol {
		return
	}
	s.incumbent, s.incumbentObj = sched, obj
	s.stats.Incumbents++
	s.log.Noticef("new incumbent %g after %d nodes", obj, s.stats.Nodes)
}
