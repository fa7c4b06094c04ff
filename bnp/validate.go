package bnp

import (
	"fmt"

	"github.com/katalvlaran/rrsched/srr"
)

// validateOptions checks o against problem p.
//
// Stage 1 (Budgets): non-negative node, time and age limits.
// Stage 2 (Tolerances): strictly positive tolerances.
// Stage 3 (Strong branching): fraction and decay in (0, 1].
// Stage 4 (Fixings): every fixing addresses a cell of p.
func validateOptions(o Options, p *srr.Problem) error {
	if o.MaxNodes < 0 {
		return fmt.Errorf("%w: MaxNodes=%d", ErrBadOption, o.MaxNodes)
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: TimeLimit=%s", ErrBadOption, o.TimeLimit)
	}
	if o.ColumnAgeLimit < 0 {
		return fmt.Errorf("%w: ColumnAgeLimit=%d", ErrBadOption, o.ColumnAgeLimit)
	}

	if o.PricingTol <= 0 || o.DualZeroTol < 0 || o.IntegralityTol <= 0 || o.IntegralityTol >= 0.5 {
		return fmt.Errorf("%w: tolerances pricing=%g dual=%g integrality=%g",
			ErrBadOption, o.PricingTol, o.DualZeroTol, o.IntegralityTol)
	}

	if o.StrongBranching {
		if o.StrongFraction <= 0 || o.StrongFraction > 1 {
			return fmt.Errorf("%w: StrongFraction=%g", ErrBadOption, o.StrongFraction)
		}
		if o.StrongDecay <= 0 || o.StrongDecay > 1 {
			return fmt.Errorf("%w: StrongDecay=%g", ErrBadOption, o.StrongDecay)
		}
	}

	for _, c := range o.Fixings {
		if err := c.Validate(p.NTeams); err != nil {
			return err
		}
	}

	return nil
}
