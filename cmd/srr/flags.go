package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/rrsched/bnp"
)

var (
	maxNodesFlag = cli.IntFlag{
		Name:  "max-nodes",
		Usage: "stop after processing this many search nodes (0 = unlimited)",
	}
	timeLimitFlag = cli.DurationFlag{
		Name:  "time-limit",
		Usage: "stop after this wall-clock time (0 = unlimited)",
	}
	noStrongBranchingFlag = cli.BoolFlag{
		Name:  "no-strong-branching",
		Usage: "branch on the best-scored cell without LP probing",
	}
	strongFractionFlag = cli.Float64Flag{
		Name:  "strong-fraction",
		Usage: "share of (match, round) cells probed at the root",
		Value: bnp.DefaultStrongFraction,
	}
	strongDecayFlag = cli.Float64Flag{
		Name:  "strong-decay",
		Usage: "per-depth decay of the probing budget",
		Value: bnp.DefaultStrongDecay,
	}
	columnAgeLimitFlag = cli.IntFlag{
		Name:  "column-age-limit",
		Usage: "delete generated columns unused for this many LP solves (0 = keep all)",
		Value: bnp.DefaultColumnAgeLimit,
	}
	fixFlag = cli.StringSliceFlag{
		Name:  "fix",
		Usage: "force a match into a round, as i-j@r (repeatable)",
	}
	forbidFlag = cli.StringSliceFlag{
		Name:  "forbid",
		Usage: "keep a match out of a round, as i-j@r (repeatable)",
	}
	formatFlag = cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format (\"table\", \"yaml\")",
		Value:   "table",
	}
	ratioFlag = cli.Float64Flag{
		Name:  "ratio",
		Usage: "share of cost cells set to one",
		Value: 0.5,
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed",
		Value: 1,
	}
	outputFlag = cli.PathFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write to this file instead of stdout",
	}
)

// parseCell reads "i-j@r".
func parseCell(s string, permitted bool) (bnp.Constraint, error) {
	var i, j, r int
	if _, err := fmt.Sscanf(s, "%d-%d@%d", &i, &j, &r); err != nil {
		return bnp.Constraint{}, fmt.Errorf("bad cell %q, want i-j@r: %w", s, err)
	}

	return bnp.NewConstraint(i, j, r, permitted), nil
}

// solverOptions turns the solve flags into solver options.
func solverOptions(ctx *cli.Context) ([]bnp.Option, error) {
	opts := []bnp.Option{
		bnp.WithMaxNodes(ctx.Int(maxNodesFlag.Name)),
		bnp.WithTimeLimit(ctx.Duration(timeLimitFlag.Name)),
		bnp.WithStrongBranching(!ctx.Bool(noStrongBranchingFlag.Name)),
		bnp.WithStrongBudget(ctx.Float64(strongFractionFlag.Name), ctx.Float64(strongDecayFlag.Name)),
		bnp.WithColumnAgeLimit(ctx.Int(columnAgeLimitFlag.Name)),
	}

	for _, group := range []struct {
		values    []string
		permitted bool
	}{
		{ctx.StringSlice(fixFlag.Name), true},
		{ctx.StringSlice(forbidFlag.Name), false},
	} {
		for _, v := range group.values {
			c, err := parseCell(v, group.permitted)
			if err != nil {
				return nil, err
			}
			opts = append(opts, bnp.WithFixings(c))
		}
	}

	return opts, nil
}
