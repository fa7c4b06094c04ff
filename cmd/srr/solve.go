package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/rrsched/bnp"
	"github.com/katalvlaran/rrsched/logger"
	"github.com/katalvlaran/rrsched/srr"
)

var errNoSchedule = errors.New("no feasible schedule")

func solveAction(ctx *cli.Context) error {
	log := logger.NewLoggerTo(ctx.App.ErrWriter, ctx.String(logger.LogLevelFlag.Name), "srr")

	p, err := readInstance(ctx)
	if err != nil {
		return err
	}
	opts, err := solverOptions(ctx)
	if err != nil {
		return err
	}
	opts = append(opts, bnp.WithLogger(logger.NewLoggerTo(ctx.App.ErrWriter, ctx.String(logger.LogLevelFlag.Name), "bnp")))

	sv, err := bnp.NewSolver(p, opts...)
	if err != nil {
		return err
	}
	log.Infof("solving %d teams, %d rounds", p.NTeams, p.NRounds)
	res, err := sv.Solve(ctx.Context)
	if err != nil && res == nil {
		return err
	}

	out, closeOut, err := openOutput(ctx)
	if err != nil {
		return err
	}
	defer closeOut()

	if rerr := renderResult(out, ctx.String(formatFlag.Name), res); rerr != nil {
		return rerr
	}
	if err != nil {
		return err
	}
	if res.Status == bnp.Infeasible {
		return errNoSchedule
	}

	return nil
}

func readInstance(ctx *cli.Context) (*srr.Problem, error) {
	if ctx.Args().Len() != 1 {
		return nil, fmt.Errorf("expected one instance file, got %d arguments", ctx.Args().Len())
	}

	return srr.ReadFile(ctx.Args().First())
}

// openOutput returns the --output file or the app writer.
func openOutput(ctx *cli.Context) (io.Writer, func(), error) {
	path := ctx.Path(outputFlag.Name)
	if path == "" {
		w := ctx.App.Writer
		if w == nil {
			w = os.Stdout
		}
		return w, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create %s; %w", path, err)
	}

	return f, func() { _ = f.Close() }, nil
}
