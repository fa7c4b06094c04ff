package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/rrsched/compact"
	"github.com/katalvlaran/rrsched/logger"
)

func boundAction(ctx *cli.Context) error {
	log := logger.NewLoggerTo(ctx.App.ErrWriter, ctx.String(logger.LogLevelFlag.Name), "srr")

	p, err := readInstance(ctx)
	if err != nil {
		return err
	}
	bound, err := compact.RelaxationBound(ctx.Context, p)
	if err != nil {
		return err
	}
	log.Debugf("compact relaxation of %d teams solved", p.NTeams)

	_, err = fmt.Fprintf(ctx.App.Writer, "%g\n", bound)

	return err
}
