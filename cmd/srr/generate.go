package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/rrsched/srr"
)

func generateAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("expected the number of teams, got %d arguments", ctx.Args().Len())
	}
	n, err := strconv.Atoi(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid team count %q; %w", ctx.Args().First(), err)
	}

	p, err := srr.RandomBinary(n, ctx.Float64(ratioFlag.Name), ctx.Int64(seedFlag.Name))
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(ctx)
	if err != nil {
		return err
	}
	defer closeOut()

	return srr.Write(out, p)
}
