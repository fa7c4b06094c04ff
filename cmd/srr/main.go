// Command srr - command-line entry point: solve, generate and bound.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/rrsched/logger"
)

var solveCommand = cli.Command{
	Action:    solveAction,
	Name:      "solve",
	Usage:     "Finds a minimum-cost single round-robin schedule.",
	ArgsUsage: "<instance>",
	Flags: []cli.Flag{
		&maxNodesFlag,
		&timeLimitFlag,
		&noStrongBranchingFlag,
		&strongFractionFlag,
		&strongDecayFlag,
		&columnAgeLimitFlag,
		&fixFlag,
		&forbidFlag,
		&formatFlag,
		&outputFlag,
		&logger.LogLevelFlag,
	},
}

var generateCommand = cli.Command{
	Action:    generateAction,
	Name:      "generate",
	Usage:     "Writes a random instance with 0/1 costs.",
	ArgsUsage: "<teams>",
	Flags: []cli.Flag{
		&ratioFlag,
		&seedFlag,
		&outputFlag,
	},
}

var boundCommand = cli.Command{
	Action:    boundAction,
	Name:      "bound",
	Usage:     "Prints the LP bound of the compact (match, round) formulation.",
	ArgsUsage: "<instance>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
	},
}

// srrApp is the round-robin scheduling tool.
var srrApp = cli.App{
	Name:     "srr",
	HelpName: "srr",
	Usage:    "schedule single round-robin tournaments by branch-and-price",
	Commands: []*cli.Command{
		&solveCommand,
		&generateCommand,
		&boundCommand,
	},
}

func main() {
	if err := srrApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
