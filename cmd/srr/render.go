package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/rrsched/bnp"
	"github.com/katalvlaran/rrsched/srr"
)

// report is the YAML form of a solve.
type report struct {
	Status     string        `yaml:"status"`
	Objective  float64       `yaml:"objective"`
	LowerBound float64       `yaml:"lower_bound"`
	RootBound  float64       `yaml:"root_bound"`
	Gap        float64       `yaml:"gap"`
	Nodes      int           `yaml:"nodes"`
	LPSolves   int           `yaml:"lp_solves"`
	Columns    int           `yaml:"columns_added"`
	Elapsed    string        `yaml:"elapsed"`
	Schedule   *srr.Schedule `yaml:"schedule,omitempty"`
}

func renderResult(w io.Writer, format string, res *bnp.Result) error {
	switch format {
	case "yaml":
		return renderYAML(w, res)
	case "table", "":
		renderTable(w, res)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderYAML(w io.Writer, res *bnp.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	return enc.Encode(report{
		Status:     res.Status.String(),
		Objective:  res.Objective,
		LowerBound: res.LowerBound,
		RootBound:  res.RootBound,
		Gap:        res.Gap(),
		Nodes:      res.Stats.Nodes,
		LPSolves:   res.Stats.LPSolves,
		Columns:    res.Stats.ColumnsAdded,
		Elapsed:    res.Stats.Elapsed.String(),
		Schedule:   res.Schedule,
	})
}

func renderTable(w io.Writer, res *bnp.Result) {
	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.SetStyle(table.StyleLight)
	summary.SetTitle("search")
	summary.AppendRows([]table.Row{
		{"status", res.Status},
		{"objective", res.Objective},
		{"lower bound", res.LowerBound},
		{"root bound", res.RootBound},
		{"gap", fmt.Sprintf("%.2f%%", 100*res.Gap())},
		{"nodes", res.Stats.Nodes},
		{"pruned", res.Stats.Pruned},
		{"LP solves", res.Stats.LPSolves},
		{"columns added", res.Stats.ColumnsAdded},
		{"probes", res.Stats.Probes},
		{"elapsed", res.Stats.Elapsed.Round(1e6)},
	})
	summary.Render()

	if res.Schedule == nil {
		return
	}
	plan := table.NewWriter()
	plan.SetOutputMirror(w)
	plan.SetStyle(table.StyleLight)
	plan.AppendHeader(table.Row{"round", "matches"})
	for r, round := range res.Schedule.Rounds {
		names := make([]string, len(round))
		for i, m := range round {
			names[i] = m.String()
		}
		plan.AppendRow(table.Row{r, strings.Join(names, "  ")})
	}
	plan.AppendFooter(table.Row{"cost", res.Schedule.Cost})
	plan.Render()
}
