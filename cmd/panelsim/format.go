package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nvandessel/panelsim/internal/report"
	"github.com/nvandessel/panelsim/internal/simulation"
)

// simulateOutput is the --json result of a simulation.
type simulateOutput struct {
	Invocation string                 `json:"invocation"`
	Seed       uint64                 `json:"seed"`
	Files      *report.Result         `json:"files"`
	Summary    simulation.RunSummary  `json:"summary"`
	Runs       []simulation.RunRecord `json:"runs"`
}

func printJSONSummary(w io.Writer, v simulateOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSummary echoes the CSV's summary rows to the console.
func printSummary(w io.Writer, saved *report.Result, s simulation.RunSummary, tolerance float64) {
	tol := report.ToleranceLabel(tolerance)

	fmt.Fprintf(w, "Simulation complete. Results stored in %s\n", saved.CSVPath)
	if saved.ChartPath != "" {
		fmt.Fprintf(w, "Chart stored in %s\n", saved.ChartPath)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    Summary:")
	fmt.Fprintf(w, "\tCell STDEV:  %s\n", report.Percent(s.StdevPercentage))
	fmt.Fprintf(w, "\t# panels per simulated batch: %d\n", s.PanelsPerBatch)
	fmt.Fprintf(w, "\t%% panels within %s tolerance:  %s\n", tol, report.Percent(s.MeanWithinToleranceA))
	fmt.Fprintf(w, "\t%% Optivolt panels within %s tolerance:  %s\n", tol, report.Percent(s.MeanWithinToleranceB))
}
