package simulation

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// RunRecord is the result of one run, tagged with its index.
type RunRecord struct {
	RunIndex int `json:"run"`
	BatchResult
}

// RunSummary averages RunRecords over all runs of an invocation.
type RunSummary struct {
	StdevPercentage      float64 `json:"stdev_percentage"`
	PanelsPerBatch       int     `json:"panels_per_batch"`
	Runs                 int     `json:"runs"`
	MeanWithinToleranceA float64 `json:"mean_within_tolerance_a"`
	MeanWithinToleranceB float64 `json:"mean_within_tolerance_b"`

	// MeanRelativeDiffPercent averages each run's AvgRelativeDiffPercent.
	MeanRelativeDiffPercent float64 `json:"mean_relative_diff_percent"`
}

// Runner repeats batch simulations and collects their results.
type Runner struct {
	params  Params
	streams Streams
	logger  *slog.Logger

	// OnRun, when non-nil, is called with each record as soon as its run
	// completes. It cannot influence the results.
	OnRun func(RunRecord)
}

// NewRunner creates a runner for params drawing from streams.
// A nil logger discards log output.
func NewRunner(params Params, streams Streams, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{params: params, streams: streams, logger: logger}
}

// Params returns the batch parameters used for every run.
func (r *Runner) Params() Params {
	return r.params
}

// Run executes numRuns batches in order and returns one record per run plus
// the summary. numRuns must be positive; otherwise a *UsageError is returned
// and nothing is simulated.
func (r *Runner) Run(numRuns int) ([]RunRecord, RunSummary, error) {
	if err := ValidateRuns(numRuns); err != nil {
		return nil, RunSummary{}, err
	}

	r.logger.Debug("starting simulation",
		"runs", numRuns,
		"stdev_percentage", r.params.StdevPercentage,
		"panels", r.params.NumPanels,
		"cells", r.params.NumCells)

	records := make([]RunRecord, 0, numRuns)
	for run := 0; run < numRuns; run++ {
		rec := RunRecord{
			RunIndex:    run,
			BatchResult: SimulateBatch(r.params, r.streams.ForRun(run)),
		}
		records = append(records, rec)

		r.logger.Debug("run complete",
			"run", run,
			"within_a", rec.WithinToleranceA,
			"within_b", rec.WithinToleranceB,
			"avg_diff", rec.AvgRelativeDiffPercent)
		if r.OnRun != nil {
			r.OnRun(rec)
		}
	}

	return records, Summarize(r.params, records), nil
}

// RunSimulation runs numRuns default-sized batches at the given cell stdev
// percentage. Both arguments are checked before any sampling.
func RunSimulation(stdevPercentage float64, numRuns int, streams Streams) ([]RunRecord, RunSummary, error) {
	if err := ValidateStdev(stdevPercentage); err != nil {
		return nil, RunSummary{}, err
	}
	return NewRunner(DefaultParams().WithStdev(stdevPercentage), streams, nil).Run(numRuns)
}

// Summarize averages records with equal weight per run.
// An empty slice yields a summary with zero means.
func Summarize(params Params, records []RunRecord) RunSummary {
	summary := RunSummary{
		StdevPercentage: params.StdevPercentage,
		PanelsPerBatch:  params.NumPanels,
		Runs:            len(records),
	}
	if len(records) == 0 {
		return summary
	}

	a := make([]float64, len(records))
	b := make([]float64, len(records))
	diff := make([]float64, len(records))
	for i, rec := range records {
		a[i] = rec.WithinToleranceA
		b[i] = rec.WithinToleranceB
		diff[i] = rec.AvgRelativeDiffPercent
	}
	summary.MeanWithinToleranceA = stat.Mean(a, nil)
	summary.MeanWithinToleranceB = stat.Mean(b, nil)
	summary.MeanRelativeDiffPercent = stat.Mean(diff, nil)
	return summary
}
