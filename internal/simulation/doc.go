// Package simulation runs the Monte Carlo experiment comparing two
// cell-to-panel binning strategies.
//
// A batch samples a fresh matrix of cell powers, rates every panel with both
// strategies (see package binning), and reports how many panels land inside
// the tolerance band along with the mean relative power difference between
// the strategies. A Runner repeats batches, one per run, and averages the
// results.
//
// Randomness is injected. Every run draws from its own stream obtained from
// a Streams value, so a fixed seed reproduces an invocation exactly and runs
// never share draws.
//
// Usage:
//
//	streams := simulation.NewSeededStreams(42)
//	records, summary, err := simulation.RunSimulation(6.0, 10, streams)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("A: %.2f%%  B: %.2f%%\n", summary.MeanWithinToleranceA, summary.MeanWithinToleranceB)
package simulation
