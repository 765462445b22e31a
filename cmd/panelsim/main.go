package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nvandessel/panelsim/internal/simulation"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if isUsageError(err) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "panelsim <stdevPercentage> <numRuns>",
		Short: "Monte Carlo comparison of solar panel cell-binning strategies",
		Long: `panelsim estimates how cell-to-cell power variance affects the share of
solar panels that land within the ±6% power tolerance.

Each run simulates a batch of 10000 panels with 144 cells each and rates
every panel two ways: by the weakest cell of each half string, and by the
weakest cell of each 12-cell section (Optivolt). Results for every run and
the averages across runs are written to a new CSV in the output directory.

Examples:
  panelsim 3 100                      # 3% cell stdev, 100 runs
  panelsim 2.5 20 --seed 42 --chart   # reproducible, with a PNG chart
  panelsim 4 10 --json                # machine-readable summary`,
		Args:          validateArgCount,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSimulate,
	}

	rootCmd.Flags().String("output-dir", "", "Directory for result files (default from config, sim_results)")
	rootCmd.Flags().Uint64("seed", 0, "Root random seed for reproducible runs (0 = random)")
	rootCmd.Flags().Bool("chart", false, "Also write a PNG chart of per-run results")
	rootCmd.Flags().String("config", "", "Path to a YAML config file (default ~/.panelsim/config.yaml)")
	rootCmd.Flags().String("log-level", "", "Log level: info, debug or trace")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &flagError{err: err}
	})

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// flagError marks a flag parsing failure as a usage error.
type flagError struct {
	err error
}

func (e *flagError) Error() string { return e.err.Error() }

func (e *flagError) Unwrap() error { return e.err }

func isUsageError(err error) bool {
	var usageErr *simulation.UsageError
	var flagErr *flagError
	return errors.As(err, &usageErr) || errors.As(err, &flagErr)
}

func validateArgCount(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return &simulation.UsageError{
			Field:  "arguments",
			Value:  args,
			Reason: "expected <stdevPercentage> <numRuns>",
		}
	}
	return nil
}
