package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nvandessel/panelsim/internal/config"
	"github.com/nvandessel/panelsim/internal/logging"
	"github.com/nvandessel/panelsim/internal/report"
	"github.com/nvandessel/panelsim/internal/simulation"
	"github.com/spf13/cobra"
)

// parseArgs converts the positional arguments into a stdev percentage and a
// run count, rejecting anything out of range.
func parseArgs(args []string) (float64, int, error) {
	stdev, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return 0, 0, &simulation.UsageError{Field: "stdevPercentage", Value: args[0], Reason: "must be a number"}
	}
	if err := simulation.ValidateStdev(stdev); err != nil {
		return 0, 0, err
	}

	runs, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return 0, 0, &simulation.UsageError{Field: "numRuns", Value: args[1], Reason: "must be an integer"}
	}
	if err := simulation.ValidateRuns(runs); err != nil {
		return 0, 0, err
	}
	return stdev, runs, nil
}

// resolveConfig loads the config file and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.PanelsimConfig, error) {
	var (
		cfg *config.PanelsimConfig
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Output.Dir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("chart") {
		cfg.Output.Chart, _ = flags.GetBool("chart")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	stdev, runs, err := parseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	invocation := uuid.NewString()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = simulation.RandomSeed()
	}

	params := simulation.DefaultParams().WithStdev(stdev)
	logger.Debug("resolved configuration",
		"invocation", invocation,
		"seed", seed,
		"output_dir", cfg.Output.Dir,
		"chart", cfg.Output.Chart)
	logger.Log(context.Background(), logging.LevelTrace, "batch parameters",
		"stdev_percentage", params.StdevPercentage,
		"num_panels", params.NumPanels,
		"mean_panel_power", params.MeanPanelPower,
		"num_cells", params.NumCells,
		"tolerance", params.Tolerance)

	created, err := report.EnsureDir(cfg.Output.Dir)
	if err != nil {
		return err
	}
	if created && !jsonOut {
		fmt.Fprintf(out, "%s directory created to store simulation results.\n", cfg.Output.Dir)
	}

	trace := logging.NewRunTrace(cfg.Output.Dir, cfg.Logging.Level, invocation)
	defer trace.Close()

	runner := simulation.NewRunner(params, simulation.NewSeededStreams(seed), logger)
	runner.OnRun = func(rec simulation.RunRecord) {
		trace.Record(rec)
	}

	if !jsonOut {
		fmt.Fprintln(out, "Running simulation...")
	}
	records, summary, err := runner.Run(runs)
	if err != nil {
		return err
	}

	saved, err := report.Save(records, summary, report.Options{
		Dir:       cfg.Output.Dir,
		Tolerance: params.Tolerance,
		Chart:     cfg.Output.Chart,
	})
	if err != nil {
		return err
	}
	saved.DirCreated = created
	logger.Debug("results saved", slog.String("csv", saved.CSVPath), slog.String("chart", saved.ChartPath))

	if jsonOut {
		return printJSONSummary(out, simulateOutput{
			Invocation: invocation,
			Seed:       seed,
			Files:      saved,
			Summary:    summary,
			Runs:       records,
		})
	}
	printSummary(out, saved, summary, params.Tolerance)
	return nil
}
