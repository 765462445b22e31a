// Package report writes simulation results to the output directory.
//
// Every invocation gets its own panel_mism_output_<n>.csv, where n counts
// the results already in the directory. An optional PNG chart with the same
// suffix sits next to it.
package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nvandessel/panelsim/internal/simulation"
)

// Options controls what Save writes.
type Options struct {
	// Dir is the output directory. Created if absent.
	Dir string

	// Tolerance labels the CSV columns, e.g. 0.06 for "6%".
	Tolerance float64

	// Chart also writes the PNG chart.
	Chart bool
}

// Result describes the files Save produced.
type Result struct {
	Dir        string `json:"dir"`
	DirCreated bool   `json:"dir_created"`
	Index      int    `json:"index"`
	CSVPath    string `json:"csv_path"`
	ChartPath  string `json:"chart_path,omitempty"`
}

// Save writes the records and summary as a new result file in opts.Dir.
// Both outputs are rendered in memory first so a failure leaves no partial
// files behind.
func Save(records []simulation.RunRecord, summary simulation.RunSummary, opts Options) (*Result, error) {
	var csvBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, records, summary, opts.Tolerance); err != nil {
		return nil, err
	}

	var chartBuf bytes.Buffer
	if opts.Chart {
		if err := WriteChart(&chartBuf, records, summary); err != nil {
			return nil, err
		}
	}

	created, err := EnsureDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	n, err := NextIndex(opts.Dir)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Dir:        opts.Dir,
		DirCreated: created,
		Index:      n,
		CSVPath:    CSVPath(opts.Dir, n),
	}
	if err := writeNew(res.CSVPath, csvBuf.Bytes()); err != nil {
		return nil, err
	}

	if opts.Chart {
		res.ChartPath = ChartPath(opts.Dir, n)
		if err := os.WriteFile(res.ChartPath, chartBuf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("failed to write chart: %w", err)
		}
	}
	return res, nil
}

// writeNew creates path, failing if it already exists.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create result file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write result file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close result file: %w", err)
	}
	return nil
}
