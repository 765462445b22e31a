package simulation

import (
	"fmt"

	"github.com/nvandessel/panelsim/internal/binning"
)

// Default batch parameters.
const (
	DefaultNumPanels      = 10000
	DefaultMeanPanelPower = 430.0
	DefaultNumCells       = 144
	DefaultTolerance      = 0.06
)

// Params describes one simulated batch.
type Params struct {
	// StdevPercentage is the cell-to-cell standard deviation as a
	// percentage of the mean cell power. Range: 0 to 100.
	StdevPercentage float64 `json:"stdev_percentage" yaml:"stdev_percentage"`

	// NumPanels is the number of panels per batch.
	NumPanels int `json:"num_panels" yaml:"num_panels"`

	// MeanPanelPower is the nominal panel rating in watts.
	MeanPanelPower float64 `json:"mean_panel_power" yaml:"mean_panel_power"`

	// NumCells is the number of cells per panel. Must be even.
	NumCells int `json:"num_cells" yaml:"num_cells"`

	// Tolerance is the accepted deviation from MeanPanelPower as a
	// fraction, e.g. 0.06 for ±6%.
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// DefaultParams returns the standard batch with zero cell variance.
func DefaultParams() Params {
	return Params{
		StdevPercentage: 0,
		NumPanels:       DefaultNumPanels,
		MeanPanelPower:  DefaultMeanPanelPower,
		NumCells:        DefaultNumCells,
		Tolerance:       DefaultTolerance,
	}
}

// WithStdev returns a copy of p using the given stdev percentage.
func (p Params) WithStdev(pct float64) Params {
	p.StdevPercentage = pct
	return p
}

// MeanCellPower returns the expected power of a single cell.
func (p Params) MeanCellPower() float64 {
	return p.MeanPanelPower / float64(p.NumCells)
}

// CellStdev returns the absolute standard deviation of a cell's power.
func (p Params) CellStdev() float64 {
	return p.MeanCellPower() * (p.StdevPercentage / 100)
}

// Band returns the inclusive tolerance band around MeanPanelPower.
func (p Params) Band() binning.Band {
	return binning.ToleranceBand(p.MeanPanelPower, p.Tolerance)
}

// Validate checks that p describes a well-formed batch.
// A trailing short section for the sectioned strategy is allowed, so the
// cell count only has to split into two halves.
func (p Params) Validate() error {
	if err := ValidateStdev(p.StdevPercentage); err != nil {
		return err
	}
	if p.NumPanels <= 0 {
		return &UsageError{Field: "num_panels", Value: p.NumPanels, Reason: "must be a positive integer"}
	}
	if p.MeanPanelPower <= 0 {
		return &UsageError{Field: "mean_panel_power", Value: p.MeanPanelPower, Reason: "must be positive"}
	}
	if p.NumCells <= 0 || p.NumCells%2 != 0 {
		return &UsageError{Field: "num_cells", Value: p.NumCells, Reason: "must be a positive even integer"}
	}
	if p.Tolerance < 0 || p.Tolerance >= 1 {
		return &UsageError{Field: "tolerance", Value: p.Tolerance, Reason: "must be in [0, 1)"}
	}
	return nil
}

// ValidateStdev checks that pct is a percentage in [0, 100].
func ValidateStdev(pct float64) error {
	// Written so NaN fails too.
	if !(pct >= 0 && pct <= 100) {
		return &UsageError{Field: "stdev_percentage", Value: pct, Reason: "must be between 0% and 100%"}
	}
	return nil
}

// ValidateRuns checks that n is a usable run count.
func ValidateRuns(n int) error {
	if n <= 0 {
		return &UsageError{Field: "runs", Value: n, Reason: "must be a positive integer"}
	}
	return nil
}

// UsageError reports a malformed or out-of-range input. No simulation work
// is done once one is returned.
type UsageError struct {
	Field  string `json:"field"`
	Value  any    `json:"value"`
	Reason string `json:"reason"`
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
