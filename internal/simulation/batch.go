package simulation

import (
	"github.com/nvandessel/panelsim/internal/binning"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// BatchResult summarizes one simulated batch of panels.
type BatchResult struct {
	// WithinToleranceA is the percentage of paired-halves panels inside the
	// tolerance band.
	WithinToleranceA float64 `json:"within_tolerance_a"`

	// WithinToleranceB is the percentage of sectioned panels inside the
	// tolerance band.
	WithinToleranceB float64 `json:"within_tolerance_b"`

	// AvgRelativeDiffPercent is the mean over panels of (B-A)/A*100.
	// Negative when the sectioned strategy rates panels lower.
	AvgRelativeDiffPercent float64 `json:"avg_relative_diff_percent"`
}

var (
	strategyA binning.Strategy = binning.PairedHalves{}
	strategyB binning.Strategy = binning.NewSectioned()
)

// SimulateBatch samples one batch of panels from rng and compares the two
// binning strategies on it.
//
// p is not validated; an empty batch yields a zero BatchResult. A panel whose
// paired-halves power is zero makes the relative diff infinite or NaN. With a
// positive mean and a stdev of at most 100% this is practically unreachable,
// and it is not guarded.
func SimulateBatch(p Params, rng NormalSource) BatchResult {
	if p.NumPanels <= 0 || p.NumCells <= 0 {
		return BatchResult{}
	}

	cells := sampleCells(p, rng)
	powersA := panelPowers(cells, strategyA)
	powersB := panelPowers(cells, strategyB)

	band := p.Band()
	return BatchResult{
		WithinToleranceA:       band.PercentWithin(powersA),
		WithinToleranceB:       band.PercentWithin(powersB),
		AvgRelativeDiffPercent: stat.Mean(relativeDiffs(powersA, powersB), nil),
	}
}

// sampleCells fills a NumPanels x NumCells matrix with independent
// Normal(MeanCellPower, CellStdev) draws, row by row.
func sampleCells(p Params, rng NormalSource) *mat.Dense {
	mean := p.MeanCellPower()
	sd := p.CellStdev()

	cells := mat.NewDense(p.NumPanels, p.NumCells, nil)
	for i := 0; i < p.NumPanels; i++ {
		row := cells.RawRowView(i)
		for j := range row {
			row[j] = mean + sd*rng.NormFloat64()
		}
	}
	return cells
}

// panelPowers rates every row of cells with s.
func panelPowers(cells *mat.Dense, s binning.Strategy) []float64 {
	rows, _ := cells.Dims()
	powers := make([]float64, rows)
	for i := range powers {
		powers[i] = s.PanelPower(cells.RawRowView(i))
	}
	return powers
}

// relativeDiffs returns (b-a)/a*100 per panel.
func relativeDiffs(a, b []float64) []float64 {
	diffs := make([]float64, len(a))
	for i := range a {
		diffs[i] = (b[i] - a[i]) / a[i] * 100
	}
	return diffs
}
