// Package binning turns a panel's measured cell powers into a single panel
// power rating.
//
// Two strategies are compared by the simulator:
//   - PairedHalves: the panel is two series-wired half strings, each limited
//     by its weakest cell.
//   - Sectioned: the panel is split into fixed-size sections, each limited by
//     its weakest cell, and the section minimums are averaged.
package binning

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultSectionSize is the section length used by the sectioned strategy.
const DefaultSectionSize = 12

// Strategy computes a panel power from one panel's cell powers.
type Strategy interface {
	// Name returns a short label used in logs and reports.
	Name() string

	// PanelPower returns the rated power of a panel whose cells measured
	// cells. The slice is not modified.
	PanelPower(cells []float64) float64
}

// PairedHalves rates a panel by the weakest cell of each contiguous half.
// Panel power is the mean of the two half minimums times the cell count.
type PairedHalves struct{}

// Name implements Strategy.
func (PairedHalves) Name() string { return "paired-halves" }

// PanelPower implements Strategy. An odd cell count puts the extra cell in
// the second half.
func (PairedHalves) PanelPower(cells []float64) float64 {
	half := len(cells) / 2
	first := floats.Min(cells[:half])
	second := floats.Min(cells[half:])
	return ((first + second) / 2) * float64(len(cells))
}

// Sectioned rates a panel by the weakest cell in each contiguous section of
// Size cells. Panel power is the mean of the section minimums times the cell
// count.
//
// When the cell count is not a multiple of Size, the trailing short section
// is kept and weighted the same as a full one.
type Sectioned struct {
	Size int
}

// NewSectioned returns a Sectioned strategy using DefaultSectionSize.
func NewSectioned() Sectioned {
	return Sectioned{Size: DefaultSectionSize}
}

// Name implements Strategy.
func (s Sectioned) Name() string { return fmt.Sprintf("sectioned-%d", s.Size) }

// PanelPower implements Strategy.
func (s Sectioned) PanelPower(cells []float64) float64 {
	mins := s.SectionMinimums(cells)
	return stat.Mean(mins, nil) * float64(len(cells))
}

// SectionMinimums returns the weakest cell of every section, in order.
func (s Sectioned) SectionMinimums(cells []float64) []float64 {
	size := s.Size
	if size <= 0 {
		size = DefaultSectionSize
	}
	mins := make([]float64, 0, (len(cells)+size-1)/size)
	for start := 0; start < len(cells); start += size {
		end := min(start+size, len(cells))
		mins = append(mins, floats.Min(cells[start:end]))
	}
	return mins
}

// Band is an inclusive power range around a nominal panel rating.
type Band struct {
	Low  float64
	High float64
}

// ToleranceBand returns [nominal*(1-tolerance), nominal*(1+tolerance)].
func ToleranceBand(nominal, tolerance float64) Band {
	return Band{
		Low:  nominal * (1 - tolerance),
		High: nominal * (1 + tolerance),
	}
}

// Contains reports whether power lies within the band, bounds included.
func (b Band) Contains(power float64) bool {
	return power >= b.Low && power <= b.High
}

// PercentWithin returns the share of powers inside the band, as a
// percentage in [0, 100]. An empty slice yields 0.
func (b Band) PercentWithin(powers []float64) float64 {
	if len(powers) == 0 {
		return 0
	}
	inside := 0
	for _, p := range powers {
		if b.Contains(p) {
			inside++
		}
	}
	return float64(inside) / float64(len(powers)) * 100
}
