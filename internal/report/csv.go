package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nvandessel/panelsim/internal/simulation"
)

// ToleranceLabel formats a tolerance fraction as a percentage label, e.g.
// 0.06 becomes "6%".
func ToleranceLabel(tolerance float64) string {
	pct := math.Round(tolerance*1e4) / 100
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// WriteCSV writes one row per record followed by a blank row and the
// summary rows.
func WriteCSV(w io.Writer, records []simulation.RunRecord, summary simulation.RunSummary, tolerance float64) error {
	tol := ToleranceLabel(tolerance)
	cw := csv.NewWriter(w)

	rows := make([][]string, 0, len(records)+6)
	rows = append(rows, []string{
		"Run #",
		"% within " + tol,
		"Optivolt within " + tol,
		"Avg. Optivolt Power Advantage",
	})
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.RunIndex),
			round2(rec.WithinToleranceA),
			round2(rec.WithinToleranceB),
			round2(rec.AvgRelativeDiffPercent),
		})
	}
	rows = append(rows,
		[]string{""},
		[]string{"Cell STDEV", strconv.FormatFloat(summary.StdevPercentage, 'f', -1, 64)},
		[]string{"# panels per simulated batch", strconv.Itoa(summary.PanelsPerBatch)},
		[]string{"% panels within " + tol + " tolerance", Percent(summary.MeanWithinToleranceA)},
		[]string{"% Optivolt panels within " + tol + " tolerance", Percent(summary.MeanWithinToleranceB)},
	)

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// Percent formats v as "XX.XX%".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func round2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
