package report

import (
	"fmt"
	"io"
	"math"

	"github.com/nvandessel/panelsim/internal/simulation"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart dimensions in pixels.
const (
	chartWidth  = 1024
	chartHeight = 480
)

// WriteChart renders the per-run within-tolerance percentages of both
// strategies as a PNG line chart.
func WriteChart(w io.Writer, records []simulation.RunRecord, summary simulation.RunSummary) error {
	if len(records) == 0 {
		return fmt.Errorf("no runs to chart")
	}

	xs := make([]float64, len(records))
	as := make([]float64, len(records))
	bs := make([]float64, len(records))
	for i, rec := range records {
		xs[i] = float64(rec.RunIndex)
		as[i] = rec.WithinToleranceA
		bs[i] = rec.WithinToleranceB
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Cell STDEV %.2f%%, %d panels per batch", summary.StdevPercentage, summary.PanelsPerBatch),
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Run #",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, xs[len(xs)-1])},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "% within tolerance",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Paired halves",
				XValues: xs,
				YValues: as,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
			},
			chart.ContinuousSeries{
				Name:    "Optivolt (sections of 12)",
				XValues: xs,
				YValues: bs,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 0, G: 128, B: 0, A: 255}, StrokeWidth: 2.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
