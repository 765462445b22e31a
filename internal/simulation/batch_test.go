package simulation

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestSimulateBatch_ZeroStdev(t *testing.T) {
	p := DefaultParams()
	res := SimulateBatch(p, rand.New(rand.NewPCG(1, 2)))

	if res.WithinToleranceA != 100 {
		t.Errorf("WithinToleranceA = %v, want 100", res.WithinToleranceA)
	}
	if res.WithinToleranceB != 100 {
		t.Errorf("WithinToleranceB = %v, want 100", res.WithinToleranceB)
	}
	if math.Abs(res.AvgRelativeDiffPercent) > 1e-9 {
		t.Errorf("AvgRelativeDiffPercent = %v, want 0", res.AvgRelativeDiffPercent)
	}
}

func TestSampleCells_ZeroStdevIsExactMean(t *testing.T) {
	p := DefaultParams()
	p.NumPanels = 5
	cells := sampleCells(p, rand.New(rand.NewPCG(3, 4)))

	rows, cols := cells.Dims()
	if rows != 5 || cols != p.NumCells {
		t.Fatalf("Dims() = %d x %d, want 5 x %d", rows, cols, p.NumCells)
	}
	want := p.MeanCellPower()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if got := cells.At(i, j); got != want {
				t.Fatalf("cell (%d, %d) = %v, want %v", i, j, got, want)
			}
		}
	}
	for _, power := range panelPowers(cells, strategyA) {
		if math.Abs(power-p.MeanPanelPower) > 1e-9 {
			t.Fatalf("paired-halves power = %v, want %v", power, p.MeanPanelPower)
		}
	}
	for _, power := range panelPowers(cells, strategyB) {
		if math.Abs(power-p.MeanPanelPower) > 1e-9 {
			t.Fatalf("sectioned power = %v, want %v", power, p.MeanPanelPower)
		}
	}
}

func TestSampleCells_PanelsDoNotShareDraws(t *testing.T) {
	p := DefaultParams().WithStdev(5)
	p.NumPanels = 50
	cells := sampleCells(p, rand.New(rand.NewPCG(5, 6)))

	seen := make(map[float64]bool)
	rows, cols := cells.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := cells.At(i, j)
			if seen[v] {
				t.Fatalf("draw %v repeated at (%d, %d)", v, i, j)
			}
			seen[v] = true
		}
	}
}

func TestSampleCells_MomentsMatchParams(t *testing.T) {
	p := DefaultParams().WithStdev(10)
	p.NumPanels = 500
	cells := sampleCells(p, rand.New(rand.NewPCG(7, 8)))

	var sum, sumSq float64
	rows, cols := cells.Dims()
	n := float64(rows * cols)
	for i := 0; i < rows; i++ {
		for _, v := range cells.RawRowView(i) {
			sum += v
			sumSq += v * v
		}
	}
	mean := sum / n
	sd := math.Sqrt(sumSq/n - mean*mean)

	if math.Abs(mean-p.MeanCellPower()) > 0.003*p.MeanCellPower() {
		t.Errorf("sample mean = %v, want about %v", mean, p.MeanCellPower())
	}
	if math.Abs(sd-p.CellStdev()) > 0.02*p.CellStdev() {
		t.Errorf("sample stdev = %v, want about %v", sd, p.CellStdev())
	}
}

func TestSimulateBatch_PercentagesInRange(t *testing.T) {
	for _, pct := range []float64{0, 0.5, 2, 3, 6, 25, 100} {
		p := DefaultParams().WithStdev(pct)
		p.NumPanels = 1000
		res := SimulateBatch(p, rand.New(rand.NewPCG(uint64(pct*10), 1)))
		AssertPercentagesInRange(t, []RunRecord{{RunIndex: 0, BatchResult: res}})
	}
}

func TestSimulateBatch_SectionedAheadAtSmallStdev(t *testing.T) {
	p := DefaultParams().WithStdev(1)
	p.NumPanels = 2000
	for seed := uint64(0); seed < 5; seed++ {
		res := SimulateBatch(p, rand.New(rand.NewPCG(seed, 11)))
		if res.AvgRelativeDiffPercent < -1e-6 {
			t.Errorf("seed %d: AvgRelativeDiffPercent = %v, want >= 0", seed, res.AvgRelativeDiffPercent)
		}
	}
}

func TestSimulateBatch_DeterministicForSameStream(t *testing.T) {
	p := DefaultParams().WithStdev(3)
	p.NumPanels = 500
	first := SimulateBatch(p, rand.New(rand.NewPCG(9, 9)))
	second := SimulateBatch(p, rand.New(rand.NewPCG(9, 9)))
	if first != second {
		t.Errorf("same stream gave %+v and %+v", first, second)
	}
}

func TestSimulateBatch_EmptyBatch(t *testing.T) {
	p := DefaultParams()
	p.NumPanels = 0
	if res := SimulateBatch(p, rand.New(rand.NewPCG(1, 1))); res != (BatchResult{}) {
		t.Errorf("SimulateBatch(empty) = %+v, want zero value", res)
	}
}

func TestSimulateBatch_PartialSectionCellCount(t *testing.T) {
	// 150 cells leaves a trailing section of 6; at zero variance it must
	// still rate every panel at nominal power.
	p := DefaultParams()
	p.NumPanels = 100
	p.NumCells = 150
	res := SimulateBatch(p, rand.New(rand.NewPCG(1, 1)))
	if res.WithinToleranceA != 100 || res.WithinToleranceB != 100 {
		t.Errorf("got %+v, want both within 100", res)
	}
}

func TestRelativeDiffs(t *testing.T) {
	got := relativeDiffs([]float64{100, 200}, []float64{110, 190})
	want := []float64{10, -5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("relativeDiffs[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
