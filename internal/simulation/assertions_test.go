package simulation

import (
	"math"
	"testing"
)

// AssertPercentagesInRange asserts that every record's within-tolerance
// percentages lie in [0, 100].
func AssertPercentagesInRange(t *testing.T, records []RunRecord) {
	t.Helper()
	for _, rec := range records {
		if rec.WithinToleranceA < 0 || rec.WithinToleranceA > 100 {
			t.Errorf("AssertPercentagesInRange: run %d: within A %.6f not in [0, 100]", rec.RunIndex, rec.WithinToleranceA)
		}
		if rec.WithinToleranceB < 0 || rec.WithinToleranceB > 100 {
			t.Errorf("AssertPercentagesInRange: run %d: within B %.6f not in [0, 100]", rec.RunIndex, rec.WithinToleranceB)
		}
	}
}

// AssertRunOrder asserts that records holds exactly n runs indexed 0..n-1 in
// order.
func AssertRunOrder(t *testing.T, records []RunRecord, n int) {
	t.Helper()
	if len(records) != n {
		t.Fatalf("AssertRunOrder: got %d records, want %d", len(records), n)
	}
	for i, rec := range records {
		if rec.RunIndex != i {
			t.Errorf("AssertRunOrder: records[%d].RunIndex = %d", i, rec.RunIndex)
		}
	}
}

// AssertSummaryMatches asserts that summary's means equal the arithmetic
// means of the record fields within eps.
func AssertSummaryMatches(t *testing.T, summary RunSummary, records []RunRecord, eps float64) {
	t.Helper()
	if len(records) == 0 {
		t.Fatal("AssertSummaryMatches: no records")
	}
	var a, b, d float64
	for _, rec := range records {
		a += rec.WithinToleranceA
		b += rec.WithinToleranceB
		d += rec.AvgRelativeDiffPercent
	}
	n := float64(len(records))
	checks := []struct {
		name      string
		got, want float64
	}{
		{"MeanWithinToleranceA", summary.MeanWithinToleranceA, a / n},
		{"MeanWithinToleranceB", summary.MeanWithinToleranceB, b / n},
		{"MeanRelativeDiffPercent", summary.MeanRelativeDiffPercent, d / n},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > eps {
			t.Errorf("AssertSummaryMatches: %s = %.12f, want %.12f", c.name, c.got, c.want)
		}
	}
	if summary.Runs != len(records) {
		t.Errorf("AssertSummaryMatches: Runs = %d, want %d", summary.Runs, len(records))
	}
}

// AssertVaries asserts that the given field differs between at least two
// records.
func AssertVaries(t *testing.T, records []RunRecord, field func(RunRecord) float64) {
	t.Helper()
	if len(records) < 2 {
		t.Fatal("AssertVaries: need at least two records")
	}
	first := field(records[0])
	for _, rec := range records[1:] {
		if field(rec) != first {
			return
		}
	}
	t.Errorf("AssertVaries: all %d records share value %.6f", len(records), first)
}
