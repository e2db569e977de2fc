package stats

import (
	"testing"
	"time"
)

func TestChangePercent(t *testing.T) {
	tests := []struct {
		name string
		this float64
		last float64
		want int
	}{
		{"both zero", 0, 0, 0},
		{"no baseline", 50, 0, 5000},
		{"growth", 150, 100, 150},
		{"decline", 50, 100, 50},
		{"flat", 100, 100, 100},
		{"rounded up", 2, 3, 67},
		{"rounded down", 1, 3, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChangePercent(tt.this, tt.last); got != tt.want {
				t.Errorf("ChangePercent(%v, %v) = %d, want %d", tt.this, tt.last, got, tt.want)
			}
		})
	}
}

type countMap map[string]int

func (m countMap) CountByCategory(category string) int { return m[category] }

func TestCategoryShare(t *testing.T) {
	counter := countMap{"a": 3, "b": 1}

	ratios := CategoryShare(counter, []string{"a", "b"}, 4)

	if len(ratios) != 2 {
		t.Fatalf("expected 2 ratios, got %d", len(ratios))
	}
	if ratios[0].Category != "a" || ratios[0].Percent != 75 {
		t.Errorf("expected a=75, got %s=%d", ratios[0].Category, ratios[0].Percent)
	}
	if ratios[1].Category != "b" || ratios[1].Percent != 25 {
		t.Errorf("expected b=25, got %s=%d", ratios[1].Category, ratios[1].Percent)
	}
}

func TestCategoryShare_PreservesInputOrder(t *testing.T) {
	counter := countMap{"x": 1, "y": 1, "z": 2}

	ratios := CategoryShare(counter, []string{"z", "x", "y"}, 4)

	want := []string{"z", "x", "y"}
	for i, ratio := range ratios {
		if ratio.Category != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], ratio.Category)
		}
	}
}

type stamped struct {
	at  time.Time
	val float64
}

func stampedAt(s stamped) time.Time { return s.at }
func stampedVal(s stamped) float64  { return s.val }

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyBuckets_CountMode(t *testing.T) {
	today := date(2024, time.June)
	records := []stamped{
		{at: date(2024, time.April)},
		{at: date(2024, time.April)},
		{at: date(2024, time.June)},
	}

	buckets := MonthlyBuckets(6, today, records, stampedAt, nil)

	want := []float64{0, 0, 0, 2, 0, 1}
	if len(buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(buckets))
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Errorf("bucket %d: expected %v, got %v (full: %v)", i, want[i], buckets[i], buckets)
		}
	}
}

func TestMonthlyBuckets_SumMode(t *testing.T) {
	today := date(2024, time.June)
	records := []stamped{
		{at: date(2024, time.May), val: 100},
		{at: date(2024, time.May), val: 50},
		{at: date(2024, time.June), val: 25},
	}

	buckets := MonthlyBuckets(6, today, records, stampedAt, stampedVal)

	if buckets[4] != 150 {
		t.Errorf("expected May bucket to sum to 150, got %v", buckets[4])
	}
	if buckets[5] != 25 {
		t.Errorf("expected June bucket to be 25, got %v", buckets[5])
	}
}

func TestMonthlyBuckets_DropsRecordsOutsideWindow(t *testing.T) {
	today := date(2024, time.June)
	records := []stamped{
		{at: date(2024, time.June)},
		{at: date(2023, time.November)}, // 7 months back, outside a 6-month window
	}

	buckets := MonthlyBuckets(6, today, records, stampedAt, nil)

	var total float64
	for _, b := range buckets {
		total += b
	}
	if total != 1 {
		t.Errorf("expected only the in-window record to be counted, sum = %v", total)
	}
}

func TestMonthlyBuckets_YearIgnorantAliasing(t *testing.T) {
	// The month difference wraps modulo 12: a record from June of the
	// previous year lands in the current June bucket. This documents the
	// formula's known limitation.
	today := date(2024, time.June)
	records := []stamped{
		{at: date(2023, time.June)},
	}

	buckets := MonthlyBuckets(6, today, records, stampedAt, nil)

	if buckets[5] != 1 {
		t.Errorf("expected year-old June record to alias into the current June bucket, got %v", buckets)
	}
}

func TestMonthlyBuckets_EmptyInput(t *testing.T) {
	buckets := MonthlyBuckets(12, date(2024, time.June), []stamped{}, stampedAt, nil)

	if len(buckets) != 12 {
		t.Fatalf("expected 12 zero buckets, got %d", len(buckets))
	}
	for i, b := range buckets {
		if b != 0 {
			t.Errorf("bucket %d: expected 0, got %v", i, b)
		}
	}
}

func TestMonthlyBuckets_YearWrap(t *testing.T) {
	// Reference month January, record from December: diff is 1, not -11.
	today := date(2024, time.January)
	records := []stamped{
		{at: date(2023, time.December)},
	}

	buckets := MonthlyBuckets(6, today, records, stampedAt, nil)

	if buckets[4] != 1 {
		t.Errorf("expected December record in bucket 4, got %v", buckets)
	}
}
