package stats

import (
	"math"
	"time"
)

// ChangePercent returns the month-over-month change of this against last as a
// rounded percentage. A zero baseline yields this*100: "no baseline" is
// treated as growth scaled by 100 rather than a division error.
func ChangePercent(this, last float64) int {
	if last == 0 {
		return int(math.Round(this * 100))
	}
	return int(math.Round(this / last * 100))
}

// CategoryRatio is one category's share of the total product count.
type CategoryRatio struct {
	Category string `json:"category"`
	Percent  int    `json:"percent"`
}

// CategoryCounter counts products per category.
type CategoryCounter interface {
	CountByCategory(category string) int
}

// CategoryShare returns each category's rounded percentage of productsCount,
// in the order the categories were given. Callers must guarantee
// productsCount > 0.
func CategoryShare(counter CategoryCounter, categories []string, productsCount int) []CategoryRatio {
	ratios := make([]CategoryRatio, 0, len(categories))
	for _, category := range categories {
		count := counter.CountByCategory(category)
		ratios = append(ratios, CategoryRatio{
			Category: category,
			Percent:  int(math.Round(float64(count) / float64(productsCount) * 100)),
		})
	}
	return ratios
}

// MonthlyBuckets distributes records into length trailing calendar-month
// buckets relative to today. Index length-1 is the reference month, index 0
// the oldest. With a nil value func each record counts as 1; otherwise its
// value is summed into the bucket. Records falling outside the window are
// silently dropped.
//
// The month difference is calendar-month-of-year only, wrapping modulo 12:
// records more than a year old alias onto the same-named month's bucket. The
// dashboard windows to at most 12 months, which keeps this invisible in
// practice, but it is a real limitation of the formula.
func MonthlyBuckets[T any](length int, today time.Time, records []T, createdAt func(T) time.Time, value func(T) float64) []float64 {
	buckets := make([]float64, length)

	for _, rec := range records {
		created := createdAt(rec)
		monthDiff := (int(today.Month()) - int(created.Month()) + 12) % 12

		if monthDiff < length {
			if value != nil {
				buckets[length-monthDiff-1] += value(rec)
			} else {
				buckets[length-monthDiff-1]++
			}
		}
	}

	return buckets
}
