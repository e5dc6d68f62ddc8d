package metrics

import (
	"time"

	"github.com/fernwood/tally/internal/model"
)

// TrendWindow is the fixed number of trailing months the income trend
// chart displays.
const TrendWindow = 6

// BackfillTrend returns exactly TrendWindow points covering the calendar
// months ending at ref's month, oldest first. Months present in the input
// keep their totals (duplicates are summed); missing months become zero
// placeholders. The window is anchored by calendar subtraction from the
// first of ref's month, so short months cannot shift it.
func BackfillTrend(points []model.TrendPoint, ref time.Time) []model.TrendPoint {
	type key struct {
		year  int
		month int
	}

	totals := make(map[key]model.TrendPoint, len(points))
	for _, p := range points {
		k := key{p.Year, p.Month}
		merged := totals[k]
		merged.Year = p.Year
		merged.Month = p.Month
		merged.Total += p.Total
		merged.Count += p.Count
		totals[k] = merged
	}

	anchor := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]model.TrendPoint, 0, TrendWindow)
	for i := TrendWindow - 1; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)
		k := key{m.Year(), int(m.Month())}
		if p, ok := totals[k]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, model.TrendPoint{Year: k.year, Month: k.month})
	}

	return out
}
