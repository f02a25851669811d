package progress

import (
	"sort"

	"planpulse/internal/model"
)

// BuildSCurve turns a project's progress reports into the cumulative
// planned-vs-actual series. Entries are sorted ascending by report date
// (stable, so same-day entries keep their input order), then accumulated
// into two running sums. Both accumulators saturate at [0,100]: once a sum
// hits a bound it stays there rather than tracking the unbounded total.
// A nil Actual falls back to the entry's Progress value; a nil Planned
// contributes nothing.
func BuildSCurve(entries []*model.ProgressEntry) []model.SCurvePoint {
	if len(entries) == 0 {
		return []model.SCurvePoint{}
	}

	sorted := make([]*model.ProgressEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	points := make([]model.SCurvePoint, 0, len(sorted))
	var cumPlanned, cumActual float64
	for _, e := range sorted {
		var planned float64
		if e.Planned != nil {
			planned = *e.Planned
		}
		actual := e.Progress
		if e.Actual != nil {
			actual = *e.Actual
		}

		cumPlanned = clampPercent(cumPlanned + planned)
		cumActual = clampPercent(cumActual + actual)

		points = append(points, model.SCurvePoint{
			Date:        e.Date,
			Planned:     cumPlanned,
			Actual:      cumActual,
			Progress:    e.Progress,
			Status:      e.Status,
			Milestone:   e.Milestone,
			Description: e.Description,
		})
	}
	return points
}

// Variance returns actual minus planned at the last point of the series.
// Positive means ahead of plan, negative behind, 0 for an empty series.
func Variance(points []model.SCurvePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	last := points[len(points)-1]
	return last.Actual - last.Planned
}
