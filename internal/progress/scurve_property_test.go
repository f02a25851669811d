// Property-based tests for the cumulative series builder. These verify the
// saturating-accumulator bounds and ordering guarantees across arbitrary
// inputs rather than hand-picked cases.
package progress

import (
	"testing"
	"time"

	"planpulse/internal/model"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genEntries() gopter.Gen {
	genEntry := gopter.CombineGens(
		gen.IntRange(0, 3650),        // day offset
		gen.Float64Range(-50, 150),   // progress, deliberately out of range
		gen.Float64Range(-50, 150),   // planned
		gen.Float64Range(-50, 150),   // actual
		gen.Bool(),                   // planned present
		gen.Bool(),                   // actual present
	).Map(func(vals []interface{}) *model.ProgressEntry {
		base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		e := &model.ProgressEntry{
			Date:     base.AddDate(0, 0, vals[0].(int)),
			Progress: vals[1].(float64),
			Status:   model.EntryStatusOnTrack,
		}
		if vals[4].(bool) {
			p := vals[2].(float64)
			e.Planned = &p
		}
		if vals[5].(bool) {
			a := vals[3].(float64)
			e.Actual = &a
		}
		return e
	})
	return gen.SliceOf(genEntry)
}

func TestProperty_SCurveValuesStayInBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("cumulative values never leave [0,100]", prop.ForAll(
		func(entries []*model.ProgressEntry) bool {
			for _, p := range BuildSCurve(entries) {
				if p.Planned < 0 || p.Planned > 100 || p.Actual < 0 || p.Actual > 100 {
					return false
				}
			}
			return true
		},
		genEntries(),
	))

	properties.Property("output is date-ascending and one point per entry", prop.ForAll(
		func(entries []*model.ProgressEntry) bool {
			points := BuildSCurve(entries)
			if len(points) != len(entries) {
				return false
			}
			for i := 1; i < len(points); i++ {
				if points[i].Date.Before(points[i-1].Date) {
					return false
				}
			}
			return true
		},
		genEntries(),
	))

	properties.Property("rebuilding from the same input is deterministic", prop.ForAll(
		func(entries []*model.ProgressEntry) bool {
			first := BuildSCurve(entries)
			second := BuildSCurve(entries)
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		genEntries(),
	))

	properties.TestingRun(t)
}

func TestProperty_NonNegativeInputsAccumulateMonotonically(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genNonNegative := gen.SliceOf(gopter.CombineGens(
		gen.IntRange(0, 365),
		gen.Float64Range(0, 100),
	).Map(func(vals []interface{}) *model.ProgressEntry {
		base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		p := vals[1].(float64)
		return &model.ProgressEntry{
			Date:    base.AddDate(0, 0, vals[0].(int)),
			Planned: &p,
		}
	}))

	properties.Property("planned series never decreases for non-negative inputs", prop.ForAll(
		func(entries []*model.ProgressEntry) bool {
			points := BuildSCurve(entries)
			for i := 1; i < len(points); i++ {
				if points[i].Planned < points[i-1].Planned {
					return false
				}
			}
			return true
		},
		genNonNegative,
	))

	properties.TestingRun(t)
}
