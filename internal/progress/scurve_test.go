package progress

import (
	"testing"

	"planpulse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSCurve_Empty(t *testing.T) {
	points := BuildSCurve(nil)
	assert.Empty(t, points)
	assert.NotNil(t, points)
}

func TestBuildSCurve_SortsByDate(t *testing.T) {
	entries := []*model.ProgressEntry{
		{Date: date("2024-01-20"), Progress: 40, Planned: f(30)},
		{Date: date("2024-01-05"), Progress: 10, Planned: f(20)},
		{Date: date("2024-01-12"), Progress: 25, Planned: f(25)},
	}

	points := BuildSCurve(entries)
	require.Len(t, points, 3)
	assert.Equal(t, date("2024-01-05"), points[0].Date)
	assert.Equal(t, date("2024-01-12"), points[1].Date)
	assert.Equal(t, date("2024-01-20"), points[2].Date)

	// input order untouched
	assert.Equal(t, date("2024-01-20"), entries[0].Date)
}

func TestBuildSCurve_SaturatesAtHundred(t *testing.T) {
	entries := []*model.ProgressEntry{
		{Date: date("2024-01-01"), Planned: f(60)},
		{Date: date("2024-01-02"), Planned: f(60)},
		{Date: date("2024-01-03"), Planned: f(60)},
	}

	points := BuildSCurve(entries)
	require.Len(t, points, 3)
	assert.Equal(t, 60.0, points[0].Planned)
	assert.Equal(t, 100.0, points[1].Planned)
	assert.Equal(t, 100.0, points[2].Planned)
}

func TestBuildSCurve_ActualFallsBackToProgress(t *testing.T) {
	explicit := BuildSCurve([]*model.ProgressEntry{
		{Date: date("2024-01-01"), Progress: 40, Actual: f(40)},
	})
	fallback := BuildSCurve([]*model.ProgressEntry{
		{Date: date("2024-01-01"), Progress: 40},
	})

	require.Len(t, explicit, 1)
	require.Len(t, fallback, 1)
	assert.Equal(t, explicit[0].Actual, fallback[0].Actual)
	assert.Equal(t, 40.0, fallback[0].Actual)
}

func TestBuildSCurve_NilPlannedContributesNothing(t *testing.T) {
	points := BuildSCurve([]*model.ProgressEntry{
		{Date: date("2024-01-01"), Progress: 10, Planned: f(30)},
		{Date: date("2024-01-02"), Progress: 20},
		{Date: date("2024-01-03"), Progress: 30, Planned: f(15)},
	})

	require.Len(t, points, 3)
	assert.Equal(t, 30.0, points[0].Planned)
	assert.Equal(t, 30.0, points[1].Planned)
	assert.Equal(t, 45.0, points[2].Planned)
}

func TestBuildSCurve_SameDayKeepsInputOrder(t *testing.T) {
	entries := []*model.ProgressEntry{
		{Date: date("2024-01-01"), Progress: 10, Milestone: "first"},
		{Date: date("2024-01-01"), Progress: 20, Milestone: "second"},
	}

	points := BuildSCurve(entries)
	require.Len(t, points, 2)
	assert.Equal(t, "first", points[0].Milestone)
	assert.Equal(t, "second", points[1].Milestone)
	assert.Equal(t, 10.0, points[0].Actual)
	assert.Equal(t, 30.0, points[1].Actual)
}

func TestBuildSCurve_Passthrough(t *testing.T) {
	points := BuildSCurve([]*model.ProgressEntry{
		{
			Date:        date("2024-04-01"),
			Progress:    50,
			Status:      model.EntryStatusAhead,
			Milestone:   "beta",
			Description: "beta shipped early",
		},
	})

	require.Len(t, points, 1)
	assert.Equal(t, 50.0, points[0].Progress)
	assert.Equal(t, model.EntryStatusAhead, points[0].Status)
	assert.Equal(t, "beta", points[0].Milestone)
	assert.Equal(t, "beta shipped early", points[0].Description)
}

func TestVariance(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		assert.Zero(t, Variance(nil))
	})

	t.Run("last point decides", func(t *testing.T) {
		points := BuildSCurve([]*model.ProgressEntry{
			{Date: date("2024-01-01"), Progress: 10, Planned: f(20)},
			{Date: date("2024-01-02"), Progress: 30, Planned: f(25)},
		})
		// cumulative actual 40, cumulative planned 45
		assert.InDelta(t, -5, Variance(points), 1e-9)
	})
}
