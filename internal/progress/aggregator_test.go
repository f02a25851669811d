package progress

import (
	"testing"
	"time"

	"planpulse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func f(v float64) *float64 { return &v }

func TestTaskBasedProgress(t *testing.T) {
	testCases := []struct {
		name     string
		tasks    []*model.Task
		expected float64
	}{
		{
			name:     "empty task list",
			tasks:    nil,
			expected: 0,
		},
		{
			name: "two equal halves, one done",
			tasks: []*model.Task{
				{Weight: 50, Completion: 100},
				{Weight: 50, Completion: 0},
			},
			expected: 50,
		},
		{
			name: "all complete",
			tasks: []*model.Task{
				{Weight: 30, Completion: 100},
				{Weight: 70, Completion: 100},
			},
			expected: 100,
		},
		{
			name: "weights exceeding 100 are not normalized",
			tasks: []*model.Task{
				{Weight: 80, Completion: 100},
				{Weight: 80, Completion: 100},
			},
			expected: 160,
		},
		{
			name: "weights under 100 are not scaled up",
			tasks: []*model.Task{
				{Weight: 20, Completion: 50},
			},
			expected: 10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, TaskBasedProgress(tc.tasks), 1e-9)
		})
	}
}

func TestManualProgress(t *testing.T) {
	t.Run("empty entry list", func(t *testing.T) {
		assert.Zero(t, ManualProgress(nil))
	})

	t.Run("latest entry wins regardless of input order", func(t *testing.T) {
		early := &model.ProgressEntry{Date: date("2024-01-01"), Progress: 20}
		late := &model.ProgressEntry{Date: date("2024-01-15"), Progress: 70}

		assert.Equal(t, 70.0, ManualProgress([]*model.ProgressEntry{early, late}))
		assert.Equal(t, 70.0, ManualProgress([]*model.ProgressEntry{late, early}))
	})

	t.Run("same date ties broken by creation time", func(t *testing.T) {
		morning := &model.ProgressEntry{
			Date:      date("2024-02-01"),
			Progress:  30,
			CreatedAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		}
		evening := &model.ProgressEntry{
			Date:      date("2024-02-01"),
			Progress:  45,
			CreatedAt: time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC),
		}

		assert.Equal(t, 45.0, ManualProgress([]*model.ProgressEntry{evening, morning}))
	})
}

func TestOverallProgress(t *testing.T) {
	entries := []*model.ProgressEntry{{Date: date("2024-03-01"), Progress: 65}}

	t.Run("prefers task-based when tasks exist", func(t *testing.T) {
		tasks := []*model.Task{{Weight: 100, Completion: 40}}
		assert.Equal(t, 40.0, OverallProgress(tasks, entries))
	})

	t.Run("falls back to manual without tasks", func(t *testing.T) {
		assert.Equal(t, 65.0, OverallProgress(nil, entries))
	})

	t.Run("no tasks and no entries", func(t *testing.T) {
		assert.Zero(t, OverallProgress(nil, nil))
	})
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil without end date", func(t *testing.T) {
		assert.Nil(t, DaysRemaining(nil, now))
	})

	t.Run("rounds partial days up", func(t *testing.T) {
		end := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
		got := DaysRemaining(&end, now)
		require.NotNil(t, got)
		assert.Equal(t, 10, *got)
	})

	t.Run("negative when past due", func(t *testing.T) {
		end := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
		got := DaysRemaining(&end, now)
		require.NotNil(t, got)
		assert.Negative(t, *got)
	})
}

func TestIsOnTrack(t *testing.T) {
	start := datePtr("2024-01-01")
	end := datePtr("2024-01-11")
	halfway := date("2024-01-06") // 5 of 10 days elapsed

	testCases := []struct {
		name     string
		overall  float64
		start    *time.Time
		end      *time.Time
		now      time.Time
		expected bool
	}{
		{"exactly at the elapsed fraction", 50, start, end, halfway, true},
		{"just below the elapsed fraction", 49, start, end, halfway, false},
		{"above the elapsed fraction", 80, start, end, halfway, true},
		{"missing start date assumes on track", 0, nil, end, halfway, true},
		{"missing end date assumes on track", 0, start, nil, halfway, true},
		{"before start nothing is expected", 0, start, end, date("2023-12-25"), true},
		{"after end the full amount is expected", 99, start, end, date("2024-02-01"), false},
		{"complete after end", 100, start, end, date("2024-02-01"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsOnTrack(tc.overall, tc.start, tc.end, tc.now))
		})
	}
}

func TestMetrics(t *testing.T) {
	now := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	project := &model.Project{
		ID:        "p1",
		StartDate: datePtr("2024-01-01"),
		EndDate:   datePtr("2024-01-11"),
	}
	tasks := []*model.Task{
		{Weight: 50, Completion: 100, Status: model.TaskStatusCompleted},
		{Weight: 30, Completion: 0, Status: model.TaskStatusNotStarted},
		{Weight: 20, Completion: 50, Status: model.TaskStatusInProgress},
	}
	entries := []*model.ProgressEntry{
		{Date: date("2024-01-03"), Progress: 30, Planned: f(40), Actual: f(30)},
		{Date: date("2024-01-05"), Progress: 55, Planned: f(20), Actual: f(25)},
	}

	m := Metrics(project, tasks, entries, now)

	assert.Equal(t, "p1", m.ProjectID)
	assert.Equal(t, 3, m.TotalTasks)
	assert.Equal(t, 1, m.CompletedTasks)
	assert.Equal(t, 1, m.InProgressTasks)
	assert.Equal(t, 1, m.NotStartedTasks)
	assert.InDelta(t, 60, m.TaskBasedProgress, 1e-9)
	assert.Equal(t, 55.0, m.ManualProgress)
	assert.InDelta(t, 60, m.OverallProgress, 1e-9) // task-based wins when tasks exist
	assert.Equal(t, 100.0, m.WeightTotal)
	require.NotNil(t, m.DaysRemaining)
	assert.Equal(t, 5, *m.DaysRemaining)
	assert.True(t, m.IsOnTrack) // 60 >= 50% elapsed
	assert.InDelta(t, -5, m.Variance, 1e-9)
}

func TestMetrics_NoTasksUsesManual(t *testing.T) {
	project := &model.Project{ID: "p2"}
	entries := []*model.ProgressEntry{{Date: date("2024-01-02"), Progress: 35}}

	m := Metrics(project, nil, entries, time.Now())

	assert.Zero(t, m.TaskBasedProgress)
	assert.Equal(t, 35.0, m.ManualProgress)
	assert.Equal(t, 35.0, m.OverallProgress)
	assert.Nil(t, m.DaysRemaining)
	assert.True(t, m.IsOnTrack)
}
