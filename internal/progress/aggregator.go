// Package progress computes derived project-progress figures: the weighted
// task-based completion, the latest manually-reported completion, schedule
// metrics and the cumulative planned-vs-actual series used by the dashboard.
// Everything here is a pure transform over already-fetched collections; the
// package does no I/O and keeps no state between calls.
package progress

import (
	"math"
	"time"

	"planpulse/internal/model"
)

// clampPercent clamps v to [0,100]. Out-of-range inputs saturate instead of
// being rejected.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// TaskBasedProgress returns the weighted completion across tasks, treating
// each task's weight as its percentage contribution to the whole project.
// Weights are taken as-is: if they do not sum to 100 the result is reported
// unnormalized. Returns 0 for an empty list.
func TaskBasedProgress(tasks []*model.Task) float64 {
	var total float64
	for _, t := range tasks {
		total += t.Weight * t.Completion / 100
	}
	return total
}

// WeightTotal returns the sum of task weights. Exposed so callers can
// surface projects whose weights do not add up to 100.
func WeightTotal(tasks []*model.Task) float64 {
	var total float64
	for _, t := range tasks {
		total += t.Weight
	}
	return total
}

// latestEntry returns the most recent entry by report date. Entries sharing
// a date are broken by creation time, most recently created wins; a full tie
// goes to the later input position.
func latestEntry(entries []*model.ProgressEntry) *model.ProgressEntry {
	var latest *model.ProgressEntry
	for _, e := range entries {
		if latest == nil ||
			e.Date.After(latest.Date) ||
			(e.Date.Equal(latest.Date) && !e.CreatedAt.Before(latest.CreatedAt)) {
			latest = e
		}
	}
	return latest
}

// ManualProgress returns the progress value of the most recent report,
// or 0 when no reports exist.
func ManualProgress(entries []*model.ProgressEntry) float64 {
	latest := latestEntry(entries)
	if latest == nil {
		return 0
	}
	return latest.Progress
}

// OverallProgress returns the canonical overall completion figure:
// task-based when the project has tasks, otherwise the latest manual report.
func OverallProgress(tasks []*model.Task, entries []*model.ProgressEntry) float64 {
	if len(tasks) > 0 {
		return TaskBasedProgress(tasks)
	}
	return ManualProgress(entries)
}

// DaysRemaining returns the number of whole days from now until the project
// end date, rounded up. Negative when past due, nil when no end date is set.
func DaysRemaining(endDate *time.Time, now time.Time) *int {
	if endDate == nil {
		return nil
	}
	days := int(math.Ceil(endDate.Sub(now).Hours() / 24))
	return &days
}

// IsOnTrack reports whether overall completion meets the elapsed fraction of
// the schedule. With either boundary date missing there is nothing to
// measure against, so the project is assumed on track.
func IsOnTrack(overall float64, startDate, endDate *time.Time, now time.Time) bool {
	if startDate == nil || endDate == nil {
		return true
	}
	span := endDate.Sub(*startDate)
	var elapsed float64
	if span <= 0 {
		if !now.Before(*startDate) {
			elapsed = 1
		}
	} else {
		elapsed = now.Sub(*startDate).Seconds() / span.Seconds()
		if elapsed < 0 {
			elapsed = 0
		} else if elapsed > 1 {
			elapsed = 1
		}
	}
	return overall >= elapsed*100
}

// Metrics assembles the dashboard summary for one project.
func Metrics(project *model.Project, tasks []*model.Task, entries []*model.ProgressEntry, now time.Time) *model.ProjectMetrics {
	m := &model.ProjectMetrics{
		ProjectID:  project.ID,
		TotalTasks: len(tasks),
	}
	for _, t := range tasks {
		switch t.Status {
		case model.TaskStatusCompleted:
			m.CompletedTasks++
		case model.TaskStatusInProgress:
			m.InProgressTasks++
		case model.TaskStatusNotStarted:
			m.NotStartedTasks++
		}
	}

	m.TaskBasedProgress = TaskBasedProgress(tasks)
	m.ManualProgress = ManualProgress(entries)
	m.OverallProgress = OverallProgress(tasks, entries)
	m.WeightTotal = WeightTotal(tasks)
	m.DaysRemaining = DaysRemaining(project.EndDate, now)
	m.IsOnTrack = IsOnTrack(m.OverallProgress, project.StartDate, project.EndDate, now)
	m.Variance = Variance(BuildSCurve(entries))

	return m
}
