package mysql

import (
	"testing"
	"time"

	"planpulse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectConverterRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	budget := 125000.0

	domain := &model.Project{
		ID:          "p-1",
		Name:        "Warehouse rollout",
		Description: "Phase one",
		Status:      model.ProjectStatusActive,
		StartDate:   &start,
		EndDate:     &end,
		Budget:      &budget,
		ManagerID:   "u-9",
	}

	back := ToProjectDomain(FromProjectDomain(domain))
	require.NotNil(t, back)
	assert.Equal(t, domain.ID, back.ID)
	assert.Equal(t, domain.Status, back.Status)
	assert.Equal(t, domain.StartDate, back.StartDate)
	assert.Equal(t, domain.Budget, back.Budget)
}

func TestProgressEntryConverterKeepsNilOptionals(t *testing.T) {
	domain := &model.ProgressEntry{
		ID:        "e-1",
		ProjectID: "p-1",
		Date:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Progress:  40,
		Status:    model.EntryStatusOnTrack,
	}

	back := ToProgressEntryDomain(FromProgressEntryDomain(domain))
	require.NotNil(t, back)
	assert.Nil(t, back.Planned)
	assert.Nil(t, back.Actual)
	assert.Equal(t, 40.0, back.Progress)
}

func TestProgressEntryConverterKeepsReportedZero(t *testing.T) {
	zero := 0.0
	domain := &model.ProgressEntry{
		ID:       "e-2",
		Date:     time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		Progress: 10,
		Planned:  &zero,
	}

	back := ToProgressEntryDomain(FromProgressEntryDomain(domain))
	require.NotNil(t, back)
	require.NotNil(t, back.Planned)
	assert.Equal(t, 0.0, *back.Planned)
}

func TestNilConverters(t *testing.T) {
	assert.Nil(t, ToProjectDomain(nil))
	assert.Nil(t, FromProjectDomain(nil))
	assert.Nil(t, ToTaskDomain(nil))
	assert.Nil(t, ToProgressEntryDomain(nil))
	assert.Nil(t, ToUserDomain(nil))
	assert.Nil(t, ToImportJobDomain(nil))
}

func TestImportJobConverterCopiesRowErrors(t *testing.T) {
	job := &ImportJob{
		JobID:      "j-1",
		ProjectID:  "p-1",
		Status:     "COMPLETED",
		TotalRows:  3,
		FailedRows: 1,
		RowErrors:  RowErrorList{{Row: 2, Reason: `invalid date "xx"`}},
	}

	domain := ToImportJobDomain(job)
	require.NotNil(t, domain)
	require.Len(t, domain.RowErrors, 1)
	assert.Equal(t, 2, domain.RowErrors[0].Row)
	assert.Equal(t, model.ImportJobStatusCompleted, domain.Status)
}
