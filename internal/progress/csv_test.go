package progress

import (
	"strings"
	"testing"

	"planpulse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_FullyPopulatedRows(t *testing.T) {
	input := strings.Join([]string{
		"date,progress,planned,actual,status,milestone,description",
		"2024-01-10,20,25,18,ON_TRACK,kickoff,project kicked off",
		"2024-02-10,45,30,27,BEHIND_SCHEDULE,,slipped on integration",
	}, "\n")

	entries, rowErrs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, date("2024-01-10"), first.Date)
	assert.Equal(t, 20.0, first.Progress)
	require.NotNil(t, first.Planned)
	assert.Equal(t, 25.0, *first.Planned)
	require.NotNil(t, first.Actual)
	assert.Equal(t, 18.0, *first.Actual)
	assert.Equal(t, model.EntryStatusOnTrack, first.Status)
	assert.Equal(t, "kickoff", first.Milestone)
	assert.Equal(t, "project kicked off", first.Description)

	assert.Equal(t, model.EntryStatusBehind, entries[1].Status)
	assert.Empty(t, entries[1].Milestone)
}

func TestParseCSV_MissingOptionalsStayAbsent(t *testing.T) {
	input := strings.Join([]string{
		"date,progress,planned,actual,status,milestone,description",
		"2024-01-10,40,,,,,",
		"2024-01-11,30,not-a-number,,,,",
	}, "\n")

	entries, rowErrs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, entries, 2)

	assert.Nil(t, entries[0].Planned)
	assert.Nil(t, entries[0].Actual)
	// non-numeric is treated the same as not reported
	assert.Nil(t, entries[1].Planned)
}

func TestParseCSV_MalformedRowIsolation(t *testing.T) {
	input := strings.Join([]string{
		"date,progress,planned,actual,status,milestone,description",
		"2024-01-01,10,,,,,",
		"not-a-date,20,,,,,",
		"2024-01-03,30,,,,,",
	}, "\n")

	entries, rowErrs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, date("2024-01-01"), entries[0].Date)
	assert.Equal(t, date("2024-01-03"), entries[1].Date)

	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Reason, "not-a-date")
}

func TestParseCSV_OutOfRangeValuesClamp(t *testing.T) {
	input := strings.Join([]string{
		"date,progress,planned,actual,status,milestone,description",
		"2024-01-01,150,-10,120,,,",
	}, "\n")

	entries, rowErrs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, entries, 1)

	assert.Equal(t, 100.0, entries[0].Progress)
	require.NotNil(t, entries[0].Planned)
	assert.Equal(t, 0.0, *entries[0].Planned)
	require.NotNil(t, entries[0].Actual)
	assert.Equal(t, 100.0, *entries[0].Actual)
}

func TestParseCSV_UnknownStatusDefaultsOnTrack(t *testing.T) {
	input := strings.Join([]string{
		"date,progress,planned,actual,status,milestone,description",
		"2024-01-01,10,,,SOMETHING_ELSE,,",
	}, "\n")

	entries, _, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EntryStatusOnTrack, entries[0].Status)
}

func TestParseCSV_EmptyProgressReadsAsZero(t *testing.T) {
	input := strings.Join([]string{
		"date,progress,planned,actual,status,milestone,description",
		"2024-01-10,,,,,,",
	}, "\n")

	entries, rowErrs, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, entries, 1)

	// progress is mandatory on an entry, so an empty column is a report of 0
	// and comes back out as "0", unlike the optional planned/actual columns
	assert.Equal(t, 0.0, entries[0].Progress)

	out, err := ExportCSV(entries)
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-10,0,,,ON_TRACK,,")
}

func TestParseCSV_BadHeader(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	entries, rowErrs, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, rowErrs)
}

func TestExportCSV_RoundTrip(t *testing.T) {
	original := []*model.ProgressEntry{
		{
			Date:        date("2024-01-10"),
			Progress:    20.5,
			Planned:     f(25),
			Actual:      f(18.25),
			Status:      model.EntryStatusOnTrack,
			Milestone:   "kickoff",
			Description: "has, a comma and \"quotes\"",
		},
		{
			Date:     date("2024-02-10"),
			Progress: 45,
			Status:   model.EntryStatusBehind,
		},
	}

	out, err := ExportCSV(original)
	require.NoError(t, err)

	parsed, rowErrs, err := ParseCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, parsed, 2)

	assert.Equal(t, original[0].Date, parsed[0].Date)
	assert.Equal(t, original[0].Progress, parsed[0].Progress)
	require.NotNil(t, parsed[0].Planned)
	assert.Equal(t, *original[0].Planned, *parsed[0].Planned)
	require.NotNil(t, parsed[0].Actual)
	assert.Equal(t, *original[0].Actual, *parsed[0].Actual)
	assert.Equal(t, original[0].Description, parsed[0].Description)

	// absent optionals come back absent, not zero
	assert.Nil(t, parsed[1].Planned)
	assert.Nil(t, parsed[1].Actual)
}

func TestExportCSV_AbsentOptionalsAreEmptyStrings(t *testing.T) {
	out, err := ExportCSV([]*model.ProgressEntry{
		{Date: date("2024-01-01"), Progress: 10, Status: model.EntryStatusOnTrack},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-01-01,10,,,ON_TRACK,,", lines[1])
}

func TestTemplateCSV(t *testing.T) {
	assert.Equal(t, "date,progress,planned,actual,status,milestone,description\n", TemplateCSV())
}
