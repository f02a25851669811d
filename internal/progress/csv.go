package progress

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"planpulse/internal/model"
)

// CSVHeader column layout shared by export, import and the template.
var CSVHeader = []string{"date", "progress", "planned", "actual", "status", "milestone", "description"}

const csvDateLayout = "2006-01-02"

// ParseCSV reads a progress CSV (header plus data rows) and returns the
// successfully parsed entry drafts together with per-row errors. A bad row
// is recorded and skipped; it never aborts the rest of the batch. Drafts
// carry no project or reporter, the caller fills those from context.
// Row numbers in errors are 1-based and count data rows only.
func ParseCSV(r io.Reader) ([]*model.ProgressEntry, []model.RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []*model.ProgressEntry{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, nil, fmt.Errorf("unexpected csv header, want %q first", "date")
	}

	var (
		entries []*model.ProgressEntry
		errs    []model.RowError
		row     int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			errs = append(errs, model.RowError{Row: row, Reason: err.Error()})
			continue
		}
		entry, rowErr := parseRow(record)
		if rowErr != nil {
			rowErr.Row = row
			errs = append(errs, *rowErr)
			continue
		}
		entries = append(entries, entry)
	}
	if entries == nil {
		entries = []*model.ProgressEntry{}
	}
	return entries, errs, nil
}

// parseRow converts one data row into an entry draft. Only an unparsable
// date fails the row; numeric columns that are empty or non-numeric are
// treated as not reported, and out-of-range values saturate at the bounds.
func parseRow(record []string) (*model.ProgressEntry, *model.RowError) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	date, err := time.Parse(csvDateLayout, field(0))
	if err != nil {
		return nil, &model.RowError{Reason: fmt.Sprintf("invalid date %q", field(0))}
	}

	entry := &model.ProgressEntry{
		Date:        date,
		Status:      model.EntryStatusOnTrack,
		Milestone:   field(5),
		Description: field(6),
	}

	if v, ok := parseNumber(field(1)); ok {
		entry.Progress = clampPercent(v)
	}
	if v, ok := parseNumber(field(2)); ok {
		p := clampPercent(v)
		entry.Planned = &p
	}
	if v, ok := parseNumber(field(3)); ok {
		a := clampPercent(v)
		entry.Actual = &a
	}
	if s := strings.ToUpper(field(4)); model.ValidEntryStatus(s) {
		entry.Status = model.EntryStatus(s)
	}

	return entry, nil
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExportCSV renders entries as CSV text in the shared column layout.
// Optional numeric fields that were never reported come out as empty
// strings, never as "0".
func ExportCSV(entries []*model.ProgressEntry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.Date.Format(csvDateLayout),
			formatNumber(e.Progress),
			formatOptional(e.Planned),
			formatOptional(e.Actual),
			string(e.Status),
			e.Milestone,
			e.Description,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return sb.String(), nil
}

// TemplateCSV returns a header-only file for manual imports.
func TemplateCSV() string {
	return strings.Join(CSVHeader, ",") + "\n"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}
