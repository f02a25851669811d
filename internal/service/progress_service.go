package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planpulse/internal/model"
	"planpulse/internal/progress"
	"planpulse/pkg/store/mysql"
	"planpulse/pkg/store/redis"

	"github.com/google/uuid"
)

// ImportEnqueuer submits a CSV import for asynchronous processing
type ImportEnqueuer interface {
	EnqueueImport(ctx context.Context, payload *model.ImportJobPayload) error
}

// ProgressService handles manual progress reports and the derived S-Curve
type ProgressService struct {
	progressRepo  *mysql.ProgressRepository
	projectRepo   *mysql.ProjectRepository
	importJobRepo *mysql.ImportJobRepository
	metricsCache  *redis.MetricsCache
	enqueuer      ImportEnqueuer
	hub           *LiveHub
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo *mysql.ProgressRepository,
	projectRepo *mysql.ProjectRepository,
	importJobRepo *mysql.ImportJobRepository,
	metricsCache *redis.MetricsCache,
	enqueuer ImportEnqueuer,
	hub *LiveHub,
) *ProgressService {
	return &ProgressService{
		progressRepo:  progressRepo,
		projectRepo:   projectRepo,
		importJobRepo: importJobRepo,
		metricsCache:  metricsCache,
		enqueuer:      enqueuer,
		hub:           hub,
	}
}

// CreateEntry records a manual progress report for a project
func (s *ProgressService) CreateEntry(ctx context.Context, projectID, reportedBy string, req *model.CreateProgressRequest) (*model.ProgressEntry, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	status := model.EntryStatusOnTrack
	if req.Status != "" {
		s := strings.ToUpper(req.Status)
		if !model.ValidEntryStatus(s) {
			return nil, fmt.Errorf("%w: unknown status %s", ErrInvalidInput, req.Status)
		}
		status = model.EntryStatus(s)
	}

	entry := &mysql.ProgressEntry{
		EntryID:     uuid.NewString(),
		ProjectID:   projectID,
		EntryDate:   date,
		Progress:    clampPercent(req.Progress),
		Planned:     clampOptional(req.Planned),
		Actual:      clampOptional(req.Actual),
		Status:      string(status),
		Milestone:   req.Milestone,
		Description: req.Description,
		ReportedBy:  reportedBy,
	}
	if err := s.progressRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create progress entry: %w", err)
	}
	s.invalidateMetrics(ctx, projectID)

	domain := mysql.ToProgressEntryDomain(entry)
	s.broadcast(projectID, "progress_reported", domain)
	return domain, nil
}

// GetEntry retrieves a progress entry by ID
func (s *ProgressService) GetEntry(ctx context.Context, entryID string) (*model.ProgressEntry, error) {
	entry, err := s.progressRepo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: progress entry %s", ErrNotFound, entryID)
	}
	return mysql.ToProgressEntryDomain(entry), nil
}

// ListEntries lists a project's progress entries, optionally bounded by an
// inclusive date range, ordered by date ascending.
func (s *ProgressService) ListEntries(ctx context.Context, projectID string, query *model.ProgressListQuery) ([]*model.ProgressEntry, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	from, to, err := parseRange(query)
	if err != nil {
		return nil, err
	}

	entries, err := s.progressRepo.ListByProject(ctx, projectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress entries: %w", err)
	}

	result := make([]*model.ProgressEntry, len(entries))
	for i, e := range entries {
		result[i] = mysql.ToProgressEntryDomain(e)
	}
	return result, nil
}

// UpdateEntry updates the provided fields of a progress entry
func (s *ProgressService) UpdateEntry(ctx context.Context, entryID string, req *model.UpdateProgressRequest) (*model.ProgressEntry, error) {
	existing, err := s.progressRepo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: progress entry %s", ErrNotFound, entryID)
	}

	updates := map[string]interface{}{}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
		}
		updates["entry_date"] = d
	}
	if req.Progress != nil {
		updates["progress"] = clampPercent(*req.Progress)
	}
	if req.Planned != nil {
		updates["planned"] = clampPercent(*req.Planned)
	}
	if req.Actual != nil {
		updates["actual"] = clampPercent(*req.Actual)
	}
	if req.Status != nil {
		st := strings.ToUpper(*req.Status)
		if !model.ValidEntryStatus(st) {
			return nil, fmt.Errorf("%w: unknown status %s", ErrInvalidInput, *req.Status)
		}
		updates["status"] = st
	}
	if req.Milestone != nil {
		updates["milestone"] = *req.Milestone
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.progressRepo.UpdateFields(ctx, entryID, updates); err != nil {
			return nil, fmt.Errorf("failed to update progress entry: %w", err)
		}
		s.invalidateMetrics(ctx, existing.ProjectID)
	}

	updated, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	s.broadcast(existing.ProjectID, "progress_updated", updated)
	return updated, nil
}

// DeleteEntry removes a progress entry
func (s *ProgressService) DeleteEntry(ctx context.Context, entryID string) error {
	existing, err := s.progressRepo.Get(ctx, entryID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: progress entry %s", ErrNotFound, entryID)
	}

	if err := s.progressRepo.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete progress entry: %w", err)
	}
	s.invalidateMetrics(ctx, existing.ProjectID)
	return nil
}

// SCurve builds the cumulative planned-vs-actual series for a project
func (s *ProgressService) SCurve(ctx context.Context, projectID string, query *model.ProgressListQuery) ([]model.SCurvePoint, error) {
	entries, err := s.ListEntries(ctx, projectID, query)
	if err != nil {
		return nil, err
	}
	return progress.BuildSCurve(entries), nil
}

// ExportCSV renders a project's progress entries as CSV
func (s *ProgressService) ExportCSV(ctx context.Context, projectID string) (string, error) {
	entries, err := s.ListEntries(ctx, projectID, &model.ProgressListQuery{})
	if err != nil {
		return "", err
	}
	return progress.ExportCSV(entries)
}

// TemplateCSV returns the header-only CSV import template
func (s *ProgressService) TemplateCSV() string {
	return progress.TemplateCSV()
}

// StartImport registers a PENDING import job and enqueues it for
// asynchronous processing.
func (s *ProgressService) StartImport(ctx context.Context, projectID, createdBy, csvContent string) (*model.ImportJob, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(csvContent) == "" {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	job := &mysql.ImportJob{
		JobID:     uuid.NewString(),
		ProjectID: projectID,
		Status:    string(model.ImportJobStatusPending),
		CreatedBy: createdBy,
	}
	if err := s.importJobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create import job: %w", err)
	}

	payload := &model.ImportJobPayload{
		JobID:      job.JobID,
		ProjectID:  projectID,
		ReportedBy: createdBy,
		CSV:        csvContent,
	}
	if err := s.enqueuer.EnqueueImport(ctx, payload); err != nil {
		// The job row stays behind as FAILED so the client can see why.
		_ = s.importJobRepo.UpdateFields(ctx, job.JobID, map[string]interface{}{
			"status": string(model.ImportJobStatusFailed),
			"error":  fmt.Sprintf("enqueue failed: %v", err),
		})
		return nil, fmt.Errorf("failed to enqueue import job: %w", err)
	}

	return mysql.ToImportJobDomain(job), nil
}

// GetImportJob retrieves an import job by ID
func (s *ProgressService) GetImportJob(ctx context.Context, jobID string) (*model.ImportJob, error) {
	job, err := s.importJobRepo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("%w: import job %s", ErrNotFound, jobID)
	}
	return mysql.ToImportJobDomain(job), nil
}

func (s *ProgressService) requireProject(ctx context.Context, projectID string) error {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	return nil
}

func (s *ProgressService) invalidateMetrics(ctx context.Context, projectID string) {
	if s.metricsCache == nil {
		return
	}
	_ = s.metricsCache.Invalidate(ctx, projectID)
}

func (s *ProgressService) broadcast(projectID, event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(&LiveEvent{
		Event:     event,
		ProjectID: projectID,
		Payload:   payload,
	})
}

func clampOptional(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := clampPercent(*v)
	return &c
}

func parseRange(query *model.ProgressListQuery) (*time.Time, *time.Time, error) {
	if query == nil {
		return nil, nil, nil
	}
	var from, to *time.Time
	if query.From != "" {
		d, err := time.Parse(dateLayout, query.From)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from: %v", ErrInvalidInput, err)
		}
		from = &d
	}
	if query.To != "" {
		d, err := time.Parse(dateLayout, query.To)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to: %v", ErrInvalidInput, err)
		}
		to = &d
	}
	return from, to, nil
}
