package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planpulse/internal/model"
	"planpulse/internal/progress"
	"planpulse/pkg/logger"
	"planpulse/pkg/metrics"
	"planpulse/pkg/store/mysql"
	"planpulse/pkg/store/redis"

	"github.com/hibiken/asynq"
)

// ImportService processes queued CSV progress imports. It implements
// asynq.Handler and is registered for the progress import task type.
type ImportService struct {
	progressRepo  *mysql.ProgressRepository
	importJobRepo *mysql.ImportJobRepository
	ds            *mysql.Datastore
	metricsCache  *redis.MetricsCache
	hub           *LiveHub
}

// NewImportService creates a new import service
func NewImportService(
	progressRepo *mysql.ProgressRepository,
	importJobRepo *mysql.ImportJobRepository,
	ds *mysql.Datastore,
	metricsCache *redis.MetricsCache,
	hub *LiveHub,
) *ImportService {
	return &ImportService{
		progressRepo:  progressRepo,
		importJobRepo: importJobRepo,
		ds:            ds,
		metricsCache:  metricsCache,
		hub:           hub,
	}
}

// ProcessTask handles one queued import. Parsing failures on individual rows
// are recorded on the job rather than failing it; the job only fails when the
// file as a whole is unreadable or the database rejects the batch.
func (s *ImportService) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload := &model.ImportJobPayload{}
	if err := payload.FromJSON(task.Payload()); err != nil {
		return fmt.Errorf("failed to decode import payload: %w", err)
	}

	logger.InfoCtx(ctx, "processing progress import, job_id: %s, project_id: %s", payload.JobID, payload.ProjectID)

	if err := s.importJobRepo.UpdateStatus(ctx, payload.JobID,
		string(model.ImportJobStatusPending), string(model.ImportJobStatusRunning)); err != nil {
		// Already picked up by an earlier delivery. Unless that delivery's
		// worker died and left the job stuck in RUNNING, nothing to do.
		if !s.reclaimStalled(ctx, payload.JobID) {
			logger.WarnCtx(ctx, "import job %s is not pending, skipping: %v", payload.JobID, err)
			return nil
		}
	}

	entries, rowErrors, err := progress.ParseCSV(strings.NewReader(payload.CSV))
	if err != nil {
		return s.failJob(ctx, payload.JobID, fmt.Errorf("failed to parse csv: %w", err))
	}

	for _, e := range entries {
		e.ProjectID = payload.ProjectID
		e.ReportedBy = payload.ReportedBy
	}

	if len(entries) > 0 {
		records := make([]*mysql.ProgressEntry, len(entries))
		for i, e := range entries {
			records[i] = mysql.FromProgressEntryDomain(e)
		}
		err = s.ds.ExecTx(ctx, func(txCtx context.Context) error {
			return s.progressRepo.CreateBatch(txCtx, records)
		})
		if err != nil {
			return s.failJob(ctx, payload.JobID, fmt.Errorf("failed to store entries: %w", err))
		}
	}

	metrics.ImportRowsProcessed.WithLabelValues("imported").Add(float64(len(entries)))
	metrics.ImportRowsProcessed.WithLabelValues("failed").Add(float64(len(rowErrors)))

	recorded := make(mysql.RowErrorList, len(rowErrors))
	for i, re := range rowErrors {
		recorded[i] = mysql.RowErrorRecord{Row: re.Row, Reason: re.Reason}
	}
	updates := map[string]interface{}{
		"status":        string(model.ImportJobStatusCompleted),
		"total_rows":    len(entries) + len(rowErrors),
		"imported_rows": len(entries),
		"failed_rows":   len(rowErrors),
		"row_errors":    recorded,
	}
	if err := s.importJobRepo.UpdateFields(ctx, payload.JobID, updates); err != nil {
		return fmt.Errorf("failed to finalize import job: %w", err)
	}

	if s.metricsCache != nil {
		_ = s.metricsCache.Invalidate(ctx, payload.ProjectID)
	}
	if s.hub != nil {
		s.hub.Broadcast(&LiveEvent{
			Event:     "import_completed",
			ProjectID: payload.ProjectID,
			Payload: map[string]interface{}{
				"job_id":        payload.JobID,
				"imported_rows": len(entries),
				"failed_rows":   len(rowErrors),
			},
		})
	}

	logger.InfoCtx(ctx, "progress import completed, job_id: %s, imported: %d, failed: %d",
		payload.JobID, len(entries), len(rowErrors))
	return nil
}

// importStaleAfter how long a RUNNING job may sit untouched before a
// redelivery treats its worker as dead. Imports finish in seconds, so a job
// this old was orphaned by a crash between the status CAS and completion.
const importStaleAfter = 10 * time.Minute

// reclaimStalled takes over an orphaned RUNNING job. Returns true when this
// delivery won the takeover and should process the import.
func (s *ImportService) reclaimStalled(ctx context.Context, jobID string) bool {
	job, err := s.importJobRepo.Get(ctx, jobID)
	if err != nil || job == nil {
		return false
	}
	if !importJobStalled(job.Status, job.UpdatedAt, time.Now().UTC()) {
		return false
	}
	if err := s.importJobRepo.Reclaim(ctx, jobID, string(model.ImportJobStatusRunning), job.UpdatedAt); err != nil {
		return false
	}
	logger.WarnCtx(ctx, "import job %s stalled in RUNNING for over %s, taking it over", jobID, importStaleAfter)
	return true
}

// importJobStalled reports whether a job has been RUNNING past the staleness
// window without progress.
func importJobStalled(status string, updatedAt, now time.Time) bool {
	return status == string(model.ImportJobStatusRunning) && now.Sub(updatedAt) > importStaleAfter
}

// failJob marks the job FAILED and returns the original error so asynq
// counts the delivery as failed.
func (s *ImportService) failJob(ctx context.Context, jobID string, cause error) error {
	updates := map[string]interface{}{
		"status": string(model.ImportJobStatusFailed),
		"error":  cause.Error(),
	}
	if err := s.importJobRepo.UpdateFields(ctx, jobID, updates); err != nil {
		logger.ErrorCtx(ctx, "failed to mark import job %s failed: %v", jobID, err)
	}
	return cause
}
