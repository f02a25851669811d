package mysql

import (
	"planpulse/internal/model"
)

// ToProjectDomain converts MySQL Project to domain Project model
func ToProjectDomain(p *Project) *model.Project {
	if p == nil {
		return nil
	}
	return &model.Project{
		ID:          p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		Status:      model.ProjectStatus(p.Status),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		ManagerID:   p.ManagerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromProjectDomain converts domain Project model to MySQL Project
func FromProjectDomain(p *model.Project) *Project {
	if p == nil {
		return nil
	}
	return &Project{
		ProjectID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		ManagerID:   p.ManagerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToTaskDomain converts MySQL Task to domain Task model
func ToTaskDomain(t *Task) *model.Task {
	if t == nil {
		return nil
	}
	return &model.Task{
		ID:           t.TaskID,
		ProjectID:    t.ProjectID,
		Name:         t.Name,
		Description:  t.Description,
		PlannedStart: t.PlannedStart,
		PlannedEnd:   t.PlannedEnd,
		Weight:       t.Weight,
		Completion:   t.Completion,
		Priority:     model.TaskPriority(t.Priority),
		Status:       model.TaskStatus(t.Status),
		AssigneeID:   t.AssigneeID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromTaskDomain converts domain Task model to MySQL Task
func FromTaskDomain(t *model.Task) *Task {
	if t == nil {
		return nil
	}
	return &Task{
		TaskID:       t.ID,
		ProjectID:    t.ProjectID,
		Name:         t.Name,
		Description:  t.Description,
		PlannedStart: t.PlannedStart,
		PlannedEnd:   t.PlannedEnd,
		Weight:       t.Weight,
		Completion:   t.Completion,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		AssigneeID:   t.AssigneeID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToProgressEntryDomain converts MySQL ProgressEntry to domain model
func ToProgressEntryDomain(e *ProgressEntry) *model.ProgressEntry {
	if e == nil {
		return nil
	}
	return &model.ProgressEntry{
		ID:          e.EntryID,
		ProjectID:   e.ProjectID,
		Date:        e.EntryDate,
		Progress:    e.Progress,
		Planned:     e.Planned,
		Actual:      e.Actual,
		Status:      model.EntryStatus(e.Status),
		Milestone:   e.Milestone,
		Description: e.Description,
		ReportedBy:  e.ReportedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// FromProgressEntryDomain converts domain ProgressEntry to MySQL model
func FromProgressEntryDomain(e *model.ProgressEntry) *ProgressEntry {
	if e == nil {
		return nil
	}
	return &ProgressEntry{
		EntryID:     e.ID,
		ProjectID:   e.ProjectID,
		EntryDate:   e.Date,
		Progress:    e.Progress,
		Planned:     e.Planned,
		Actual:      e.Actual,
		Status:      string(e.Status),
		Milestone:   e.Milestone,
		Description: e.Description,
		ReportedBy:  e.ReportedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// ToUserDomain converts MySQL User to domain User model
func ToUserDomain(u *User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		ID:           u.UserID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         model.Role(u.Role),
		Active:       u.Active,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// FromUserDomain converts domain User to MySQL model
func FromUserDomain(u *model.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		UserID:       u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         string(u.Role),
		Active:       u.Active,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToTimesheetDomain converts MySQL Timesheet to domain model
func ToTimesheetDomain(ts *Timesheet) *model.Timesheet {
	if ts == nil {
		return nil
	}
	return &model.Timesheet{
		ID:        ts.TimesheetID,
		UserID:    ts.UserID,
		TaskID:    ts.TaskID,
		ProjectID: ts.ProjectID,
		WorkDate:  ts.WorkDate,
		Hours:     ts.Hours,
		Note:      ts.Note,
		Status:    model.TimesheetStatus(ts.Status),
		CreatedAt: ts.CreatedAt,
		UpdatedAt: ts.UpdatedAt,
	}
}

// FromTimesheetDomain converts domain Timesheet to MySQL model
func FromTimesheetDomain(ts *model.Timesheet) *Timesheet {
	if ts == nil {
		return nil
	}
	return &Timesheet{
		TimesheetID: ts.ID,
		UserID:      ts.UserID,
		TaskID:      ts.TaskID,
		ProjectID:   ts.ProjectID,
		WorkDate:    ts.WorkDate,
		Hours:       ts.Hours,
		Note:        ts.Note,
		Status:      string(ts.Status),
		CreatedAt:   ts.CreatedAt,
		UpdatedAt:   ts.UpdatedAt,
	}
}

// ToCostRequestDomain converts MySQL CostRequest to domain model
func ToCostRequestDomain(cr *CostRequest) *model.CostRequest {
	if cr == nil {
		return nil
	}
	return &model.CostRequest{
		ID:          cr.RequestID,
		ProjectID:   cr.ProjectID,
		RequestedBy: cr.RequestedBy,
		Amount:      cr.Amount,
		Currency:    cr.Currency,
		Reason:      cr.Reason,
		Status:      model.CostRequestStatus(cr.Status),
		DecidedBy:   cr.DecidedBy,
		DecidedAt:   cr.DecidedAt,
		Comment:     cr.Comment,
		CreatedAt:   cr.CreatedAt,
		UpdatedAt:   cr.UpdatedAt,
	}
}

// FromCostRequestDomain converts domain CostRequest to MySQL model
func FromCostRequestDomain(cr *model.CostRequest) *CostRequest {
	if cr == nil {
		return nil
	}
	return &CostRequest{
		RequestID:   cr.ID,
		ProjectID:   cr.ProjectID,
		RequestedBy: cr.RequestedBy,
		Amount:      cr.Amount,
		Currency:    cr.Currency,
		Reason:      cr.Reason,
		Status:      string(cr.Status),
		DecidedBy:   cr.DecidedBy,
		DecidedAt:   cr.DecidedAt,
		Comment:     cr.Comment,
		CreatedAt:   cr.CreatedAt,
		UpdatedAt:   cr.UpdatedAt,
	}
}

// ToImportJobDomain converts MySQL ImportJob to domain model
func ToImportJobDomain(j *ImportJob) *model.ImportJob {
	if j == nil {
		return nil
	}
	job := &model.ImportJob{
		ID:           j.JobID,
		ProjectID:    j.ProjectID,
		Status:       model.ImportJobStatus(j.Status),
		TotalRows:    j.TotalRows,
		ImportedRows: j.ImportedRows,
		FailedRows:   j.FailedRows,
		Error:        j.Error,
		CreatedBy:    j.CreatedBy,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
	for _, re := range j.RowErrors {
		job.RowErrors = append(job.RowErrors, model.RowError{Row: re.Row, Reason: re.Reason})
	}
	return job
}
