package mysql

import "planpulse/pkg/store/mysql/model"

// Re-export types from model package so repository callers don't need a
// second import path.

type (
	// Database models
	User          = model.User
	Project       = model.Project
	Task          = model.Task
	ProgressEntry = model.ProgressEntry
	Timesheet     = model.Timesheet
	CostRequest   = model.CostRequest
	ImportJob     = model.ImportJob

	// Custom JSON types
	RowErrorList   = model.RowErrorList
	RowErrorRecord = model.RowErrorRecord
)
