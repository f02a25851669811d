package mysql

// Repository aggregates all MySQL repositories
type Repository struct {
	ds *Datastore

	User        *UserRepository
	Project     *ProjectRepository
	Task        *TaskRepository
	Progress    *ProgressRepository
	Timesheet   *TimesheetRepository
	CostRequest *CostRequestRepository
	ImportJob   *ImportJobRepository
}

// NewRepository creates a new MySQL repository with all sub-repositories
func NewRepository(dsn string) (*Repository, error) {
	ds, err := NewDatastore(dsn)
	if err != nil {
		return nil, err
	}

	return &Repository{
		ds:          ds,
		User:        NewUserRepository(ds),
		Project:     NewProjectRepository(ds),
		Task:        NewTaskRepository(ds),
		Progress:    NewProgressRepository(ds),
		Timesheet:   NewTimesheetRepository(ds),
		CostRequest: NewCostRequestRepository(ds),
		ImportJob:   NewImportJobRepository(ds),
	}, nil
}

// GetDatastore returns the underlying datastore for transaction support
func (r *Repository) GetDatastore() *Datastore {
	return r.ds
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.ds.Close()
}
