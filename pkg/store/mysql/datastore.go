package mysql

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"planpulse/pkg/metrics"
	storemodel "planpulse/pkg/store/mysql/model"
)

// Datastore wraps GORM DB and provides transaction support
type Datastore struct {
	db *gorm.DB
}

// NewDatastore creates a new MySQL datastore and migrates the schema
func NewDatastore(dsn string) (*Datastore, error) {
	// Configure GORM logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
		// Disable default transaction for better performance
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&storemodel.User{},
		&storemodel.Project{},
		&storemodel.Task{},
		&storemodel.ProgressEntry{},
		&storemodel.Timesheet{},
		&storemodel.CostRequest{},
		&storemodel.ImportJob{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Get underlying *sql.DB and configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	registerMetricsCallbacks(db)

	return &Datastore{db: db}, nil
}

// registerMetricsCallbacks hooks query latency observation into every GORM
// operation so repositories don't need to time queries themselves.
func registerMetricsCallbacks(db *gorm.DB) {
	before := func(tx *gorm.DB) {
		tx.InstanceSet("metrics:start", time.Now())
	}
	after := func(operation string) func(tx *gorm.DB) {
		return func(tx *gorm.DB) {
			start, ok := tx.InstanceGet("metrics:start")
			if !ok {
				return
			}
			metrics.ObserveDBQuery(operation, tx.Statement.Table, time.Since(start.(time.Time)))
		}
	}

	db.Callback().Create().Before("gorm:create").Register("metrics:before_create", before)
	db.Callback().Create().After("gorm:create").Register("metrics:after_create", after("create"))
	db.Callback().Query().Before("gorm:query").Register("metrics:before_query", before)
	db.Callback().Query().After("gorm:query").Register("metrics:after_query", after("query"))
	db.Callback().Update().Before("gorm:update").Register("metrics:before_update", before)
	db.Callback().Update().After("gorm:update").Register("metrics:after_update", after("update"))
	db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", before)
	db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", after("delete"))
	db.Callback().Row().Before("gorm:row").Register("metrics:before_row", before)
	db.Callback().Row().After("gorm:row").Register("metrics:after_row", after("row"))
}

// Close closes the database connection
func (ds *Datastore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction support using context
type contextTxKey struct{}

// ExecTx executes a function within a transaction
// If the function returns an error, the transaction is rolled back
// Otherwise, the transaction is committed
func (ds *Datastore) ExecTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, contextTxKey{}, tx)
		return fn(ctx)
	})
}

// DB returns the GORM DB instance for the current context
// If a transaction is active in the context, it returns the transaction DB
// Otherwise, it returns the main DB
func (ds *Datastore) DB(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(contextTxKey{}).(*gorm.DB)
	if ok {
		return tx.WithContext(ctx)
	}
	return ds.db.WithContext(ctx)
}
