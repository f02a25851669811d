// Package asynq wraps the asynq client and server used for asynchronous
// CSV progress imports. An upload enqueues one task per job; the worker
// side parses and persists rows out of the request path.
package asynq

import (
	"context"
	"fmt"
	"time"

	"planpulse/internal/model"
	"planpulse/pkg/config"
	"planpulse/pkg/logger"

	"github.com/hibiken/asynq"
)

const (
	TypeProgressImport = "import:progress"
)

// Manager queue manager
type Manager struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewManager creates queue manager
func NewManager(cfg *config.Config) (*Manager, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Queues: map[string]int{
				"default": 10,
			},
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Second
			},
		},
	)

	mux := asynq.NewServeMux()

	return &Manager{
		client: client,
		server: server,
		mux:    mux,
	}, nil
}

// EnqueueImport enqueues a progress import job
func (m *Manager) EnqueueImport(ctx context.Context, payload *model.ImportJobPayload) error {
	data, err := payload.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal import payload: %w", err)
	}

	task := asynq.NewTask(TypeProgressImport, data)

	opts := []asynq.Option{
		asynq.TaskID(payload.JobID),
		asynq.Timeout(time.Duration(config.GlobalConfig.Queue.JobTimeout) * time.Second),
		asynq.MaxRetry(config.GlobalConfig.Queue.MaxRetry),
	}

	info, err := m.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue import job: %w", err)
	}

	logger.InfoCtx(ctx, "import job enqueued, job_id: %s, queue: %s", payload.JobID, info.Queue)

	return nil
}

// RegisterHandler registers task handler
func (m *Manager) RegisterHandler(pattern string, handler asynq.Handler) {
	m.mux.Handle(pattern, handler)
}

// Start starts queue processor
func (m *Manager) Start() error {
	logger.InfoCtx(context.Background(), "starting queue server")
	return m.server.Start(m.mux)
}

// Stop stops queue processor
func (m *Manager) Stop() {
	logger.InfoCtx(context.Background(), "stopping queue server")
	m.server.Stop()
	m.server.Shutdown()
}

// Close closes client
func (m *Manager) Close() error {
	return m.client.Close()
}
