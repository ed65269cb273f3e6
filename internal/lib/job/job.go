// Package job runs background work on Asynq.
//
// Asynq is a Redis-backed job queue: the Client enqueues tasks and the Server
// runs workers that process them.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/deppfellow/go-invoicing/internal/lib/email"
	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer is the part of asynq.Client used to push tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type JobService struct {
	Client Enqueuer

	server *asynq.Server
	mailer ActivityMailer
	notify string
	logger *zerolog.Logger
}

// NewJobService creates the client and worker server on the configured Redis.
//
// Queue weights give "critical" most of the ten workers; notifications go to
// "low".
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		mailer: email.NewClient(cfg, logger),
		notify: cfg.Integration.NotifyEmail,
		logger: logger,
	}
}

// NotifyInvoiceActivity enqueues an activity email for the configured
// recipient.
func (j *JobService) NotifyInvoiceActivity(ctx context.Context, activity model.InvoiceActivity) error {
	task, err := NewInvoiceActivityTask(j.notify, activity)
	if err != nil {
		return fmt.Errorf("failed to build invoice activity task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue invoice activity task: %w", err)
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued invoice activity task")
	return nil
}

// Start registers the task handlers and starts the workers. It returns once
// the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskInvoiceActivity, j.handleInvoiceActivityTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}
	return nil
}

// Stop waits for running tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	_ = j.Client.Close()
}
