package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// CronRegistration wires a cron expression to a prepared task.
type CronRegistration struct {
	Spec string
	Task *asynq.Task
}

// WorkerConfig collects what the worker needs to start.
type WorkerConfig struct {
	RedisOpts asynq.RedisClientOpt
	Logger    zerolog.Logger
	Summary   *SummaryReport
	Cron      []CronRegistration
}

// Worker wraps the Asynq server plus the cron scheduler that enqueues the
// recurring summary report.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    zerolog.Logger
}

func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Summary == nil {
		return nil, fmt.Errorf("summary report job must be provided")
	}

	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.Use(func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			return next.ProcessTask(cfg.Logger.WithContext(ctx), t)
		})
	})
	mux.HandleFunc(TaskTypeSummaryReport, cfg.Summary.Handle)

	var scheduler *asynq.Scheduler
	if len(cfg.Cron) > 0 {
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		for _, entry := range cfg.Cron {
			if entry.Spec == "" || entry.Task == nil {
				continue
			}
			if _, err := scheduler.Register(entry.Spec, entry.Task, asynq.Queue(QueueDefault)); err != nil {
				return nil, fmt.Errorf("failed to register cron entry %q: %w", entry.Spec, err)
			}
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run starts the scheduler (when configured) and blocks serving tasks.
func (w *Worker) Run() error {
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer w.scheduler.Shutdown()
	}

	w.logger.Info().Msg("worker started")
	return w.server.Run(w.mux)
}
