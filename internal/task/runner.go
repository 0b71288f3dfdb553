package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds worker pool sizing for the task runner.
type RunnerConfig struct {
	WorkerCount int
	QueueSize   int
}

// DefaultRunnerConfig returns sizing suitable for a single instance.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner owns the queue and a pool of workers draining it. Tasks are
// in-memory only; anything that must survive a restart re-enqueues from
// its own source of truth.
type Runner struct {
	queue      *Queue
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewRunner creates a stopped runner. Call Start to begin processing.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "task_runner"))

	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		queue:      NewQueue(config.QueueSize, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     log,
		errHandler: func(task Task, err error) {
			log.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler replaces the default log-only failure handler.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	if handler != nil {
		r.errHandler = handler
	}
}

// Submit enqueues a task for background execution.
func (r *Runner) Submit(_ context.Context, task Task) error {
	return r.queue.Enqueue(task)
}

// Start launches the worker goroutines.
func (r *Runner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.logger.Info("task runner started",
		"worker_count", r.config.WorkerCount,
		"queue_size", r.config.QueueSize)
}

// Stop closes the queue, lets workers drain it and waits for them.
func (r *Runner) Stop() {
	r.queue.Close()
	r.cancelFunc()
	r.wg.Wait()
	r.logger.Info("task runner stopped")
}

func (r *Runner) worker(id int) {
	defer r.wg.Done()
	log := r.logger.With(slog.Int("worker_id", id))

	for task := range r.queue.Channel() {
		start := time.Now()
		log.Debug("executing task",
			"task_id", task.ID(),
			"task_type", task.Type())

		if err := task.Execute(r.ctx); err != nil {
			r.errHandler(task, err)
			continue
		}

		log.Debug("task completed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
