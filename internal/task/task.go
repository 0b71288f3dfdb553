// Package task provides the background work queue and its workers.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Task type identifiers.
const (
	// TaskTypeOTPDelivery sends a generated one-time password to its
	// target phone number or email.
	TaskTypeOTPDelivery = "otp_delivery"

	// TaskTypeOTPSweep deletes expired one-time-password challenges.
	TaskTypeOTPSweep = "otp_sweep"
)

// Task is a unit of background work.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}

// Queue errors.
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// Queue is a buffered in-memory task queue.
type Queue struct {
	tasks  chan Task
	logger *slog.Logger
	closed bool
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(size int, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		tasks:  make(chan Task, size),
		logger: logger.With(slog.String("component", "task_queue")),
	}
}

// Enqueue adds a task without blocking. Returns ErrQueueFull when the
// buffer has no room.
func (q *Queue) Enqueue(task Task) error {
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.tasks <- task:
		q.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"queue_len", len(q.tasks),
			"queue_cap", cap(q.tasks))
		return nil
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(q.tasks))
	}
}

// Close stops accepting tasks. Workers drain what remains.
func (q *Queue) Close() {
	if !q.closed {
		q.closed = true
		close(q.tasks)
		q.logger.Info("task queue closed")
	}
}

// Channel exposes the read side for workers.
func (q *Queue) Channel() <-chan Task {
	return q.tasks
}
