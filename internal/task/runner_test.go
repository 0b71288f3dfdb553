package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTask counts executions and optionally fails.
type stubTask struct {
	id       uuid.UUID
	executed *atomic.Int64
	err      error
}

func newStubTask(executed *atomic.Int64, err error) *stubTask {
	return &stubTask{id: uuid.New(), executed: executed, err: err}
}

func (t *stubTask) ID() uuid.UUID { return t.id }

func (t *stubTask) Type() string { return "stub" }

func (t *stubTask) Execute(_ context.Context) error {
	t.executed.Add(1)
	return t.err
}

func TestQueueRejectsWhenFull(t *testing.T) {
	q := NewQueue(1, nil)
	var executed atomic.Int64

	require.NoError(t, q.Enqueue(newStubTask(&executed, nil)))

	err := q.Enqueue(newStubTask(&executed, nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestQueueRejectsAfterClose(t *testing.T) {
	q := NewQueue(4, nil)
	var executed atomic.Int64

	q.Close()
	err := q.Enqueue(newStubTask(&executed, nil))
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestRunnerDrainsQueueOnStop(t *testing.T) {
	runner := NewRunner(RunnerConfig{WorkerCount: 2, QueueSize: 10}, nil)
	var executed atomic.Int64

	for i := 0; i < 5; i++ {
		require.NoError(t, runner.Submit(context.Background(), newStubTask(&executed, nil)))
	}

	runner.Start()
	runner.Stop()

	assert.Equal(t, int64(5), executed.Load())
}

func TestRunnerReportsFailuresToErrorHandler(t *testing.T) {
	runner := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	var executed atomic.Int64
	var failures atomic.Int64
	runner.SetErrorHandler(func(task Task, err error) {
		failures.Add(1)
	})

	boom := errors.New("gateway unreachable")
	require.NoError(t, runner.Submit(context.Background(), newStubTask(&executed, boom)))
	require.NoError(t, runner.Submit(context.Background(), newStubTask(&executed, nil)))

	runner.Start()
	runner.Stop()

	assert.Equal(t, int64(2), executed.Load())
	assert.Equal(t, int64(1), failures.Load())
}

func TestRunnerDefaultsWorkerCount(t *testing.T) {
	runner := NewRunner(RunnerConfig{}, nil)
	var executed atomic.Int64

	require.NoError(t, runner.Submit(context.Background(), newStubTask(&executed, nil)))
	runner.Start()
	runner.Stop()

	assert.Equal(t, int64(1), executed.Load())
}
