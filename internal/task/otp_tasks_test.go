package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vetician/vetician-api/internal/mocks"
)

type fakeSender struct {
	target string
	code   string
	err    error
}

func (s *fakeSender) Send(_ context.Context, target, code string) error {
	s.target = target
	s.code = code
	return s.err
}

func TestOTPDeliveryTaskSends(t *testing.T) {
	sender := &fakeSender{}
	task := NewOTPDeliveryTask("9876543210", "123456", sender)

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, "9876543210", sender.target)
	assert.Equal(t, "123456", sender.code)
	assert.Equal(t, TaskTypeOTPDelivery, task.Type())
}

func TestOTPDeliveryTaskWrapsSenderError(t *testing.T) {
	boom := errors.New("gateway unreachable")
	task := NewOTPDeliveryTask("9876543210", "123456", &fakeSender{err: boom})

	err := task.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOTPSweepTaskDeletesExpired(t *testing.T) {
	otps := mocks.NewMockOTPStore()
	swept := false
	otps.DeleteExpiredFn = func(ctx context.Context) (int64, error) {
		swept = true
		return 3, nil
	}

	task := NewOTPSweepTask(otps, nil)
	require.NoError(t, task.Execute(context.Background()))
	assert.True(t, swept)
	assert.Equal(t, TaskTypeOTPSweep, task.Type())
}

func TestOTPSweepTaskPropagatesStoreError(t *testing.T) {
	otps := mocks.NewMockOTPStore()
	boom := errors.New("connection reset")
	otps.DeleteExpiredFn = func(ctx context.Context) (int64, error) {
		return 0, boom
	}

	err := NewOTPSweepTask(otps, nil).Execute(context.Background())
	assert.ErrorIs(t, err, boom)
}
