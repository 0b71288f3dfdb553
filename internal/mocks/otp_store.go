package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/store"
)

// MockOTPStore implements store.OTPStore for testing.
type MockOTPStore struct {
	CreateFn        func(ctx context.Context, challenge *domain.OTPChallenge) error
	GetFn           func(ctx context.Context, id uuid.UUID) (*domain.OTPChallenge, error)
	ConsumeFn       func(ctx context.Context, id uuid.UUID) error
	DeleteExpiredFn func(ctx context.Context) (int64, error)

	Challenges map[uuid.UUID]*domain.OTPChallenge
}

var _ store.OTPStore = (*MockOTPStore)(nil)

func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{Challenges: make(map[uuid.UUID]*domain.OTPChallenge)}
}

func (m *MockOTPStore) Create(ctx context.Context, challenge *domain.OTPChallenge) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, challenge)
	}
	m.Challenges[challenge.ID] = challenge
	return nil
}

func (m *MockOTPStore) Get(ctx context.Context, id uuid.UUID) (*domain.OTPChallenge, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	challenge, ok := m.Challenges[id]
	if !ok {
		return nil, store.ErrOTPNotFound
	}
	return challenge, nil
}

func (m *MockOTPStore) Consume(ctx context.Context, id uuid.UUID) error {
	if m.ConsumeFn != nil {
		return m.ConsumeFn(ctx, id)
	}
	challenge, ok := m.Challenges[id]
	if !ok || challenge.Consumed() {
		return store.ErrOTPNotFound
	}
	challenge.ConsumedAt = time.Now().UTC()
	return nil
}

func (m *MockOTPStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFn != nil {
		return m.DeleteExpiredFn(ctx)
	}
	return 0, nil
}

func (m *MockOTPStore) WithTx(tx *sql.Tx) store.OTPStore { return m }
