package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
)

// OTPStore persists one-time-password challenges with their expiry.
type OTPStore interface {
	Create(ctx context.Context, challenge *domain.OTPChallenge) error

	// Get returns the challenge by verification ID, consumed or not.
	// Returns ErrOTPNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.OTPChallenge, error)

	// Consume atomically marks an unconsumed challenge as used. Returns
	// ErrOTPNotFound when the challenge is absent or was already consumed,
	// so a code can only ever be redeemed once.
	Consume(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes challenges whose TTL has lapsed and returns
	// how many were dropped.
	DeleteExpired(ctx context.Context) (int64, error)

	WithTx(tx *sql.Tx) OTPStore
}
