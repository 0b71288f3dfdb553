package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
)

// PostgresOTPStore implements store.OTPStore. Challenges live until their
// TTL lapses; DeleteExpired is swept periodically by the task runner.
type PostgresOTPStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOTPStore creates an OTP challenge store.
func NewPostgresOTPStore(db store.DBTX, log *slog.Logger) *PostgresOTPStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresOTPStore{
		db:     db,
		logger: log.With(slog.String("component", "otp_store")),
	}
}

var _ store.OTPStore = (*PostgresOTPStore)(nil)

// Create implements store.OTPStore.Create.
func (s *PostgresOTPStore) Create(ctx context.Context, challenge *domain.OTPChallenge) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID := uuid.NullUUID{UUID: challenge.UserID, Valid: challenge.UserID != uuid.Nil}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO otp_challenges (id, user_id, target, otp_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, challenge.ID, userID, challenge.Target, challenge.OTPHash,
		challenge.ExpiresAt, challenge.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create otp challenge",
			slog.String("error", err.Error()),
			slog.String("challenge_id", challenge.ID.String()))
		return err
	}
	return nil
}

// Get implements store.OTPStore.Get.
func (s *PostgresOTPStore) Get(ctx context.Context, id uuid.UUID) (*domain.OTPChallenge, error) {
	var c domain.OTPChallenge
	var userID uuid.NullUUID
	var consumedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, target, otp_hash, expires_at, consumed_at, created_at
		FROM otp_challenges
		WHERE id = $1
	`, id).Scan(&c.ID, &userID, &c.Target, &c.OTPHash, &c.ExpiresAt, &consumedAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrOTPNotFound
		}
		return nil, err
	}
	if userID.Valid {
		c.UserID = userID.UUID
	}
	if consumedAt.Valid {
		c.ConsumedAt = consumedAt.Time
	}
	return &c, nil
}

// Consume implements store.OTPStore.Consume. The WHERE clause on
// consumed_at makes redemption first-wins under concurrency.
func (s *PostgresOTPStore) Consume(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE otp_challenges
		SET consumed_at = $1
		WHERE id = $2 AND consumed_at IS NULL
	`, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrOTPNotFound)
}

// DeleteExpired implements store.OTPStore.DeleteExpired.
func (s *PostgresOTPStore) DeleteExpired(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM otp_challenges WHERE expires_at < $1`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Debug("swept expired otp challenges", slog.Int64("count", n))
	}
	return n, nil
}

// WithTx implements store.OTPStore.WithTx.
func (s *PostgresOTPStore) WithTx(tx *sql.Tx) store.OTPStore {
	return &PostgresOTPStore{db: tx, logger: s.logger}
}
