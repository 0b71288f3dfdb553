package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
)

// PostgresRefreshTokenStore implements store.RefreshTokenStore. Token
// consumption is a single DELETE ... RETURNING, so two concurrent refresh
// attempts with the same token cannot both win.
type PostgresRefreshTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRefreshTokenStore creates a refresh token store.
func NewPostgresRefreshTokenStore(db store.DBTX, log *slog.Logger) *PostgresRefreshTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresRefreshTokenStore{
		db:     db,
		logger: log.With(slog.String("component", "refresh_token_store")),
	}
}

var _ store.RefreshTokenStore = (*PostgresRefreshTokenStore)(nil)

// Save implements store.RefreshTokenStore.Save.
func (s *PostgresRefreshTokenStore) Save(
	ctx context.Context,
	userID uuid.UUID,
	tokenHash string,
	expiresAt time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), userID, tokenHash, expiresAt, time.Now().UTC())
	if err != nil {
		log.Error("failed to save refresh token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}
	return nil
}

// Consume implements store.RefreshTokenStore.Consume.
func (s *PostgresRefreshTokenStore) Consume(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var userID uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE token_hash = $1 AND expires_at > $2
		RETURNING user_id
	`, tokenHash, time.Now().UTC()).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("refresh token not found or already consumed")
			return uuid.Nil, store.ErrTokenNotFound
		}
		log.Error("failed to consume refresh token", slog.String("error", err.Error()))
		return uuid.Nil, err
	}
	return userID, nil
}

// DeleteAllForUser implements store.RefreshTokenStore.DeleteAllForUser.
func (s *PostgresRefreshTokenStore) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete refresh tokens",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}
	if n, err := result.RowsAffected(); err == nil {
		log.Debug("deleted refresh tokens",
			slog.String("user_id", userID.String()),
			slog.Int64("count", n))
	}
	return nil
}

// WithTx implements store.RefreshTokenStore.WithTx.
func (s *PostgresRefreshTokenStore) WithTx(tx *sql.Tx) store.RefreshTokenStore {
	return &PostgresRefreshTokenStore{db: tx, logger: s.logger}
}
