package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
)

// PostgresParentStore implements store.ParentStore.
type PostgresParentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresParentStore creates a parent profile store.
func NewPostgresParentStore(db store.DBTX, log *slog.Logger) *PostgresParentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresParentStore{
		db:     db,
		logger: log.With(slog.String("component", "parent_store")),
	}
}

var _ store.ParentStore = (*PostgresParentStore)(nil)

// Create implements store.ParentStore.Create.
func (s *PostgresParentStore) Create(ctx context.Context, parent *domain.Parent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parents (id, user_id, name, email, phone, address, gender, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, parent.ID, parent.UserID, parent.Name, parent.Email,
		nullString(parent.Phone), nullString(parent.Address),
		nullString(parent.Gender), nullString(parent.ImageURL),
		parent.CreatedAt, parent.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create parent profile",
			slog.String("error", err.Error()),
			slog.String("user_id", parent.UserID.String()))
		return err
	}
	return nil
}

// GetByUserID implements store.ParentStore.GetByUserID.
func (s *PostgresParentStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Parent, error) {
	var p domain.Parent
	var phone, address, gender, imageURL sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, email, phone, address, gender, image_url, created_at, updated_at
		FROM parents
		WHERE user_id = $1
	`, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email,
		&phone, &address, &gender, &imageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrParentNotFound
		}
		return nil, err
	}
	p.Phone = phone.String
	p.Address = address.String
	p.Gender = gender.String
	p.ImageURL = imageURL.String
	return &p, nil
}

// Update implements store.ParentStore.Update.
func (s *PostgresParentStore) Update(ctx context.Context, parent *domain.Parent) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE parents
		SET name = $1, phone = $2, address = $3, gender = $4, image_url = $5, updated_at = $6
		WHERE user_id = $7
	`, parent.Name, nullString(parent.Phone), nullString(parent.Address),
		nullString(parent.Gender), nullString(parent.ImageURL),
		parent.UpdatedAt, parent.UserID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrParentNotFound)
}

// DeleteByUserID implements store.ParentStore.DeleteByUserID.
func (s *PostgresParentStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM parents WHERE user_id = $1`, userID)
	return err
}

// WithTx implements store.ParentStore.WithTx.
func (s *PostgresParentStore) WithTx(tx *sql.Tx) store.ParentStore {
	return &PostgresParentStore{db: tx, logger: s.logger}
}
