package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements store.UserStore backed by PostgreSQL.
// Password hashing happens here so plaintext never crosses the storage
// boundary.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a user store with the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to the default.
func NewPostgresUserStore(db store.DBTX, bcryptCost int, log *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     log.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*PostgresUserStore)(nil)

const userColumns = `id, name, email, phone, role, hashed_password, is_admin, is_active,
	last_login_at, deleted_at, created_at, updated_at`

// scanUser reads a user row into a domain.User, converting nullable
// columns.
func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	var phone sql.NullString
	var lastLogin, deletedAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &phone, &u.Role, &u.HashedPassword,
		&u.IsAdmin, &u.IsActive, &lastLogin, &deletedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	if lastLogin.Valid {
		u.LastLoginAt = lastLogin.Time
	}
	if deletedAt.Valid {
		u.DeletedAt = deletedAt.Time
	}
	return &u, nil
}

// Create implements store.UserStore.Create.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return fmt.Errorf("hashing password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.Password = ""

	query := `
		INSERT INTO users (id, name, email, phone, role, hashed_password, is_admin, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, nullString(user.Phone), user.Role,
		user.HashedPassword, user.IsAdmin, user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate account for email and role",
				slog.String("email_domain", emailDomain(user.Email)),
				slog.String("role", string(user.Role)))
			return store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return nil
}

// GetByEmailAndRole implements store.UserStore.GetByEmailAndRole.
func (s *PostgresUserStore) GetByEmailAndRole(
	ctx context.Context,
	email string,
	role domain.Role,
) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 AND role = $2 AND deleted_at IS NULL
	`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, email, role))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByPhone implements store.UserStore.GetByPhone.
func (s *PostgresUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE phone = $1 AND deleted_at IS NULL AND is_active
		ORDER BY created_at DESC
		LIMIT 1
	`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update implements store.UserStore.Update. A set plaintext Password is
// re-hashed; otherwise the stored hash stands.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET name = $1, email = $2, phone = $3, role = $4, hashed_password = $5,
			is_admin = $6, is_active = $7, updated_at = $8
		WHERE id = $9 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query,
		user.Name, user.Email, nullString(user.Phone), user.Role,
		user.HashedPassword, user.IsAdmin, user.IsActive, user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}
	return requireRowsAffected(result, store.ErrUserNotFound)
}

// UpdateRole implements store.UserStore.UpdateRole.
func (s *PostgresUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET role = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`, role, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrUserNotFound)
}

// TouchLastLogin implements store.UserStore.TouchLastLogin.
func (s *PostgresUserStore) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET last_login_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, now, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrUserNotFound)
}

// SoftDelete implements store.UserStore.SoftDelete.
func (s *PostgresUserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET deleted_at = $1, is_active = FALSE, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`, now, id)
	if err != nil {
		log.Error("failed to soft delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}
	if err := requireRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}
	log.Info("user soft deleted", slog.String("user_id", id.String()))
	return nil
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
		logger:     s.logger,
	}
}
