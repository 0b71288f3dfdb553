package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
)

// UserStore defines the persistence operations for accounts.
type UserStore interface {
	// Create saves a new user. The plaintext Password is hashed before
	// storage and cleared from the struct. Returns ErrEmailExists when an
	// account already holds the same (email, role) pair.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmailAndRole retrieves the account for an email under a specific
	// role. Soft-deleted accounts are excluded. Returns ErrUserNotFound
	// when absent.
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)

	// GetByID retrieves an account by ID, excluding soft-deleted rows.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByPhone retrieves the most recently created active account with
	// the given phone number. Used by the OTP login flow.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)

	// Update persists changes to an existing account. If Password is set
	// it is re-hashed; otherwise the stored hash is kept.
	Update(ctx context.Context, user *domain.User) error

	// UpdateRole changes only the role of the given account.
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error

	// TouchLastLogin records a successful login time.
	TouchLastLogin(ctx context.Context, id uuid.UUID) error

	// SoftDelete marks the account deleted without removing the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}

// RefreshTokenStore persists issued refresh tokens so rotation and logout
// can be enforced server-side.
type RefreshTokenStore interface {
	// Save records a newly issued refresh token hash for a user.
	Save(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error

	// Consume atomically deletes the row for the given token hash and
	// returns its user ID. Returns ErrTokenNotFound when the token was
	// never issued or has already been consumed, which serializes
	// concurrent rotation attempts on the same token.
	Consume(ctx context.Context, tokenHash string) (uuid.UUID, error)

	// DeleteAllForUser removes every refresh token for the user.
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a RefreshTokenStore bound to the given transaction.
	WithTx(tx *sql.Tx) RefreshTokenStore
}
