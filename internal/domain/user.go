package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Role identifies which marketplace profile an account is registered for.
// The same email may hold one account per role.
type Role string

const (
	RolePetParent    Role = "pet_parent"
	RoleVeterinarian Role = "veterinarian"
	RoleClinic       Role = "clinic"
	RoleParavet      Role = "paravet"

	// RoleVerifiedParavet is applied to a paravet account when an admin
	// approves its onboarding application.
	RoleVerifiedParavet Role = "verified_paravet"
)

// Valid reports whether r is a role accepted at registration time.
// RoleVerifiedParavet is excluded: it is only assigned by admin approval.
func (r Role) Valid() bool {
	switch r {
	case RolePetParent, RoleVeterinarian, RoleClinic, RoleParavet:
		return true
	}
	return false
}

// emailRegex is a simple pattern for basic email validation.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an account in the marketplace. A person may hold several
// accounts, one per role, under the same email address.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Role           Role      `json:"role"`
	Password       string    `json:"-"` // Plaintext, never persisted
	HashedPassword string    `json:"-"`
	IsAdmin        bool      `json:"-"`
	IsActive       bool      `json:"is_active"`
	LastLoginAt    time.Time `json:"last_login_at,omitempty"`
	DeletedAt      time.Time `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new, valid User with a generated ID and timestamps.
// The password is carried in plaintext only until the store hashes it.
func NewUser(name, email, phone, password string, role Role) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Role:      role,
		Password:  password,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks that the User satisfies the registration invariants.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrUserEmailEmpty
	}
	if !emailRegex.MatchString(u.Email) {
		return ErrUserEmailInvalid
	}
	if !u.Role.Valid() && u.Role != RoleVerifiedParavet {
		return ErrInvalidRole
	}
	// Password rules only apply while the plaintext is still present.
	if u.HashedPassword == "" {
		if u.Password == "" {
			return ErrUserPasswordEmpty
		}
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
	}
	return nil
}

// Deleted reports whether the account has been soft-deleted.
func (u *User) Deleted() bool {
	return !u.DeletedAt.IsZero()
}
