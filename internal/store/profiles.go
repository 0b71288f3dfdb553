package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
)

// ParentStore persists pet-parent profiles.
type ParentStore interface {
	Create(ctx context.Context, parent *domain.Parent) error

	// GetByUserID returns the parent profile linked to an account, or
	// ErrParentNotFound.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Parent, error)

	Update(ctx context.Context, parent *domain.Parent) error

	// DeleteByUserID removes the profile for the given account. Deleting a
	// nonexistent profile is not an error; account deletion calls this for
	// every profile type.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	WithTx(tx *sql.Tx) ParentStore
}

// PetStore persists registered pets.
type PetStore interface {
	Create(ctx context.Context, pet *domain.Pet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error)

	// ListByUser returns the user's pets, newest first. An empty result is
	// a non-nil empty slice.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error)

	Update(ctx context.Context, pet *domain.Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	WithTx(tx *sql.Tx) PetStore
}

// VeterinarianStore persists veterinarian professional profiles.
type VeterinarianStore interface {
	// Create saves a new profile. Returns ErrVetExists when the account
	// already has one or when the registration number is taken.
	Create(ctx context.Context, vet *domain.Veterinarian) error

	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Veterinarian, error)
	Update(ctx context.Context, vet *domain.Veterinarian) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	WithTx(tx *sql.Tx) VeterinarianStore
}

// ClinicStore persists clinic profiles.
type ClinicStore interface {
	// Create saves a new clinic. Returns ErrClinicExists when the account
	// already has one or when (clinic name, city) is taken.
	Create(ctx context.Context, clinic *domain.Clinic) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Clinic, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Clinic, error)

	// ListByVerified returns clinics filtered on the verification flag,
	// newest first.
	ListByVerified(ctx context.Context, verified bool) ([]*domain.Clinic, error)

	Update(ctx context.Context, clinic *domain.Clinic) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	WithTx(tx *sql.Tx) ClinicStore
}

// PetResortStore persists pet-resort profiles.
type PetResortStore interface {
	Create(ctx context.Context, resort *domain.PetResort) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PetResort, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PetResort, error)
	List(ctx context.Context, verifiedOnly bool) ([]*domain.PetResort, error)
	Update(ctx context.Context, resort *domain.PetResort) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	WithTx(tx *sql.Tx) PetResortStore
}

// ParavetStore persists paravet onboarding profiles.
type ParavetStore interface {
	// Create saves a new onboarding profile. Returns ErrParavetExists when
	// the account already has one.
	Create(ctx context.Context, profile *domain.ParavetProfile) error

	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.ParavetProfile, error)

	// GetByPhone finds the profile whose personal-info mobile number
	// matches. Used to flip OTP confirmation after a successful verify.
	GetByPhone(ctx context.Context, phone string) (*domain.ParavetProfile, error)

	// ListByApprovalStatus returns profiles in the given review state,
	// oldest submission first.
	ListByApprovalStatus(ctx context.Context, status domain.ApprovalStatus) ([]*domain.ParavetProfile, error)

	Update(ctx context.Context, profile *domain.ParavetProfile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	WithTx(tx *sql.Tx) ParavetStore
}
