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

// vetProfileDoc is the jsonb shape of the wrapped verification fields.
type vetProfileDoc struct {
	Name               domain.VerifiedField `json:"name"`
	Title              domain.VerifiedField `json:"title"`
	Gender             domain.VerifiedField `json:"gender"`
	City               domain.VerifiedField `json:"city"`
	Experience         domain.VerifiedInt   `json:"experience"`
	Specialization     domain.VerifiedField `json:"specialization"`
	Qualification      domain.VerifiedField `json:"qualification"`
	RegistrationNumber domain.VerifiedField `json:"registration_number"`
	IdentityProof      domain.VerifiedField `json:"identity_proof"`
	ProfilePhotoURL    domain.VerifiedField `json:"profile_photo_url"`
}

// PostgresVeterinarianStore implements store.VeterinarianStore. The
// wrapped verification fields are one jsonb document; the registration
// number is duplicated into a unique column so the database enforces the
// no-duplicate-registration rule.
type PostgresVeterinarianStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVeterinarianStore creates a veterinarian store.
func NewPostgresVeterinarianStore(db store.DBTX, log *slog.Logger) *PostgresVeterinarianStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresVeterinarianStore{
		db:     db,
		logger: log.With(slog.String("component", "veterinarian_store")),
	}
}

var _ store.VeterinarianStore = (*PostgresVeterinarianStore)(nil)

func vetDoc(v *domain.Veterinarian) vetProfileDoc {
	return vetProfileDoc{
		Name:               v.Name,
		Title:              v.Title,
		Gender:             v.Gender,
		City:               v.City,
		Experience:         v.Experience,
		Specialization:     v.Specialization,
		Qualification:      v.Qualification,
		RegistrationNumber: v.RegistrationNumber,
		IdentityProof:      v.IdentityProof,
		ProfilePhotoURL:    v.ProfilePhotoURL,
	}
}

func applyVetDoc(v *domain.Veterinarian, doc vetProfileDoc) {
	v.Name = doc.Name
	v.Title = doc.Title
	v.Gender = doc.Gender
	v.City = doc.City
	v.Experience = doc.Experience
	v.Specialization = doc.Specialization
	v.Qualification = doc.Qualification
	v.RegistrationNumber = doc.RegistrationNumber
	v.IdentityProof = doc.IdentityProof
	v.ProfilePhotoURL = doc.ProfilePhotoURL
}

// Create implements store.VeterinarianStore.Create.
func (s *PostgresVeterinarianStore) Create(ctx context.Context, vet *domain.Veterinarian) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := toJSON(vetDoc(vet))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO veterinarians (id, user_id, registration_number, profile, is_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, vet.ID, vet.UserID, vet.RegistrationNumber.Value, profile,
		vet.IsVerified, vet.IsActive, vet.CreatedAt, vet.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate veterinarian registration",
				slog.String("user_id", vet.UserID.String()))
			return store.ErrVetExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create veterinarian profile",
			slog.String("error", err.Error()),
			slog.String("user_id", vet.UserID.String()))
		return err
	}

	log.Info("veterinarian profile created",
		slog.String("user_id", vet.UserID.String()))
	return nil
}

// GetByUserID implements store.VeterinarianStore.GetByUserID.
func (s *PostgresVeterinarianStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Veterinarian, error) {
	var v domain.Veterinarian
	var profile []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, profile, is_verified, is_active, created_at, updated_at
		FROM veterinarians
		WHERE user_id = $1
	`, userID).Scan(&v.ID, &v.UserID, &profile, &v.IsVerified, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVetNotFound
		}
		return nil, err
	}

	var doc vetProfileDoc
	if err := fromJSON(profile, &doc); err != nil {
		return nil, err
	}
	applyVetDoc(&v, doc)
	return &v, nil
}

// Update implements store.VeterinarianStore.Update.
func (s *PostgresVeterinarianStore) Update(ctx context.Context, vet *domain.Veterinarian) error {
	profile, err := toJSON(vetDoc(vet))
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE veterinarians
		SET registration_number = $1, profile = $2, is_verified = $3, is_active = $4, updated_at = $5
		WHERE user_id = $6
	`, vet.RegistrationNumber.Value, profile, vet.IsVerified, vet.IsActive,
		vet.UpdatedAt, vet.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrVetExists
		}
		return err
	}
	return requireRowsAffected(result, store.ErrVetNotFound)
}

// DeleteByUserID implements store.VeterinarianStore.DeleteByUserID.
func (s *PostgresVeterinarianStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM veterinarians WHERE user_id = $1`, userID)
	return err
}

// WithTx implements store.VeterinarianStore.WithTx.
func (s *PostgresVeterinarianStore) WithTx(tx *sql.Tx) store.VeterinarianStore {
	return &PostgresVeterinarianStore{db: tx, logger: s.logger}
}
