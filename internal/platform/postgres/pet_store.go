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

// PostgresPetStore implements store.PetStore. Free-form pet attributes
// live in a jsonb details column.
type PostgresPetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPetStore creates a pet store.
func NewPostgresPetStore(db store.DBTX, log *slog.Logger) *PostgresPetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresPetStore{
		db:     db,
		logger: log.With(slog.String("component", "pet_store")),
	}
}

var _ store.PetStore = (*PostgresPetStore)(nil)

// Create implements store.PetStore.Create.
func (s *PostgresPetStore) Create(ctx context.Context, pet *domain.Pet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := pet.Validate(); err != nil {
		return err
	}
	details, err := toJSON(pet.Details)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pets (id, user_id, name, species, breed, gender, date_of_birth, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, pet.ID, pet.UserID, pet.Name, pet.Species,
		nullString(pet.Breed), nullString(pet.Gender), nullTime(pet.DateOfBirth),
		details, pet.CreatedAt, pet.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create pet",
			slog.String("error", err.Error()),
			slog.String("pet_id", pet.ID.String()))
		return err
	}

	log.Info("pet registered",
		slog.String("pet_id", pet.ID.String()),
		slog.String("user_id", pet.UserID.String()))
	return nil
}

func scanPet(row interface{ Scan(...any) error }) (*domain.Pet, error) {
	var p domain.Pet
	var breed, gender sql.NullString
	var dob sql.NullTime
	var details []byte

	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Species, &breed, &gender, &dob,
		&details, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Breed = breed.String
	p.Gender = gender.String
	if dob.Valid {
		p.DateOfBirth = dob.Time
	}
	if err := fromJSON(details, &p.Details); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID implements store.PetStore.GetByID.
func (s *PostgresPetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	pet, err := scanPet(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, species, breed, gender, date_of_birth, details, created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

// ListByUser implements store.PetStore.ListByUser.
func (s *PostgresPetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, species, breed, gender, date_of_birth, details, created_at, updated_at
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var pets []*domain.Pet
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if pets == nil {
		pets = []*domain.Pet{}
	}
	return pets, nil
}

// Update implements store.PetStore.Update.
func (s *PostgresPetStore) Update(ctx context.Context, pet *domain.Pet) error {
	if err := pet.Validate(); err != nil {
		return err
	}
	details, err := toJSON(pet.Details)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE pets
		SET name = $1, species = $2, breed = $3, gender = $4, date_of_birth = $5, details = $6, updated_at = $7
		WHERE id = $8
	`, pet.Name, pet.Species, nullString(pet.Breed), nullString(pet.Gender),
		nullTime(pet.DateOfBirth), details, pet.UpdatedAt, pet.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrPetNotFound)
}

// Delete implements store.PetStore.Delete.
func (s *PostgresPetStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrPetNotFound)
}

// DeleteByUserID implements store.PetStore.DeleteByUserID.
func (s *PostgresPetStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pets WHERE user_id = $1`, userID)
	return err
}

// WithTx implements store.PetStore.WithTx.
func (s *PostgresPetStore) WithTx(tx *sql.Tx) store.PetStore {
	return &PostgresPetStore{db: tx, logger: s.logger}
}
