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

// PostgresClinicStore implements store.ClinicStore.
type PostgresClinicStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresClinicStore creates a clinic store.
func NewPostgresClinicStore(db store.DBTX, log *slog.Logger) *PostgresClinicStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresClinicStore{
		db:     db,
		logger: log.With(slog.String("component", "clinic_store")),
	}
}

var _ store.ClinicStore = (*PostgresClinicStore)(nil)

const clinicColumns = `id, user_id, clinic_name, city, locality, street_address,
	establishment_type, fees, timings, verified, is_active, created_at, updated_at`

func scanClinic(row interface{ Scan(...any) error }) (*domain.Clinic, error) {
	var c domain.Clinic
	var locality, street, estType sql.NullString
	var fees sql.NullInt64
	var timings []byte

	err := row.Scan(
		&c.ID, &c.UserID, &c.ClinicName, &c.City, &locality, &street,
		&estType, &fees, &timings, &c.Verified, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Locality = locality.String
	c.StreetAddress = street.String
	c.EstablishmentType = estType.String
	c.Fees = int(fees.Int64)
	if err := fromJSON(timings, &c.Timings); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create implements store.ClinicStore.Create.
func (s *PostgresClinicStore) Create(ctx context.Context, clinic *domain.Clinic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	timings, err := toJSON(clinic.Timings)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clinics (id, user_id, clinic_name, city, locality, street_address,
			establishment_type, fees, timings, verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, clinic.ID, clinic.UserID, clinic.ClinicName, clinic.City,
		nullString(clinic.Locality), nullString(clinic.StreetAddress),
		nullString(clinic.EstablishmentType), clinic.Fees, timings,
		clinic.Verified, clinic.IsActive, clinic.CreatedAt, clinic.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate clinic registration",
				slog.String("user_id", clinic.UserID.String()),
				slog.String("city", clinic.City))
			return store.ErrClinicExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create clinic",
			slog.String("error", err.Error()),
			slog.String("user_id", clinic.UserID.String()))
		return err
	}

	log.Info("clinic registered",
		slog.String("clinic_id", clinic.ID.String()),
		slog.String("city", clinic.City))
	return nil
}

// GetByID implements store.ClinicStore.GetByID.
func (s *PostgresClinicStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Clinic, error) {
	clinic, err := scanClinic(s.db.QueryRowContext(ctx,
		`SELECT `+clinicColumns+` FROM clinics WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClinicNotFound
		}
		return nil, err
	}
	return clinic, nil
}

// GetByUserID implements store.ClinicStore.GetByUserID.
func (s *PostgresClinicStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Clinic, error) {
	clinic, err := scanClinic(s.db.QueryRowContext(ctx,
		`SELECT `+clinicColumns+` FROM clinics WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrClinicNotFound
		}
		return nil, err
	}
	return clinic, nil
}

// ListByVerified implements store.ClinicStore.ListByVerified.
func (s *PostgresClinicStore) ListByVerified(ctx context.Context, verified bool) ([]*domain.Clinic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+clinicColumns+`
		FROM clinics
		WHERE verified = $1 AND is_active
		ORDER BY created_at DESC
	`, verified)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var clinics []*domain.Clinic
	for rows.Next() {
		clinic, err := scanClinic(rows)
		if err != nil {
			return nil, err
		}
		clinics = append(clinics, clinic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if clinics == nil {
		clinics = []*domain.Clinic{}
	}
	return clinics, nil
}

// Update implements store.ClinicStore.Update.
func (s *PostgresClinicStore) Update(ctx context.Context, clinic *domain.Clinic) error {
	timings, err := toJSON(clinic.Timings)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE clinics
		SET clinic_name = $1, city = $2, locality = $3, street_address = $4,
			establishment_type = $5, fees = $6, timings = $7, verified = $8,
			is_active = $9, updated_at = $10
		WHERE id = $11
	`, clinic.ClinicName, clinic.City, nullString(clinic.Locality),
		nullString(clinic.StreetAddress), nullString(clinic.EstablishmentType),
		clinic.Fees, timings, clinic.Verified, clinic.IsActive,
		clinic.UpdatedAt, clinic.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrClinicExists
		}
		return err
	}
	return requireRowsAffected(result, store.ErrClinicNotFound)
}

// DeleteByUserID implements store.ClinicStore.DeleteByUserID.
func (s *PostgresClinicStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clinics WHERE user_id = $1`, userID)
	return err
}

// WithTx implements store.ClinicStore.WithTx.
func (s *PostgresClinicStore) WithTx(tx *sql.Tx) store.ClinicStore {
	return &PostgresClinicStore{db: tx, logger: s.logger}
}
