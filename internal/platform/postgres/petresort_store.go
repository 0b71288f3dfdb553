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

// resortDoc is the jsonb shape of the resort's descriptive fields.
type resortDoc struct {
	BrandName    string               `json:"brand_name,omitempty"`
	LogoURL      string               `json:"logo_url,omitempty"`
	Address      string               `json:"address,omitempty"`
	ResortPhone  string               `json:"resort_phone,omitempty"`
	OwnerPhone   string               `json:"owner_phone,omitempty"`
	Services     []string             `json:"services,omitempty"`
	OpeningHours domain.ClinicTimings `json:"opening_hours,omitempty"`
	Notice       string               `json:"notice,omitempty"`
}

// PostgresPetResortStore implements store.PetResortStore.
type PostgresPetResortStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPetResortStore creates a pet resort store.
func NewPostgresPetResortStore(db store.DBTX, log *slog.Logger) *PostgresPetResortStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresPetResortStore{
		db:     db,
		logger: log.With(slog.String("component", "pet_resort_store")),
	}
}

var _ store.PetResortStore = (*PostgresPetResortStore)(nil)

func scanResort(row interface{ Scan(...any) error }) (*domain.PetResort, error) {
	var r domain.PetResort
	var details []byte

	err := row.Scan(&r.ID, &r.UserID, &r.ResortName, &details, &r.IsVerified, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	var doc resortDoc
	if err := fromJSON(details, &doc); err != nil {
		return nil, err
	}
	r.BrandName = doc.BrandName
	r.LogoURL = doc.LogoURL
	r.Address = doc.Address
	r.ResortPhone = doc.ResortPhone
	r.OwnerPhone = doc.OwnerPhone
	r.Services = doc.Services
	r.OpeningHours = doc.OpeningHours
	r.Notice = doc.Notice
	return &r, nil
}

func resortDetails(r *domain.PetResort) ([]byte, error) {
	return toJSON(resortDoc{
		BrandName:    r.BrandName,
		LogoURL:      r.LogoURL,
		Address:      r.Address,
		ResortPhone:  r.ResortPhone,
		OwnerPhone:   r.OwnerPhone,
		Services:     r.Services,
		OpeningHours: r.OpeningHours,
		Notice:       r.Notice,
	})
}

// Create implements store.PetResortStore.Create.
func (s *PostgresPetResortStore) Create(ctx context.Context, resort *domain.PetResort) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	details, err := resortDetails(resort)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pet_resorts (id, user_id, resort_name, details, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, resort.ID, resort.UserID, resort.ResortName, details,
		resort.IsVerified, resort.CreatedAt, resort.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrResortExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create pet resort",
			slog.String("error", err.Error()),
			slog.String("user_id", resort.UserID.String()))
		return err
	}
	return nil
}

// GetByID implements store.PetResortStore.GetByID.
func (s *PostgresPetResortStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PetResort, error) {
	resort, err := scanResort(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, resort_name, details, is_verified, created_at, updated_at
		FROM pet_resorts WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrResortNotFound
		}
		return nil, err
	}
	return resort, nil
}

// GetByUserID implements store.PetResortStore.GetByUserID.
func (s *PostgresPetResortStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PetResort, error) {
	resort, err := scanResort(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, resort_name, details, is_verified, created_at, updated_at
		FROM pet_resorts WHERE user_id = $1
	`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrResortNotFound
		}
		return nil, err
	}
	return resort, nil
}

// List implements store.PetResortStore.List.
func (s *PostgresPetResortStore) List(ctx context.Context, verifiedOnly bool) ([]*domain.PetResort, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, resort_name, details, is_verified, created_at, updated_at
		FROM pet_resorts
	`
	if verifiedOnly {
		query += ` WHERE is_verified`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var resorts []*domain.PetResort
	for rows.Next() {
		resort, err := scanResort(rows)
		if err != nil {
			return nil, err
		}
		resorts = append(resorts, resort)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if resorts == nil {
		resorts = []*domain.PetResort{}
	}
	return resorts, nil
}

// Update implements store.PetResortStore.Update.
func (s *PostgresPetResortStore) Update(ctx context.Context, resort *domain.PetResort) error {
	details, err := resortDetails(resort)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE pet_resorts
		SET resort_name = $1, details = $2, is_verified = $3, updated_at = $4
		WHERE id = $5
	`, resort.ResortName, details, resort.IsVerified, resort.UpdatedAt, resort.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrResortNotFound)
}

// DeleteByUserID implements store.PetResortStore.DeleteByUserID.
func (s *PostgresPetResortStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pet_resorts WHERE user_id = $1`, userID)
	return err
}

// WithTx implements store.PetResortStore.WithTx.
func (s *PostgresPetResortStore) WithTx(tx *sql.Tx) store.PetResortStore {
	return &PostgresPetResortStore{db: tx, logger: s.logger}
}
