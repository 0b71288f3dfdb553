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

// PostgresParavetStore implements store.ParavetStore. Each field group is
// its own jsonb column; the review state is kept in plain columns so the
// admin queue can filter on it, and the mobile number is duplicated into a
// column for the OTP confirmation lookup.
type PostgresParavetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresParavetStore creates a paravet profile store.
func NewPostgresParavetStore(db store.DBTX, log *slog.Logger) *PostgresParavetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresParavetStore{
		db:     db,
		logger: log.With(slog.String("component", "paravet_store")),
	}
}

var _ store.ParavetStore = (*PostgresParavetStore)(nil)

const paravetColumns = `id, user_id, personal_info, documents, experience, payment_info,
	compliance, training, current_step, completion_percentage, submitted, submitted_at,
	approval_status, rejection_reason, approved_at, approved_by_admin, is_active,
	created_at, updated_at`

// paravetGroups marshals the six jsonb field groups.
func paravetGroups(p *domain.ParavetProfile) (personal, documents, experience, payment, compliance, training []byte, err error) {
	if personal, err = toJSON(p.PersonalInfo); err != nil {
		return
	}
	if documents, err = toJSON(p.Documents); err != nil {
		return
	}
	if experience, err = toJSON(p.Experience); err != nil {
		return
	}
	if payment, err = toJSON(p.PaymentInfo); err != nil {
		return
	}
	if compliance, err = toJSON(p.Compliance); err != nil {
		return
	}
	training, err = toJSON(p.Training)
	return
}

func scanParavet(row interface{ Scan(...any) error }) (*domain.ParavetProfile, error) {
	var p domain.ParavetProfile
	var personal, documents, experience, payment, compliance, training []byte
	var submittedAt, approvedAt sql.NullTime
	var rejectionReason sql.NullString
	var approvedBy uuid.NullUUID

	err := row.Scan(
		&p.ID, &p.UserID, &personal, &documents, &experience, &payment,
		&compliance, &training, &p.CurrentStep, &p.CompletionPercentage,
		&p.Submitted, &submittedAt, &p.ApprovalStatus, &rejectionReason,
		&approvedAt, &approvedBy, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(personal, &p.PersonalInfo); err != nil {
		return nil, err
	}
	if err := fromJSON(documents, &p.Documents); err != nil {
		return nil, err
	}
	if err := fromJSON(experience, &p.Experience); err != nil {
		return nil, err
	}
	if err := fromJSON(payment, &p.PaymentInfo); err != nil {
		return nil, err
	}
	if err := fromJSON(compliance, &p.Compliance); err != nil {
		return nil, err
	}
	if err := fromJSON(training, &p.Training); err != nil {
		return nil, err
	}
	if submittedAt.Valid {
		p.SubmittedAt = submittedAt.Time
	}
	if approvedAt.Valid {
		p.ApprovedAt = approvedAt.Time
	}
	if approvedBy.Valid {
		p.ApprovedByAdmin = approvedBy.UUID
	}
	p.RejectionReason = rejectionReason.String
	return &p, nil
}

// Create implements store.ParavetStore.Create.
func (s *PostgresParavetStore) Create(ctx context.Context, profile *domain.ParavetProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	personal, documents, experience, payment, compliance, training, err := paravetGroups(profile)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO paravet_profiles (id, user_id, phone, personal_info, documents, experience,
			payment_info, compliance, training, current_step, completion_percentage, submitted,
			submitted_at, approval_status, rejection_reason, approved_at, approved_by_admin,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`, profile.ID, profile.UserID, nullString(profile.PersonalInfo.MobileNumber.Value),
		personal, documents, experience, payment, compliance, training,
		profile.CurrentStep, profile.CompletionPercentage, profile.Submitted,
		nullTime(profile.SubmittedAt), profile.ApprovalStatus,
		nullString(profile.RejectionReason), nullTime(profile.ApprovedAt),
		nullUUID(profile.ApprovedByAdmin), profile.IsActive,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrParavetExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create paravet profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	log.Info("paravet profile created",
		slog.String("user_id", profile.UserID.String()),
		slog.String("approval_status", string(profile.ApprovalStatus)))
	return nil
}

// GetByUserID implements store.ParavetStore.GetByUserID.
func (s *PostgresParavetStore) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.ParavetProfile, error) {
	profile, err := scanParavet(s.db.QueryRowContext(ctx,
		`SELECT `+paravetColumns+` FROM paravet_profiles WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrParavetNotFound
		}
		return nil, err
	}
	return profile, nil
}

// GetByPhone implements store.ParavetStore.GetByPhone.
func (s *PostgresParavetStore) GetByPhone(ctx context.Context, phone string) (*domain.ParavetProfile, error) {
	profile, err := scanParavet(s.db.QueryRowContext(ctx, `
		SELECT `+paravetColumns+`
		FROM paravet_profiles
		WHERE phone = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrParavetNotFound
		}
		return nil, err
	}
	return profile, nil
}

// ListByApprovalStatus implements store.ParavetStore.ListByApprovalStatus.
func (s *PostgresParavetStore) ListByApprovalStatus(
	ctx context.Context,
	status domain.ApprovalStatus,
) ([]*domain.ParavetProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+paravetColumns+`
		FROM paravet_profiles
		WHERE approval_status = $1
		ORDER BY submitted_at ASC NULLS LAST, created_at ASC
	`, status)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var profiles []*domain.ParavetProfile
	for rows.Next() {
		profile, err := scanParavet(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []*domain.ParavetProfile{}
	}
	return profiles, nil
}

// Update implements store.ParavetStore.Update.
func (s *PostgresParavetStore) Update(ctx context.Context, profile *domain.ParavetProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	personal, documents, experience, payment, compliance, training, err := paravetGroups(profile)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE paravet_profiles
		SET phone = $1, personal_info = $2, documents = $3, experience = $4,
			payment_info = $5, compliance = $6, training = $7, current_step = $8,
			completion_percentage = $9, submitted = $10, submitted_at = $11,
			approval_status = $12, rejection_reason = $13, approved_at = $14,
			approved_by_admin = $15, is_active = $16, updated_at = $17
		WHERE user_id = $18
	`, nullString(profile.PersonalInfo.MobileNumber.Value),
		personal, documents, experience, payment, compliance, training,
		profile.CurrentStep, profile.CompletionPercentage, profile.Submitted,
		nullTime(profile.SubmittedAt), profile.ApprovalStatus,
		nullString(profile.RejectionReason), nullTime(profile.ApprovedAt),
		nullUUID(profile.ApprovedByAdmin), profile.IsActive, profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		log.Error("failed to update paravet profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}
	return requireRowsAffected(result, store.ErrParavetNotFound)
}

// DeleteByUserID implements store.ParavetStore.DeleteByUserID.
func (s *PostgresParavetStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM paravet_profiles WHERE user_id = $1`, userID)
	return err
}

// WithTx implements store.ParavetStore.WithTx.
func (s *PostgresParavetStore) WithTx(tx *sql.Tx) store.ParavetStore {
	return &PostgresParavetStore{db: tx, logger: s.logger}
}
