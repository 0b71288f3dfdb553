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

// PostgresAppointmentStore implements store.AppointmentStore.
type PostgresAppointmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAppointmentStore creates an appointment store.
func NewPostgresAppointmentStore(db store.DBTX, log *slog.Logger) *PostgresAppointmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresAppointmentStore{
		db:     db,
		logger: log.With(slog.String("component", "appointment_store")),
	}
}

var _ store.AppointmentStore = (*PostgresAppointmentStore)(nil)

const appointmentColumns = `id, clinic_id, veterinarian_id, user_id, pet_name, pet_type,
	breed, illness, date, booking_type, contact_info, pet_pic_url, status, created_at, updated_at`

func scanAppointment(row interface{ Scan(...any) error }) (*domain.Appointment, error) {
	var a domain.Appointment
	var vetID uuid.NullUUID
	var petType, breed, illness, bookingType, contactInfo, petPic sql.NullString

	err := row.Scan(
		&a.ID, &a.ClinicID, &vetID, &a.UserID, &a.PetName, &petType,
		&breed, &illness, &a.Date, &bookingType, &contactInfo, &petPic,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if vetID.Valid {
		a.VeterinarianID = vetID.UUID
	}
	a.PetType = petType.String
	a.Breed = breed.String
	a.Illness = illness.String
	a.BookingType = bookingType.String
	a.ContactInfo = contactInfo.String
	a.PetPicURL = petPic.String
	return &a, nil
}

// Create implements store.AppointmentStore.Create.
func (s *PostgresAppointmentStore) Create(ctx context.Context, appt *domain.Appointment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	vetID := uuid.NullUUID{UUID: appt.VeterinarianID, Valid: appt.VeterinarianID != uuid.Nil}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (id, clinic_id, veterinarian_id, user_id, pet_name, pet_type,
			breed, illness, date, booking_type, contact_info, pet_pic_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, appt.ID, appt.ClinicID, vetID, appt.UserID, appt.PetName,
		nullString(appt.PetType), nullString(appt.Breed), nullString(appt.Illness),
		appt.Date, nullString(appt.BookingType), nullString(appt.ContactInfo),
		nullString(appt.PetPicURL), appt.Status, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrClinicNotFound
		}
		log.Error("failed to create appointment",
			slog.String("error", err.Error()),
			slog.String("appointment_id", appt.ID.String()))
		return err
	}

	log.Info("appointment booked",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("clinic_id", appt.ClinicID.String()))
	return nil
}

// GetByID implements store.AppointmentStore.GetByID.
func (s *PostgresAppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	appt, err := scanAppointment(s.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAppointmentNotFound
		}
		return nil, err
	}
	return appt, nil
}

func (s *PostgresAppointmentStore) list(ctx context.Context, where string, arg any) ([]*domain.Appointment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE `+where+` ORDER BY date DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var appts []*domain.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if appts == nil {
		appts = []*domain.Appointment{}
	}
	return appts, nil
}

// ListByUser implements store.AppointmentStore.ListByUser.
func (s *PostgresAppointmentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	return s.list(ctx, "user_id = $1", userID)
}

// ListByClinic implements store.AppointmentStore.ListByClinic.
func (s *PostgresAppointmentStore) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*domain.Appointment, error) {
	return s.list(ctx, "clinic_id = $1", clinicID)
}

// Update implements store.AppointmentStore.Update.
func (s *PostgresAppointmentStore) Update(ctx context.Context, appt *domain.Appointment) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE appointments
		SET status = $1, date = $2, updated_at = $3
		WHERE id = $4
	`, appt.Status, appt.Date, appt.UpdatedAt, appt.ID)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrAppointmentNotFound)
}

// WithTx implements store.AppointmentStore.WithTx.
func (s *PostgresAppointmentStore) WithTx(tx *sql.Tx) store.AppointmentStore {
	return &PostgresAppointmentStore{db: tx, logger: s.logger}
}
