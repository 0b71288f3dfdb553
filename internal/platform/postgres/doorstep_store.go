package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
)

// doorstepDoc is the jsonb shape of a booking's descriptive fields.
type doorstepDoc struct {
	PetIDs              []uuid.UUID           `json:"pet_ids,omitempty"`
	ServicePartnerID    uuid.UUID             `json:"service_partner_id,omitempty"`
	ServicePartnerName  string                `json:"service_partner_name,omitempty"`
	TimeSlot            string                `json:"time_slot,omitempty"`
	Address             domain.BookingAddress `json:"address"`
	IsEmergency         bool                  `json:"is_emergency"`
	RepeatBooking       bool                  `json:"repeat_booking"`
	SpecialInstructions string                `json:"special_instructions,omitempty"`
	PaymentMethod       string                `json:"payment_method,omitempty"`
	CouponCode          string                `json:"coupon_code,omitempty"`
	BasePrice           float64               `json:"base_price"`
	EmergencyCharge     float64               `json:"emergency_charge"`
	Discount            float64               `json:"discount"`
	PaymentStatus       string                `json:"payment_status,omitempty"`
}

// PostgresDoorstepStore implements store.DoorstepStore.
type PostgresDoorstepStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDoorstepStore creates a doorstep booking store.
func NewPostgresDoorstepStore(db store.DBTX, log *slog.Logger) *PostgresDoorstepStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresDoorstepStore{
		db:     db,
		logger: log.With(slog.String("component", "doorstep_store")),
	}
}

var _ store.DoorstepStore = (*PostgresDoorstepStore)(nil)

func bookingDoc(b *domain.DoorstepBooking) doorstepDoc {
	return doorstepDoc{
		PetIDs:              b.PetIDs,
		ServicePartnerID:    b.ServicePartnerID,
		ServicePartnerName:  b.ServicePartnerName,
		TimeSlot:            b.TimeSlot,
		Address:             b.Address,
		IsEmergency:         b.IsEmergency,
		RepeatBooking:       b.RepeatBooking,
		SpecialInstructions: b.SpecialInstructions,
		PaymentMethod:       b.PaymentMethod,
		CouponCode:          b.CouponCode,
		BasePrice:           b.BasePrice,
		EmergencyCharge:     b.EmergencyCharge,
		Discount:            b.Discount,
		PaymentStatus:       b.PaymentStatus,
	}
}

func applyBookingDoc(b *domain.DoorstepBooking, doc doorstepDoc) {
	b.PetIDs = doc.PetIDs
	b.ServicePartnerID = doc.ServicePartnerID
	b.ServicePartnerName = doc.ServicePartnerName
	b.TimeSlot = doc.TimeSlot
	b.Address = doc.Address
	b.IsEmergency = doc.IsEmergency
	b.RepeatBooking = doc.RepeatBooking
	b.SpecialInstructions = doc.SpecialInstructions
	b.PaymentMethod = doc.PaymentMethod
	b.CouponCode = doc.CouponCode
	b.BasePrice = doc.BasePrice
	b.EmergencyCharge = doc.EmergencyCharge
	b.Discount = doc.Discount
	b.PaymentStatus = doc.PaymentStatus
}

func scanBooking(row interface{ Scan(...any) error }) (*domain.DoorstepBooking, error) {
	var b domain.DoorstepBooking
	var details []byte

	err := row.Scan(
		&b.ID, &b.UserID, &b.ServiceType, &b.AppointmentDate, &b.TotalAmount,
		&b.Status, &details, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	var doc doorstepDoc
	if err := fromJSON(details, &doc); err != nil {
		return nil, err
	}
	applyBookingDoc(&b, doc)
	return &b, nil
}

// Create implements store.DoorstepStore.Create.
func (s *PostgresDoorstepStore) Create(ctx context.Context, booking *domain.DoorstepBooking) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	details, err := toJSON(bookingDoc(booking))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO doorstep_bookings (id, user_id, service_type, appointment_date, total_amount,
			status, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, booking.ID, booking.UserID, booking.ServiceType, booking.AppointmentDate,
		booking.TotalAmount, booking.Status, details,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		log.Error("failed to create doorstep booking",
			slog.String("error", err.Error()),
			slog.String("booking_id", booking.ID.String()))
		return err
	}

	log.Info("doorstep booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.String("service_type", booking.ServiceType))
	return nil
}

// GetByID implements store.DoorstepStore.GetByID.
func (s *PostgresDoorstepStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DoorstepBooking, error) {
	booking, err := scanBooking(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, service_type, appointment_date, total_amount, status, details, created_at, updated_at
		FROM doorstep_bookings
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// ListByUser implements store.DoorstepStore.ListByUser.
func (s *PostgresDoorstepStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DoorstepBooking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, service_type, appointment_date, total_amount, status, details, created_at, updated_at
		FROM doorstep_bookings
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

	var bookings []*domain.DoorstepBooking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*domain.DoorstepBooking{}
	}
	return bookings, nil
}

// Update implements store.DoorstepStore.Update.
func (s *PostgresDoorstepStore) Update(ctx context.Context, booking *domain.DoorstepBooking) error {
	details, err := toJSON(bookingDoc(booking))
	if err != nil {
		return err
	}
	booking.UpdatedAt = booking.UpdatedAt.UTC()
	if booking.UpdatedAt.IsZero() {
		booking.UpdatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE doorstep_bookings
		SET service_type = $1, appointment_date = $2, total_amount = $3, status = $4,
			details = $5, updated_at = $6
		WHERE id = $7
	`, booking.ServiceType, booking.AppointmentDate, booking.TotalAmount,
		booking.Status, details, booking.UpdatedAt, booking.ID,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result, store.ErrBookingNotFound)
}

// WithTx implements store.DoorstepStore.WithTx.
func (s *PostgresDoorstepStore) WithTx(tx *sql.Tx) store.DoorstepStore {
	return &PostgresDoorstepStore{db: tx, logger: s.logger}
}
