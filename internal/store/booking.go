package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
)

// AppointmentStore persists clinic appointments.
type AppointmentStore interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error)
	ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	WithTx(tx *sql.Tx) AppointmentStore
}

// DoorstepStore persists doorstep service bookings.
type DoorstepStore interface {
	Create(ctx context.Context, booking *domain.DoorstepBooking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DoorstepBooking, error)

	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DoorstepBooking, error)

	Update(ctx context.Context, booking *domain.DoorstepBooking) error
	WithTx(tx *sql.Tx) DoorstepStore
}
