package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/store"
)

// MockAppointmentStore implements store.AppointmentStore for testing.
type MockAppointmentStore struct {
	CreateFn       func(ctx context.Context, appt *domain.Appointment) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByUserFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error)
	ListByClinicFn func(ctx context.Context, clinicID uuid.UUID) ([]*domain.Appointment, error)
	UpdateFn       func(ctx context.Context, appt *domain.Appointment) error

	Appointments map[uuid.UUID]*domain.Appointment
}

var _ store.AppointmentStore = (*MockAppointmentStore)(nil)

func NewMockAppointmentStore() *MockAppointmentStore {
	return &MockAppointmentStore{Appointments: make(map[uuid.UUID]*domain.Appointment)}
}

func (m *MockAppointmentStore) Create(ctx context.Context, appt *domain.Appointment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, appt)
	}
	m.Appointments[appt.ID] = appt
	return nil
}

func (m *MockAppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	appt, ok := m.Appointments[id]
	if !ok {
		return nil, store.ErrAppointmentNotFound
	}
	return appt, nil
}

func (m *MockAppointmentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	appts := []*domain.Appointment{}
	for _, appt := range m.Appointments {
		if appt.UserID == userID {
			appts = append(appts, appt)
		}
	}
	return appts, nil
}

func (m *MockAppointmentStore) ListByClinic(ctx context.Context, clinicID uuid.UUID) ([]*domain.Appointment, error) {
	if m.ListByClinicFn != nil {
		return m.ListByClinicFn(ctx, clinicID)
	}
	appts := []*domain.Appointment{}
	for _, appt := range m.Appointments {
		if appt.ClinicID == clinicID {
			appts = append(appts, appt)
		}
	}
	return appts, nil
}

func (m *MockAppointmentStore) Update(ctx context.Context, appt *domain.Appointment) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, appt)
	}
	if _, ok := m.Appointments[appt.ID]; !ok {
		return store.ErrAppointmentNotFound
	}
	m.Appointments[appt.ID] = appt
	return nil
}

func (m *MockAppointmentStore) WithTx(tx *sql.Tx) store.AppointmentStore { return m }

// MockDoorstepStore implements store.DoorstepStore for testing.
type MockDoorstepStore struct {
	CreateFn     func(ctx context.Context, booking *domain.DoorstepBooking) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.DoorstepBooking, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.DoorstepBooking, error)
	UpdateFn     func(ctx context.Context, booking *domain.DoorstepBooking) error

	Bookings map[uuid.UUID]*domain.DoorstepBooking
}

var _ store.DoorstepStore = (*MockDoorstepStore)(nil)

func NewMockDoorstepStore() *MockDoorstepStore {
	return &MockDoorstepStore{Bookings: make(map[uuid.UUID]*domain.DoorstepBooking)}
}

func (m *MockDoorstepStore) Create(ctx context.Context, booking *domain.DoorstepBooking) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, booking)
	}
	m.Bookings[booking.ID] = booking
	return nil
}

func (m *MockDoorstepStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DoorstepBooking, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	booking, ok := m.Bookings[id]
	if !ok {
		return nil, store.ErrBookingNotFound
	}
	return booking, nil
}

func (m *MockDoorstepStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DoorstepBooking, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	bookings := []*domain.DoorstepBooking{}
	for _, booking := range m.Bookings {
		if booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (m *MockDoorstepStore) Update(ctx context.Context, booking *domain.DoorstepBooking) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, booking)
	}
	if _, ok := m.Bookings[booking.ID]; !ok {
		return store.ErrBookingNotFound
	}
	m.Bookings[booking.ID] = booking
	return nil
}

func (m *MockDoorstepStore) WithTx(tx *sql.Tx) store.DoorstepStore { return m }
