// Package booking implements clinic appointments and doorstep service
// bookings.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/platform/logger"
	"github.com/vetician/vetician-api/internal/store"
)

// AppointmentInput is the booking payload for a clinic visit.
type AppointmentInput struct {
	ClinicID       uuid.UUID
	VeterinarianID uuid.UUID
	PetName        string
	PetType        string
	Breed          string
	Illness        string
	Date           time.Time
	BookingType    string
	ContactInfo    string
	PetPicURL      string
}

// AppointmentDetail denormalizes an appointment with the clinic and
// veterinarian names the client renders.
type AppointmentDetail struct {
	Appointment      *domain.Appointment `json:"appointment"`
	ClinicName       string              `json:"clinic_name"`
	ClinicCity       string              `json:"clinic_city"`
	VeterinarianName string              `json:"veterinarian_name,omitempty"`
}

// DoorstepInput is the doorstep booking payload. Pricing figures are
// stored as supplied.
type DoorstepInput struct {
	ServiceType         string
	PetIDs              []uuid.UUID
	ServicePartnerID    uuid.UUID
	ServicePartnerName  string
	AppointmentDate     time.Time
	TimeSlot            string
	Address             domain.BookingAddress
	IsEmergency         bool
	RepeatBooking       bool
	SpecialInstructions string
	PaymentMethod       string
	CouponCode          string
	BasePrice           float64
	EmergencyCharge     float64
	Discount            float64
	TotalAmount         float64
	PaymentStatus       string
}

// Service coordinates the booking stores.
type Service struct {
	appointments store.AppointmentStore
	doorstep     store.DoorstepStore
	clinics      store.ClinicStore
	vets         store.VeterinarianStore
	logger       *slog.Logger
}

// NewService wires a booking service.
func NewService(
	appointments store.AppointmentStore,
	doorstep store.DoorstepStore,
	clinics store.ClinicStore,
	vets store.VeterinarianStore,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		appointments: appointments,
		doorstep:     doorstep,
		clinics:      clinics,
		vets:         vets,
		logger:       log.With(slog.String("component", "booking_service")),
	}
}

// CreateAppointment books a clinic visit. The clinic must exist; a pinned
// veterinarian, when given, must exist too.
func (s *Service) CreateAppointment(ctx context.Context, userID uuid.UUID, in AppointmentInput) (*AppointmentDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clinic, err := s.clinics.GetByID(ctx, in.ClinicID)
	if err != nil {
		if errors.Is(err, store.ErrClinicNotFound) {
			return nil, fmt.Errorf("%w: clinic not found", domain.ErrNotFound)
		}
		return nil, err
	}

	var vetName string
	if in.VeterinarianID != uuid.Nil {
		vet, err := s.vets.GetByUserID(ctx, in.VeterinarianID)
		if err != nil {
			if errors.Is(err, store.ErrVetNotFound) {
				return nil, fmt.Errorf("%w: veterinarian not found", domain.ErrNotFound)
			}
			return nil, err
		}
		vetName = vet.Name.Value
	}

	appt, err := domain.NewAppointment(in.ClinicID, userID, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	appt.VeterinarianID = in.VeterinarianID
	appt.PetName = in.PetName
	appt.PetType = in.PetType
	appt.Breed = in.Breed
	appt.Illness = in.Illness
	appt.BookingType = in.BookingType
	appt.ContactInfo = in.ContactInfo
	appt.PetPicURL = in.PetPicURL

	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	log.Info("appointment created",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("clinic_id", clinic.ID.String()))
	return &AppointmentDetail{
		Appointment:      appt,
		ClinicName:       clinic.ClinicName,
		ClinicCity:       clinic.City,
		VeterinarianName: vetName,
	}, nil
}

// ListAppointmentsByUser returns a user's appointments.
func (s *Service) ListAppointmentsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	return s.appointments.ListByUser(ctx, userID)
}

// ListAppointmentsByClinic returns a clinic's appointments.
func (s *Service) ListAppointmentsByClinic(ctx context.Context, clinicID uuid.UUID) ([]*domain.Appointment, error) {
	return s.appointments.ListByClinic(ctx, clinicID)
}

// CreateDoorstepBooking books an at-home service visit.
func (s *Service) CreateDoorstepBooking(ctx context.Context, userID uuid.UUID, in DoorstepInput) (*domain.DoorstepBooking, error) {
	booking, err := domain.NewDoorstepBooking(userID, in.ServiceType, in.AppointmentDate)
	if err != nil {
		return nil, err
	}
	booking.PetIDs = in.PetIDs
	booking.ServicePartnerID = in.ServicePartnerID
	booking.ServicePartnerName = in.ServicePartnerName
	booking.TimeSlot = in.TimeSlot
	booking.Address = in.Address
	booking.IsEmergency = in.IsEmergency
	booking.RepeatBooking = in.RepeatBooking
	booking.SpecialInstructions = in.SpecialInstructions
	booking.PaymentMethod = in.PaymentMethod
	booking.CouponCode = in.CouponCode
	booking.BasePrice = in.BasePrice
	booking.EmergencyCharge = in.EmergencyCharge
	booking.Discount = in.Discount
	booking.TotalAmount = in.TotalAmount
	booking.PaymentStatus = in.PaymentStatus

	if err := s.doorstep.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetDoorstepBooking returns one booking by ID.
func (s *Service) GetDoorstepBooking(ctx context.Context, id uuid.UUID) (*domain.DoorstepBooking, error) {
	booking, err := s.doorstep.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking not found", domain.ErrNotFound)
		}
		return nil, err
	}
	return booking, nil
}

// ListDoorstepBookings returns the user's bookings, newest first.
func (s *Service) ListDoorstepBookings(ctx context.Context, userID uuid.UUID) ([]*domain.DoorstepBooking, error) {
	return s.doorstep.ListByUser(ctx, userID)
}

// UpdateDoorstepStatus transitions a booking to a new status.
func (s *Service) UpdateDoorstepStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (*domain.DoorstepBooking, error) {
	booking, err := s.GetDoorstepBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := booking.Transition(status); err != nil {
		return nil, err
	}
	if err := s.doorstep.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelDoorstepBooking cancels a booking on behalf of its owner.
func (s *Service) CancelDoorstepBooking(ctx context.Context, id, userID uuid.UUID) (*domain.DoorstepBooking, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	booking, err := s.GetDoorstepBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := booking.CancelBy(userID); err != nil {
		return nil, err
	}
	if err := s.doorstep.Update(ctx, booking); err != nil {
		return nil, err
	}

	log.Info("doorstep booking cancelled",
		slog.String("booking_id", booking.ID.String()))
	return booking, nil
}
