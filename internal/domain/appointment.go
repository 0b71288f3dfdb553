package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the lifecycle state of a clinic appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ErrAppointmentDateEmpty is returned when an appointment is booked without
// a date.
var ErrAppointmentDateEmpty = errors.New("appointment date is required")

// Appointment is a clinic visit booked by a pet parent, optionally pinned
// to a specific veterinarian at the clinic.
type Appointment struct {
	ID             uuid.UUID         `json:"id"`
	ClinicID       uuid.UUID         `json:"clinic_id"`
	VeterinarianID uuid.UUID         `json:"veterinarian_id,omitempty"`
	UserID         uuid.UUID         `json:"user_id"`
	PetName        string            `json:"pet_name"`
	PetType        string            `json:"pet_type,omitempty"`
	Breed          string            `json:"breed,omitempty"`
	Illness        string            `json:"illness,omitempty"`
	Date           time.Time         `json:"date"`
	BookingType    string            `json:"booking_type,omitempty"`
	ContactInfo    string            `json:"contact_info,omitempty"`
	PetPicURL      string            `json:"pet_pic_url,omitempty"`
	Status         AppointmentStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewAppointment creates a pending appointment.
func NewAppointment(clinicID, userID uuid.UUID, date time.Time) (*Appointment, error) {
	if date.IsZero() {
		return nil, ErrAppointmentDateEmpty
	}
	now := time.Now().UTC()
	return &Appointment{
		ID:        uuid.New(),
		ClinicID:  clinicID,
		UserID:    userID,
		Date:      date,
		Status:    AppointmentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
