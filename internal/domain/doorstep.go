package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a doorstep service booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in-progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// BookingAddress is the visit location for a doorstep service.
type BookingAddress struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
	Landmark string `json:"landmark,omitempty"`
}

// DoorstepBooking is an at-home service visit booked by a pet parent.
// Pricing fields are caller-supplied and stored as given.
type DoorstepBooking struct {
	ID                  uuid.UUID      `json:"id"`
	UserID              uuid.UUID      `json:"user_id"`
	ServiceType         string         `json:"service_type"`
	PetIDs              []uuid.UUID    `json:"pet_ids,omitempty"`
	ServicePartnerID    uuid.UUID      `json:"service_partner_id,omitempty"`
	ServicePartnerName  string         `json:"service_partner_name,omitempty"`
	AppointmentDate     time.Time      `json:"appointment_date"`
	TimeSlot            string         `json:"time_slot,omitempty"`
	Address             BookingAddress `json:"address"`
	IsEmergency         bool           `json:"is_emergency"`
	RepeatBooking       bool           `json:"repeat_booking"`
	SpecialInstructions string         `json:"special_instructions,omitempty"`
	PaymentMethod       string         `json:"payment_method,omitempty"`
	CouponCode          string         `json:"coupon_code,omitempty"`
	BasePrice           float64        `json:"base_price"`
	EmergencyCharge     float64        `json:"emergency_charge"`
	Discount            float64        `json:"discount"`
	TotalAmount         float64        `json:"total_amount"`
	Status              BookingStatus  `json:"status"`
	PaymentStatus       string         `json:"payment_status,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// NewDoorstepBooking creates a pending booking for the given user.
func NewDoorstepBooking(userID uuid.UUID, serviceType string, date time.Time) (*DoorstepBooking, error) {
	if serviceType == "" {
		return nil, fmt.Errorf("%w: service type is required", ErrValidation)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: appointment date is required", ErrValidation)
	}
	now := time.Now().UTC()
	return &DoorstepBooking{
		ID:              uuid.New(),
		UserID:          userID,
		ServiceType:     serviceType,
		AppointmentDate: date,
		Status:          BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Transition moves the booking to a new status. Terminal bookings cannot
// change state, and the target status must be one of the known values.
func (b *DoorstepBooking) Transition(to BookingStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown booking status %q", ErrValidation, to)
	}
	if b.Status.Terminal() {
		return fmt.Errorf("%w: booking is already %s", ErrConflict, b.Status)
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// CancelBy cancels the booking on behalf of the given user. Only the
// booking owner may cancel, and terminal bookings stay unchanged.
func (b *DoorstepBooking) CancelBy(userID uuid.UUID) error {
	if b.UserID != userID {
		return fmt.Errorf("%w: booking belongs to another user", ErrAuthorization)
	}
	return b.Transition(BookingCancelled)
}
