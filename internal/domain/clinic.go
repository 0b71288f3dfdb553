package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Clinic validation errors.
var (
	ErrClinicNameEmpty = errors.New("clinic name cannot be empty")
	ErrClinicCityEmpty = errors.New("clinic city cannot be empty")
)

// ClinicTimings describes the weekly opening schedule, keyed by lowercase
// weekday name.
type ClinicTimings map[string]DaySchedule

// DaySchedule is a single day's opening window.
type DaySchedule struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// Clinic is the establishment profile linked to a clinic account. Unlike
// veterinarians and paravets it is verified as a whole, with a single flag.
type Clinic struct {
	ID                uuid.UUID     `json:"id"`
	UserID            uuid.UUID     `json:"user_id"`
	ClinicName        string        `json:"clinic_name"`
	City              string        `json:"city"`
	Locality          string        `json:"locality,omitempty"`
	StreetAddress     string        `json:"street_address,omitempty"`
	EstablishmentType string        `json:"establishment_type,omitempty"`
	Fees              int           `json:"fees,omitempty"`
	Timings           ClinicTimings `json:"timings,omitempty"`
	Verified          bool          `json:"verified"`
	IsActive          bool          `json:"is_active"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewClinic creates an unverified clinic profile.
func NewClinic(userID uuid.UUID, name, city, locality, street, establishmentType string, fees int, timings ClinicTimings) (*Clinic, error) {
	if name == "" {
		return nil, ErrClinicNameEmpty
	}
	if city == "" {
		return nil, ErrClinicCityEmpty
	}
	now := time.Now().UTC()
	return &Clinic{
		ID:                uuid.New(),
		UserID:            userID,
		ClinicName:        name,
		City:              city,
		Locality:          locality,
		StreetAddress:     street,
		EstablishmentType: establishmentType,
		Fees:              fees,
		Timings:           timings,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
