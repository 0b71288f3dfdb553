package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrResortNameEmpty is returned when a pet resort is registered without a
// name.
var ErrResortNameEmpty = errors.New("resort name cannot be empty")

// PetResort is the boarding-facility profile linked to a clinic account.
// Like clinics it carries a single verification flag, which admins may set
// and clear.
type PetResort struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	ResortName   string        `json:"resort_name"`
	BrandName    string        `json:"brand_name,omitempty"`
	LogoURL      string        `json:"logo_url,omitempty"`
	Address      string        `json:"address,omitempty"`
	ResortPhone  string        `json:"resort_phone,omitempty"`
	OwnerPhone   string        `json:"owner_phone,omitempty"`
	Services     []string      `json:"services,omitempty"`
	OpeningHours ClinicTimings `json:"opening_hours,omitempty"`
	Notice       string        `json:"notice,omitempty"`
	IsVerified   bool          `json:"is_verified"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewPetResort creates an unverified resort profile.
func NewPetResort(userID uuid.UUID, resortName string) (*PetResort, error) {
	if resortName == "" {
		return nil, ErrResortNameEmpty
	}
	now := time.Now().UTC()
	return &PetResort{
		ID:         uuid.New(),
		UserID:     userID,
		ResortName: resortName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
