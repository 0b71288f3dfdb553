package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Pet validation errors.
var (
	ErrPetNameEmpty    = errors.New("pet name cannot be empty")
	ErrPetSpeciesEmpty = errors.New("pet species cannot be empty")
)

// PetDetails holds the free-form attributes of a pet. Stored as a JSON
// document alongside the queryable columns.
type PetDetails struct {
	WeightKg  float64  `json:"weight_kg,omitempty"`
	Color     string   `json:"color,omitempty"`
	Allergies []string `json:"allergies,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	PhotoURL  string   `json:"photo_url,omitempty"`
}

// Pet is an animal registered by a pet parent.
type Pet struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	DateOfBirth time.Time  `json:"date_of_birth,omitempty"`
	Details     PetDetails `json:"details"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewPet creates a valid Pet owned by the given user.
func NewPet(userID uuid.UUID, name, species, breed, gender string, dob time.Time, details PetDetails) (*Pet, error) {
	now := time.Now().UTC()
	p := &Pet{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Species:     species,
		Breed:       breed,
		Gender:      gender,
		DateOfBirth: dob,
		Details:     details,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the Pet's required fields.
func (p *Pet) Validate() error {
	if p.Name == "" {
		return ErrPetNameEmpty
	}
	if p.Species == "" {
		return ErrPetSpeciesEmpty
	}
	return nil
}

// OwnedBy reports whether the pet belongs to the given user.
func (p *Pet) OwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}
