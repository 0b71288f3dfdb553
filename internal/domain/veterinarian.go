package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Veterinarian is the professional profile linked to a veterinarian
// account. Every reviewable attribute is wrapped with its verification
// flag; IsVerified is the aggregate over the required set and is
// recomputed after each field verification.
type Veterinarian struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"user_id"`
	Name               VerifiedField `json:"name"`
	Title              VerifiedField `json:"title"`
	Gender             VerifiedField `json:"gender"`
	City               VerifiedField `json:"city"`
	Experience         VerifiedInt   `json:"experience"`
	Specialization     VerifiedField `json:"specialization"`
	Qualification      VerifiedField `json:"qualification"`
	RegistrationNumber VerifiedField `json:"registration_number"`
	IdentityProof      VerifiedField `json:"identity_proof"`
	ProfilePhotoURL    VerifiedField `json:"profile_photo_url"`
	IsVerified         bool          `json:"is_verified"`
	IsActive           bool          `json:"is_active"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// VeterinarianInput is the flat registration payload before it is wrapped
// into verification fields.
type VeterinarianInput struct {
	Name               string
	Title              string
	Gender             string
	City               string
	Experience         int
	Specialization     string
	Qualification      string
	RegistrationNumber string
	IdentityProof      string
	ProfilePhotoURL    string
}

// NewVeterinarian wraps the flat input into an unverified profile.
func NewVeterinarian(userID uuid.UUID, in VeterinarianInput) *Veterinarian {
	now := time.Now().UTC()
	return &Veterinarian{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               VerifiedField{Value: in.Name},
		Title:              VerifiedField{Value: in.Title},
		Gender:             VerifiedField{Value: in.Gender},
		City:               VerifiedField{Value: in.City},
		Experience:         VerifiedInt{Value: in.Experience},
		Specialization:     VerifiedField{Value: in.Specialization},
		Qualification:      VerifiedField{Value: in.Qualification},
		RegistrationNumber: VerifiedField{Value: in.RegistrationNumber},
		IdentityProof:      VerifiedField{Value: in.IdentityProof},
		ProfilePhotoURL:    VerifiedField{Value: in.ProfilePhotoURL},
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// veterinarianFields maps the wire-level field names an admin may verify to
// accessors on the profile.
func (v *Veterinarian) verifiableField(name string) (get func() bool, set func()) {
	switch name {
	case "name":
		return func() bool { return v.Name.Verified }, func() { v.Name.Verified = true }
	case "title":
		return func() bool { return v.Title.Verified }, func() { v.Title.Verified = true }
	case "gender":
		return func() bool { return v.Gender.Verified }, func() { v.Gender.Verified = true }
	case "city":
		return func() bool { return v.City.Verified }, func() { v.City.Verified = true }
	case "experience":
		return func() bool { return v.Experience.Verified }, func() { v.Experience.Verified = true }
	case "specialization":
		return func() bool { return v.Specialization.Verified }, func() { v.Specialization.Verified = true }
	case "qualification":
		return func() bool { return v.Qualification.Verified }, func() { v.Qualification.Verified = true }
	case "registration_number":
		return func() bool { return v.RegistrationNumber.Verified }, func() { v.RegistrationNumber.Verified = true }
	case "identity_proof":
		return func() bool { return v.IdentityProof.Verified }, func() { v.IdentityProof.Verified = true }
	case "profile_photo_url":
		return func() bool { return v.ProfilePhotoURL.Verified }, func() { v.ProfilePhotoURL.Verified = true }
	}
	return nil, nil
}

// VerifyField marks a single attribute as verified and recomputes the
// aggregate. Unknown field names and already-verified fields are both
// validation errors.
func (v *Veterinarian) VerifyField(name string) error {
	get, set := v.verifiableField(name)
	if get == nil {
		return fmt.Errorf("%w: unknown field %q", ErrValidation, name)
	}
	if get() {
		return fmt.Errorf("%w: field %q is already verified", ErrValidation, name)
	}
	set()
	v.Recompute()
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// Recompute refreshes the IsVerified aggregate from the required field set.
// Title, identity photo URL and proof document are reviewed but not part of
// the aggregate requirement, matching the admin review checklist.
func (v *Veterinarian) Recompute() {
	v.IsVerified = AggregateVerified(
		v.Name, v.Gender, v.City, v.Experience,
		v.Specialization, v.Qualification,
		v.RegistrationNumber, v.IdentityProof,
	)
}

// FieldStates returns the per-field verification map used by the public
// verification check endpoint.
func (v *Veterinarian) FieldStates() map[string]bool {
	return map[string]bool{
		"name":                v.Name.Verified,
		"title":               v.Title.Verified,
		"gender":              v.Gender.Verified,
		"city":                v.City.Verified,
		"experience":          v.Experience.Verified,
		"specialization":      v.Specialization.Verified,
		"qualification":       v.Qualification.Verified,
		"registration_number": v.RegistrationNumber.Verified,
		"identity_proof":      v.IdentityProof.Verified,
		"profile_photo_url":   v.ProfilePhotoURL.Verified,
	}
}
