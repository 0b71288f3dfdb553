// Package verification implements registration and admin review for
// veterinarians, clinics and pet resorts.
package verification

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

// VerificationStatus is the public per-profile verification readout.
type VerificationStatus struct {
	UserID     uuid.UUID       `json:"user_id"`
	IsVerified bool            `json:"is_verified"`
	Fields     map[string]bool `json:"fields"`
}

// ClinicWithVet is the denormalized listing row joining a verified clinic
// to its owner's veterinarian profile, when one exists.
type ClinicWithVet struct {
	Clinic       *domain.Clinic       `json:"clinic"`
	Veterinarian *domain.Veterinarian `json:"veterinarian,omitempty"`
}

// ResortInput is the pet-resort registration payload.
type ResortInput struct {
	ResortName   string
	BrandName    string
	LogoURL      string
	Address      string
	ResortPhone  string
	OwnerPhone   string
	Services     []string
	OpeningHours domain.ClinicTimings
	Notice       string
}

// ClinicInput is the clinic registration payload.
type ClinicInput struct {
	ClinicName        string
	City              string
	Locality          string
	StreetAddress     string
	EstablishmentType string
	Fees              int
	Timings           domain.ClinicTimings
}

// Service coordinates the professional-profile stores.
type Service struct {
	vets    store.VeterinarianStore
	clinics store.ClinicStore
	resorts store.PetResortStore
	logger  *slog.Logger
}

// NewService wires a verification service.
func NewService(
	vets store.VeterinarianStore,
	clinics store.ClinicStore,
	resorts store.PetResortStore,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		vets:    vets,
		clinics: clinics,
		resorts: resorts,
		logger:  log.With(slog.String("component", "verification_service")),
	}
}

// RegisterVeterinarian creates the professional profile for a veterinarian
// account. Every attribute starts unverified.
func (s *Service) RegisterVeterinarian(ctx context.Context, userID uuid.UUID, in domain.VeterinarianInput) (*domain.Veterinarian, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.RegistrationNumber == "" {
		return nil, fmt.Errorf("%w: registration number is required", domain.ErrValidation)
	}

	vet := domain.NewVeterinarian(userID, in)
	if err := s.vets.Create(ctx, vet); err != nil {
		if errors.Is(err, store.ErrVetExists) {
			return nil, fmt.Errorf("%w: veterinarian profile or registration number already exists", domain.ErrConflict)
		}
		return nil, err
	}
	return vet, nil
}

// GetVeterinarian returns the profile for a veterinarian account.
func (s *Service) GetVeterinarian(ctx context.Context, userID uuid.UUID) (*domain.Veterinarian, error) {
	vet, err := s.vets.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrVetNotFound) {
			return nil, fmt.Errorf("%w: veterinarian profile not found", domain.ErrNotFound)
		}
		return nil, err
	}
	return vet, nil
}

// VerifyVeterinarianField marks one attribute verified and refreshes the
// aggregate.
func (s *Service) VerifyVeterinarianField(ctx context.Context, userID uuid.UUID, field string) (*domain.Veterinarian, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	vet, err := s.GetVeterinarian(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := vet.VerifyField(field); err != nil {
		return nil, err
	}
	if err := s.vets.Update(ctx, vet); err != nil {
		return nil, err
	}

	log.Info("veterinarian field verified",
		slog.String("user_id", userID.String()),
		slog.String("field", field),
		slog.Bool("is_verified", vet.IsVerified))
	return vet, nil
}

// CheckVeterinarianVerification returns the aggregate flag together with
// the per-field states.
func (s *Service) CheckVeterinarianVerification(ctx context.Context, userID uuid.UUID) (*VerificationStatus, error) {
	vet, err := s.GetVeterinarian(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &VerificationStatus{
		UserID:     userID,
		IsVerified: vet.IsVerified,
		Fields:     vet.FieldStates(),
	}, nil
}

// RegisterClinic creates the establishment profile for a clinic account.
func (s *Service) RegisterClinic(ctx context.Context, userID uuid.UUID, in ClinicInput) (*domain.Clinic, error) {
	clinic, err := domain.NewClinic(userID, in.ClinicName, in.City, in.Locality,
		in.StreetAddress, in.EstablishmentType, in.Fees, in.Timings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.clinics.Create(ctx, clinic); err != nil {
		if errors.Is(err, store.ErrClinicExists) {
			return nil, fmt.Errorf("%w: a clinic with this name already exists in %s", domain.ErrConflict, in.City)
		}
		return nil, err
	}
	return clinic, nil
}

// VerifyClinic marks the whole clinic as verified.
func (s *Service) VerifyClinic(ctx context.Context, clinicID uuid.UUID) (*domain.Clinic, error) {
	clinic, err := s.clinics.GetByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, store.ErrClinicNotFound) {
			return nil, fmt.Errorf("%w: clinic not found", domain.ErrNotFound)
		}
		return nil, err
	}
	if clinic.Verified {
		return nil, fmt.Errorf("%w: clinic is already verified", domain.ErrConflict)
	}

	clinic.Verified = true
	clinic.UpdatedAt = time.Now().UTC()
	if err := s.clinics.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

// ListUnverifiedClinics returns the admin review queue.
func (s *Service) ListUnverifiedClinics(ctx context.Context) ([]*domain.Clinic, error) {
	return s.clinics.ListByVerified(ctx, false)
}

// ListVerifiedClinicsWithVets returns every verified clinic joined with the
// veterinarian profile of its owning account, when that account has one.
func (s *Service) ListVerifiedClinicsWithVets(ctx context.Context) ([]*ClinicWithVet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	clinics, err := s.clinics.ListByVerified(ctx, true)
	if err != nil {
		return nil, err
	}

	out := make([]*ClinicWithVet, 0, len(clinics))
	for _, clinic := range clinics {
		row := &ClinicWithVet{Clinic: clinic}
		vet, err := s.vets.GetByUserID(ctx, clinic.UserID)
		switch {
		case err == nil:
			row.Veterinarian = vet
		case errors.Is(err, store.ErrVetNotFound):
			// A clinic account without a personal vet profile still lists.
		default:
			log.Warn("failed to load veterinarian for clinic listing",
				slog.String("error", err.Error()),
				slog.String("clinic_id", clinic.ID.String()))
		}
		out = append(out, row)
	}
	return out, nil
}

// RegisterPetResort creates the boarding-facility profile.
func (s *Service) RegisterPetResort(ctx context.Context, userID uuid.UUID, in ResortInput) (*domain.PetResort, error) {
	resort, err := domain.NewPetResort(userID, in.ResortName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	resort.BrandName = in.BrandName
	resort.LogoURL = in.LogoURL
	resort.Address = in.Address
	resort.ResortPhone = in.ResortPhone
	resort.OwnerPhone = in.OwnerPhone
	resort.Services = in.Services
	resort.OpeningHours = in.OpeningHours
	resort.Notice = in.Notice

	if err := s.resorts.Create(ctx, resort); err != nil {
		if errors.Is(err, store.ErrResortExists) {
			return nil, fmt.Errorf("%w: this account already has a pet resort", domain.ErrConflict)
		}
		return nil, err
	}
	return resort, nil
}

// SetPetResortVerified sets or clears the resort verification flag.
func (s *Service) SetPetResortVerified(ctx context.Context, resortID uuid.UUID, verified bool) (*domain.PetResort, error) {
	resort, err := s.resorts.GetByID(ctx, resortID)
	if err != nil {
		if errors.Is(err, store.ErrResortNotFound) {
			return nil, fmt.Errorf("%w: pet resort not found", domain.ErrNotFound)
		}
		return nil, err
	}
	if resort.IsVerified == verified {
		return resort, nil
	}

	resort.IsVerified = verified
	resort.UpdatedAt = time.Now().UTC()
	if err := s.resorts.Update(ctx, resort); err != nil {
		return nil, err
	}
	return resort, nil
}

// ListPetResorts returns resorts, optionally only verified ones.
func (s *Service) ListPetResorts(ctx context.Context, verifiedOnly bool) ([]*domain.PetResort, error) {
	return s.resorts.List(ctx, verifiedOnly)
}
