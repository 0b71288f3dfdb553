package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/store"
)

// PetInput is the pet registration payload.
type PetInput struct {
	Name        string
	Species     string
	Breed       string
	Gender      string
	DateOfBirth time.Time
	Details     domain.PetDetails
}

// PetUpdate carries a partial pet update; nil fields are left unchanged.
type PetUpdate struct {
	Name        *string
	Species     *string
	Breed       *string
	Gender      *string
	DateOfBirth *time.Time
	Details     *domain.PetDetails
}

// GetParent returns the parent profile for an account.
func (s *Service) GetParent(ctx context.Context, userID uuid.UUID) (*domain.Parent, error) {
	parent, err := s.parents.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrParentNotFound) {
			return nil, fmt.Errorf("%w: parent profile not found", domain.ErrNotFound)
		}
		return nil, err
	}
	return parent, nil
}

// UpdateParent applies a partial update to the caller's own parent profile.
func (s *Service) UpdateParent(ctx context.Context, userID uuid.UUID, upd domain.ParentUpdate) (*domain.Parent, error) {
	parent, err := s.GetParent(ctx, userID)
	if err != nil {
		return nil, err
	}
	parent.Apply(upd)
	if err := s.parents.Update(ctx, parent); err != nil {
		return nil, err
	}
	return parent, nil
}

// RegisterPet creates a pet owned by the calling user.
func (s *Service) RegisterPet(ctx context.Context, userID uuid.UUID, in PetInput) (*domain.Pet, error) {
	pet, err := domain.NewPet(userID, in.Name, in.Species, in.Breed, in.Gender, in.DateOfBirth, in.Details)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// ListPets returns the user's pets, newest first.
func (s *Service) ListPets(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error) {
	return s.pets.ListByUser(ctx, userID)
}

// getOwnedPet loads a pet and enforces ownership.
func (s *Service) getOwnedPet(ctx context.Context, petID, userID uuid.UUID) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, store.ErrPetNotFound) {
			return nil, fmt.Errorf("%w: pet not found", domain.ErrNotFound)
		}
		return nil, err
	}
	if !pet.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: pet belongs to another user", domain.ErrAuthorization)
	}
	return pet, nil
}

// UpdatePet applies a partial update to a pet the caller owns.
func (s *Service) UpdatePet(ctx context.Context, petID, userID uuid.UUID, upd PetUpdate) (*domain.Pet, error) {
	pet, err := s.getOwnedPet(ctx, petID, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		pet.Name = *upd.Name
	}
	if upd.Species != nil {
		pet.Species = *upd.Species
	}
	if upd.Breed != nil {
		pet.Breed = *upd.Breed
	}
	if upd.Gender != nil {
		pet.Gender = *upd.Gender
	}
	if upd.DateOfBirth != nil {
		pet.DateOfBirth = *upd.DateOfBirth
	}
	if upd.Details != nil {
		pet.Details = *upd.Details
	}
	if err := pet.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	pet.UpdatedAt = time.Now().UTC()

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// DeletePet removes a pet the caller owns.
func (s *Service) DeletePet(ctx context.Context, petID, userID uuid.UUID) error {
	pet, err := s.getOwnedPet(ctx, petID, userID)
	if err != nil {
		return err
	}
	return s.pets.Delete(ctx, pet.ID)
}
