package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vetician/vetician-api/internal/api/middleware"
	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/service/account"
)

// ParentHandler serves the pet-parent profile and pet endpoints.
type ParentHandler struct {
	accounts *account.Service
}

// NewParentHandler creates a ParentHandler.
func NewParentHandler(accounts *account.Service) *ParentHandler {
	return &ParentHandler{accounts: accounts}
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// GetParent handles GET /api/parents/{userID}.
func (h *ParentHandler) GetParent(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	parent, err := h.accounts.GetParent(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, parent)
}

// UpdateParent handles PATCH /api/parents/{userID}. Callers may only edit
// their own profile.
func (h *ParentHandler) UpdateParent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if callerID != userID {
		shared.RespondWithError(w, r, http.StatusForbidden, "You may only edit your own profile")
		return
	}

	var req UpdateParentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	parent, err := h.accounts.UpdateParent(r.Context(), userID, domain.ParentUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Gender:   req.Gender,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, parent)
}

// RegisterPet handles POST /api/pets.
func (h *ParentHandler) RegisterPet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RegisterPetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	pet, err := h.accounts.RegisterPet(r.Context(), userID, account.PetInput{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Details:     req.Details,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, pet)
}

// ListPets handles GET /api/pets/user/{userID}.
func (h *ParentHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	pets, err := h.accounts.ListPets(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, pets)
}

// UpdatePet handles PATCH /api/pets/{petID}.
func (h *ParentHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	petID, ok := pathUUID(r, "petID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid pet ID")
		return
	}

	var req UpdatePetRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	pet, err := h.accounts.UpdatePet(r.Context(), petID, userID, account.PetUpdate{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Details:     req.Details,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, pet)
}

// DeletePet handles DELETE /api/pets/{petID}.
func (h *ParentHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	petID, ok := pathUUID(r, "petID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid pet ID")
		return
	}

	if err := h.accounts.DeletePet(r.Context(), petID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Pet deleted")
}
