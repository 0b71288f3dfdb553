package api

import (
	"net/http"

	"github.com/vetician/vetician-api/internal/api/middleware"
	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/service/verification"
)

// VerificationHandler serves the professional registration and public
// verification endpoints.
type VerificationHandler struct {
	verifications *verification.Service
}

// NewVerificationHandler creates a VerificationHandler.
func NewVerificationHandler(verifications *verification.Service) *VerificationHandler {
	return &VerificationHandler{verifications: verifications}
}

// RegisterVeterinarian handles POST /api/veterinarians/register.
func (h *VerificationHandler) RegisterVeterinarian(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RegisterVeterinarianRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	vet, err := h.verifications.RegisterVeterinarian(r.Context(), userID, domain.VeterinarianInput{
		Name:               req.Name,
		Title:              req.Title,
		Gender:             req.Gender,
		City:               req.City,
		Experience:         req.Experience,
		Specialization:     req.Specialization,
		Qualification:      req.Qualification,
		RegistrationNumber: req.RegistrationNumber,
		IdentityProof:      req.IdentityProof,
		ProfilePhotoURL:    req.ProfilePhotoURL,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, vet)
}

// CheckVeterinarianVerification handles
// GET /api/veterinarians/{userID}/verification.
func (h *VerificationHandler) CheckVeterinarianVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	status, err := h.verifications.CheckVeterinarianVerification(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, status)
}

// RegisterClinic handles POST /api/clinics/register.
func (h *VerificationHandler) RegisterClinic(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RegisterClinicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	clinic, err := h.verifications.RegisterClinic(r.Context(), userID, verification.ClinicInput{
		ClinicName:        req.ClinicName,
		City:              req.City,
		Locality:          req.Locality,
		StreetAddress:     req.StreetAddress,
		EstablishmentType: req.EstablishmentType,
		Fees:              req.Fees,
		Timings:           req.Timings,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, clinic)
}

// ListVerifiedClinics handles GET /api/clinics/verified.
func (h *VerificationHandler) ListVerifiedClinics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.verifications.ListVerifiedClinicsWithVets(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, rows)
}

// RegisterResort handles POST /api/resorts/register.
func (h *VerificationHandler) RegisterResort(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RegisterResortRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	resort, err := h.verifications.RegisterPetResort(r.Context(), userID, verification.ResortInput{
		ResortName:   req.ResortName,
		BrandName:    req.BrandName,
		LogoURL:      req.LogoURL,
		Address:      req.Address,
		ResortPhone:  req.ResortPhone,
		OwnerPhone:   req.OwnerPhone,
		Services:     req.Services,
		OpeningHours: req.OpeningHours,
		Notice:       req.Notice,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, resort)
}

// ListResorts handles GET /api/resorts. The verified query parameter
// limits the listing to verified resorts.
func (h *VerificationHandler) ListResorts(w http.ResponseWriter, r *http.Request) {
	verifiedOnly := r.URL.Query().Get("verified") == "true"

	resorts, err := h.verifications.ListPetResorts(r.Context(), verifiedOnly)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, resorts)
}
