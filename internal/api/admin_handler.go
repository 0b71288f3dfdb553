package api

import (
	"net/http"

	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/service/onboarding"
	"github.com/vetician/vetician-api/internal/service/verification"
)

// AdminHandler serves the review endpoints. Every route is mounted behind
// the admin middleware.
type AdminHandler struct {
	onboardings   *onboarding.Service
	verifications *verification.Service
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(onboardings *onboarding.Service, verifications *verification.Service) *AdminHandler {
	return &AdminHandler{onboardings: onboardings, verifications: verifications}
}

// ListUnverifiedParavets handles GET /api/admin/paravets/unverified.
func (h *AdminHandler) ListUnverifiedParavets(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.onboardings.ListUnverified(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profiles)
}

// ReviewParavet handles POST /api/admin/paravets/{userID}/verify.
func (h *AdminHandler) ReviewParavet(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	adminID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.onboardings.Review(r.Context(), userID, adminID, onboarding.ReviewAction(req.Action), req.Reason)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// VerifyParavetField handles POST /api/admin/paravets/{userID}/verify-field.
func (h *AdminHandler) VerifyParavetField(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req VerifyFieldRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.onboardings.VerifyField(r.Context(), userID, req.Field)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// VerifyVeterinarianField handles
// POST /api/admin/veterinarians/{userID}/verify-field.
func (h *AdminHandler) VerifyVeterinarianField(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req VerifyFieldRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	vet, err := h.verifications.VerifyVeterinarianField(r.Context(), userID, req.Field)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, vet)
}

// ListUnverifiedClinics handles GET /api/admin/clinics/unverified.
func (h *AdminHandler) ListUnverifiedClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.verifications.ListUnverifiedClinics(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, clinics)
}

// VerifyClinic handles POST /api/admin/clinics/{id}/verify.
func (h *AdminHandler) VerifyClinic(w http.ResponseWriter, r *http.Request) {
	clinicID, ok := pathUUID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid clinic ID")
		return
	}

	clinic, err := h.verifications.VerifyClinic(r.Context(), clinicID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, clinic)
}

// VerifyResort handles POST /api/admin/resorts/{id}/verify.
func (h *AdminHandler) VerifyResort(w http.ResponseWriter, r *http.Request) {
	h.setResortVerified(w, r, true)
}

// UnverifyResort handles POST /api/admin/resorts/{id}/unverify.
func (h *AdminHandler) UnverifyResort(w http.ResponseWriter, r *http.Request) {
	h.setResortVerified(w, r, false)
}

func (h *AdminHandler) setResortVerified(w http.ResponseWriter, r *http.Request, verified bool) {
	resortID, ok := pathUUID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid resort ID")
		return
	}

	resort, err := h.verifications.SetPetResortVerified(r.Context(), resortID, verified)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, resort)
}
