package api

import (
	"net/http"

	"github.com/vetician/vetician-api/internal/api/middleware"
	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/service/onboarding"
)

// ParavetHandler serves the paravet onboarding endpoints.
type ParavetHandler struct {
	onboardings *onboarding.Service
}

// NewParavetHandler creates a ParavetHandler.
func NewParavetHandler(onboardings *onboarding.Service) *ParavetHandler {
	return &ParavetHandler{onboardings: onboardings}
}

// Initialize handles POST /api/paravet/initialize.
func (h *ParavetHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.onboardings.Initialize(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// GetProfile handles GET /api/paravet/profile/{userID}.
func (h *ParavetHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.onboardings.GetProfile(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// UpdatePersonalInfo handles PUT /api/paravet/personal-info.
func (h *ParavetHandler) UpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PersonalInfoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.onboardings.UpdatePersonalInfo(r.Context(), userID, onboarding.PersonalInfoInput{
		FullName:        req.FullName,
		MobileNumber:    req.MobileNumber,
		ProfilePhotoURL: req.ProfilePhotoURL,
		Address:         req.Address,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// UpdateExperienceSkills handles PUT /api/paravet/experience-skills.
func (h *ParavetHandler) UpdateExperienceSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ExperienceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.onboardings.UpdateExperienceSkills(r.Context(), userID, onboarding.ExperienceInput{
		Years:           req.Years,
		Skills:          req.Skills,
		PriorWorkplaces: req.PriorWorkplaces,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// UpdatePaymentInfo handles PUT /api/paravet/payment-info.
func (h *ParavetHandler) UpdatePaymentInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PaymentInfoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.onboardings.UpdatePaymentInfo(r.Context(), userID, onboarding.PaymentInput{
		AccountHolderName: req.AccountHolderName,
		AccountNumber:     req.AccountNumber,
		IFSC:              req.IFSC,
		UPIID:             req.UPIID,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// UploadDocuments handles POST /api/paravet/upload-documents.
func (h *ParavetHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UploadDocumentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.onboardings.UploadDocument(r.Context(), userID, onboarding.DocumentInput{
		DocumentType: req.DocumentType,
		FileURL:      req.FileURL,
		IDType:       req.IDType,
		IDNumber:     req.IDNumber,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// AgreeToCodeOfConduct handles POST /api/paravet/code-of-conduct.
func (h *ParavetHandler) AgreeToCodeOfConduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CodeOfConductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := h.onboardings.AgreeToCodeOfConduct(r.Context(), userID, req.Agreed)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// CompleteTraining handles POST /api/paravet/training.
func (h *ParavetHandler) CompleteTraining(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req TrainingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.onboardings.CompleteTraining(r.Context(), userID, onboarding.TrainingInput{
		QuizPassed: req.QuizPassed,
		Score:      req.Score,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}

// SubmitApplication handles POST /api/paravet/submit.
func (h *ParavetHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.onboardings.SubmitApplication(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, profile)
}
