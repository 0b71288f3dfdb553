package api

import (
	"net/http"

	"github.com/vetician/vetician-api/internal/api/middleware"
	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/service/booking"
)

// BookingHandler serves the clinic appointment and doorstep booking
// endpoints.
type BookingHandler struct {
	bookings *booking.Service
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// CreateAppointment handles POST /api/appointments.
func (h *BookingHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateAppointmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	detail, err := h.bookings.CreateAppointment(r.Context(), userID, booking.AppointmentInput{
		ClinicID:       req.ClinicID,
		VeterinarianID: req.VeterinarianID,
		PetName:        req.PetName,
		PetType:        req.PetType,
		Breed:          req.Breed,
		Illness:        req.Illness,
		Date:           req.Date,
		BookingType:    req.BookingType,
		ContactInfo:    req.ContactInfo,
		PetPicURL:      req.PetPicURL,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, detail)
}

// ListAppointments handles GET /api/appointments/user/{userID}.
func (h *BookingHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "userID")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	appts, err := h.bookings.ListAppointmentsByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, appts)
}

// CreateDoorstepBooking handles POST /api/doorstep/bookings.
func (h *BookingHandler) CreateDoorstepBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateDoorstepRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.bookings.CreateDoorstepBooking(r.Context(), userID, booking.DoorstepInput{
		ServiceType:         req.ServiceType,
		PetIDs:              req.PetIDs,
		ServicePartnerID:    req.ServicePartnerID,
		ServicePartnerName:  req.ServicePartnerName,
		AppointmentDate:     req.AppointmentDate,
		TimeSlot:            req.TimeSlot,
		Address:             req.Address,
		IsEmergency:         req.IsEmergency,
		RepeatBooking:       req.RepeatBooking,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       req.PaymentMethod,
		CouponCode:          req.CouponCode,
		BasePrice:           req.BasePrice,
		EmergencyCharge:     req.EmergencyCharge,
		Discount:            req.Discount,
		TotalAmount:         req.TotalAmount,
		PaymentStatus:       req.PaymentStatus,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, result)
}

// ListDoorstepBookings handles GET /api/doorstep/bookings. It lists the
// authenticated caller's own bookings.
func (h *BookingHandler) ListDoorstepBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	bookings, err := h.bookings.ListDoorstepBookings(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, bookings)
}

// GetDoorstepBooking handles GET /api/doorstep/bookings/{id}.
func (h *BookingHandler) GetDoorstepBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	result, err := h.bookings.GetDoorstepBooking(r.Context(), bookingID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, result)
}

// UpdateDoorstepStatus handles PATCH /api/doorstep/bookings/{id}/status.
func (h *BookingHandler) UpdateDoorstepStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathUUID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req UpdateBookingStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.bookings.UpdateDoorstepStatus(r.Context(), bookingID, domain.BookingStatus(req.Status))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, result)
}

// CancelDoorstepBooking handles POST /api/doorstep/bookings/{id}/cancel.
func (h *BookingHandler) CancelDoorstepBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	bookingID, ok := pathUUID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	result, err := h.bookings.CancelDoorstepBooking(r.Context(), bookingID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, result)
}
