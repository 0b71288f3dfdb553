package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vetician/vetician-api/internal/api"
	apimw "github.com/vetician/vetician-api/internal/api/middleware"
)

// setupRouter builds the chi router with the full route table and the
// middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimw.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.accountService, app.otpService)
	parentHandler := api.NewParentHandler(app.accountService)
	verificationHandler := api.NewVerificationHandler(app.verificationService)
	paravetHandler := api.NewParavetHandler(app.onboardingService)
	bookingHandler := api.NewBookingHandler(app.bookingService)
	adminHandler := api.NewAdminHandler(app.onboardingService, app.verificationService)

	authMiddleware := apimw.NewAuthMiddleware(app.jwtService)
	adminMiddleware := apimw.NewAdminMiddleware(app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints.
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/send-otp", authHandler.SendOTP)
		r.Post("/auth/verify-otp", authHandler.VerifyOTP)
		r.Get("/veterinarians/{userID}/verification", verificationHandler.CheckVeterinarianVerification)
		r.Get("/clinics/verified", verificationHandler.ListVerifiedClinics)
		r.Get("/resorts", verificationHandler.ListResorts)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/logout-all", authHandler.LogoutAll)
			r.Post("/auth/delete-account", authHandler.DeleteAccount)

			r.Get("/parents/{userID}", parentHandler.GetParent)
			r.Patch("/parents/{userID}", parentHandler.UpdateParent)

			r.Post("/pets", parentHandler.RegisterPet)
			r.Get("/pets/user/{userID}", parentHandler.ListPets)
			r.Patch("/pets/{petID}", parentHandler.UpdatePet)
			r.Delete("/pets/{petID}", parentHandler.DeletePet)

			r.Post("/veterinarians/register", verificationHandler.RegisterVeterinarian)
			r.Post("/clinics/register", verificationHandler.RegisterClinic)
			r.Post("/resorts/register", verificationHandler.RegisterResort)

			r.Post("/paravet/initialize", paravetHandler.Initialize)
			r.Get("/paravet/profile/{userID}", paravetHandler.GetProfile)
			r.Put("/paravet/personal-info", paravetHandler.UpdatePersonalInfo)
			r.Put("/paravet/experience-skills", paravetHandler.UpdateExperienceSkills)
			r.Put("/paravet/payment-info", paravetHandler.UpdatePaymentInfo)
			r.Post("/paravet/upload-documents", paravetHandler.UploadDocuments)
			r.Post("/paravet/code-of-conduct", paravetHandler.AgreeToCodeOfConduct)
			r.Post("/paravet/training", paravetHandler.CompleteTraining)
			r.Post("/paravet/submit", paravetHandler.SubmitApplication)

			r.Post("/appointments", bookingHandler.CreateAppointment)
			r.Get("/appointments/user/{userID}", bookingHandler.ListAppointments)

			r.Post("/doorstep/bookings", bookingHandler.CreateDoorstepBooking)
			r.Get("/doorstep/bookings", bookingHandler.ListDoorstepBookings)
			r.Get("/doorstep/bookings/{id}", bookingHandler.GetDoorstepBooking)
			r.Patch("/doorstep/bookings/{id}/status", bookingHandler.UpdateDoorstepStatus)
			r.Post("/doorstep/bookings/{id}/cancel", bookingHandler.CancelDoorstepBooking)
		})

		// Admin endpoints.
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(adminMiddleware.RequireAdmin)

			r.Get("/paravets/unverified", adminHandler.ListUnverifiedParavets)
			r.Post("/paravets/{userID}/verify", adminHandler.ReviewParavet)
			r.Post("/paravets/{userID}/verify-field", adminHandler.VerifyParavetField)
			r.Post("/veterinarians/{userID}/verify-field", adminHandler.VerifyVeterinarianField)
			r.Get("/clinics/unverified", adminHandler.ListUnverifiedClinics)
			r.Post("/clinics/{id}/verify", adminHandler.VerifyClinic)
			r.Post("/resorts/{id}/verify", adminHandler.VerifyResort)
			r.Post("/resorts/{id}/unverify", adminHandler.UnverifyResort)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
