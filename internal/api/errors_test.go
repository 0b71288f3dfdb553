package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vetician/vetician-api/internal/api/shared"
	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/service/auth"
	"github.com/vetician/vetician-api/internal/service/otp"
	"github.com/vetician/vetician-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: name is required", domain.ErrValidation), http.StatusBadRequest},
		{"authentication", domain.ErrAuthentication, http.StatusUnauthorized},
		{"authorization", fmt.Errorf("%w: not your booking", domain.ErrAuthorization), http.StatusForbidden},
		{"domain not found", fmt.Errorf("%w: clinic not found", domain.ErrNotFound), http.StatusNotFound},
		{"store not found", store.ErrUserNotFound, http.StatusNotFound},
		{"sql no rows", sql.ErrNoRows, http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: already verified", domain.ErrConflict), http.StatusConflict},
		{"store duplicate", store.ErrEmailExists, http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
		{"wrapped unknown", fmt.Errorf("outer: %w", errors.New("inner")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"invalid credentials", auth.ErrInvalidCredentials, "Invalid email or password"},
		{"expired token", auth.ErrExpiredToken, "Invalid token"},
		{"revoked refresh", auth.ErrRefreshTokenRevoked, "Invalid refresh token"},
		{"otp expired", otp.ErrCodeExpired, "Code expired"},
		{"otp used", otp.ErrCodeAlreadyUsed, "Code already used"},
		{"otp mismatch", otp.ErrCodeMismatch, "Incorrect code"},
		{"email exists", store.ErrEmailExists, "Email already registered for this role"},
		{"internal detail hidden", errors.New("pq: connection refused"), "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessageTrimsSentinelPrefix(t *testing.T) {
	err := fmt.Errorf("%w: clinic not found", domain.ErrNotFound)
	assert.Equal(t, "Clinic not found", GetSafeErrorMessage(err))

	err = fmt.Errorf("%w: application already submitted", domain.ErrConflict)
	assert.Equal(t, "Application already submitted", GetSafeErrorMessage(err))

	err = fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	assert.Equal(t, "Rejection reason is required", GetSafeErrorMessage(err))
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(LoginRequest{})
	assert.Error(t, err)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	err = shared.ValidateRequest(LoginRequest{
		Email:    "not-an-email",
		Password: "secret",
		Role:     "pet_parent",
	})
	assert.Error(t, err)
	assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
