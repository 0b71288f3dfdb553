// Package api exposes the HTTP surface of the marketplace.
package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vetician/vetician-api/internal/domain"
	"github.com/vetician/vetician-api/internal/service/auth"
	"github.com/vetician/vetician-api/internal/service/otp"
	"github.com/vetician/vetician-api/internal/store"
)

// MapErrorToStatusCode maps service errors to HTTP status codes. The
// domain sentinels categorize most cases; store sentinels cover errors
// that bypass a service wrapper.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrAuthorization):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the error,
// never exposing internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		return "Invalid refresh token"

	case errors.Is(err, otp.ErrCodeExpired):
		return "Code expired"

	case errors.Is(err, otp.ErrCodeAlreadyUsed):
		return "Code already used"

	case errors.Is(err, otp.ErrCodeMismatch):
		return "Incorrect code"

	// Validation and conflict messages are written by the services to be
	// shown to clients; strip only the sentinel prefix.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAuthorization):
		return trimSentinelPrefix(err.Error())

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered for this role"

	case errors.Is(err, domain.ErrAuthentication):
		return "Authentication failed"

	default:
		return "An unexpected error occurred"
	}
}

// trimSentinelPrefix drops the "<category>: " prefix the sentinel wrap
// adds, leaving the human part of the message.
func trimSentinelPrefix(msg string) string {
	for _, prefix := range []string{
		"validation error: ",
		"conflict: ",
		"not found: ",
		"not authorized: ",
	} {
		if strings.HasPrefix(msg, prefix) && len(msg) > len(prefix) {
			rest := msg[len(prefix):]
			return strings.ToUpper(rest[:1]) + rest[1:]
		}
	}
	return msg
}

// SanitizeValidationError converts a validator.FieldError chain into a
// short client-facing message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// "Key: 'LoginRequest.Email' Error:Field validation for 'Email'
		// failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}
	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}
