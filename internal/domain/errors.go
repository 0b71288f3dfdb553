package domain

import "errors"

// Common domain errors shared across entities. Services wrap these with
// additional context; the API layer maps them to HTTP status codes.
var (
	// ErrValidation is returned when an entity or a request payload fails
	// domain validation rules.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation would violate a uniqueness
	// or state invariant, such as registering a duplicate profile or
	// verifying a field that is already verified.
	ErrConflict = errors.New("conflict")

	// ErrAuthentication is returned when credentials, tokens or OTP codes
	// cannot be verified.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization is returned when an authenticated caller attempts an
	// operation on a resource it does not own or lacks the role for.
	ErrAuthorization = errors.New("not authorized")
)

// User validation errors.
var (
	ErrUserEmailEmpty    = errors.New("email cannot be empty")
	ErrUserEmailInvalid  = errors.New("invalid email format")
	ErrUserPasswordEmpty = errors.New("password cannot be empty")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrInvalidRole       = errors.New("invalid account role")
)
