package store

import (
	"errors"
	"fmt"
)

// Base sentinel errors for the storage layer. Entity-specific sentinels
// wrap these so callers can match either the broad class or the exact
// entity with errors.Is.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate indicates a uniqueness constraint was violated.
	ErrDuplicate = errors.New("duplicate entity")
)

// Entity-specific sentinels.
var (
	ErrUserNotFound        = fmt.Errorf("%w: user", ErrNotFound)
	ErrEmailExists         = fmt.Errorf("%w: email already registered for role", ErrDuplicate)
	ErrParentNotFound      = fmt.Errorf("%w: parent", ErrNotFound)
	ErrPetNotFound         = fmt.Errorf("%w: pet", ErrNotFound)
	ErrVetNotFound         = fmt.Errorf("%w: veterinarian", ErrNotFound)
	ErrVetExists           = fmt.Errorf("%w: veterinarian profile", ErrDuplicate)
	ErrClinicNotFound      = fmt.Errorf("%w: clinic", ErrNotFound)
	ErrClinicExists        = fmt.Errorf("%w: clinic", ErrDuplicate)
	ErrResortNotFound      = fmt.Errorf("%w: pet resort", ErrNotFound)
	ErrResortExists        = fmt.Errorf("%w: pet resort", ErrDuplicate)
	ErrParavetNotFound     = fmt.Errorf("%w: paravet profile", ErrNotFound)
	ErrParavetExists       = fmt.Errorf("%w: paravet profile", ErrDuplicate)
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment", ErrNotFound)
	ErrBookingNotFound     = fmt.Errorf("%w: doorstep booking", ErrNotFound)
	ErrTokenNotFound       = fmt.Errorf("%w: refresh token", ErrNotFound)
	ErrOTPNotFound         = fmt.Errorf("%w: otp challenge", ErrNotFound)
)

// StoreError adds entity and operation context to an underlying storage
// failure while keeping the cause available through Unwrap.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Operation, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError wrapping err.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
