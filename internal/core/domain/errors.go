package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of these.
var (
	ErrAccessDenied = errors.New("access denied")
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrSlotConflict = errors.New("slot already booked")
	ErrPersistence  = errors.New("persistence failure")
)

// Identity errors
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrValidation)
	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", ErrValidation)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrResetTokenInvalid  = fmt.Errorf("%w: invalid or expired reset token", ErrValidation)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrEmailNotFound      = fmt.Errorf("%w: no account found with that email address", ErrNotFound)
)

// Directory errors
var (
	ErrDepartmentNotFound = fmt.Errorf("%w: department", ErrNotFound)
	ErrDoctorNotFound     = fmt.Errorf("%w: doctor", ErrNotFound)
	ErrPatientNotFound    = fmt.Errorf("%w: patient profile", ErrNotFound)
	ErrDoctorInactive     = fmt.Errorf("%w: doctor is not accepting appointments", ErrValidation)
	ErrPatientInactive    = fmt.Errorf("%w: patient profile is inactive", ErrValidation)
	ErrLicenseTaken       = fmt.Errorf("%w: license number already registered", ErrValidation)
)

// Scheduling errors
var (
	ErrAppointmentNotFound  = fmt.Errorf("%w: appointment", ErrNotFound)
	ErrInvalidTransition    = fmt.Errorf("%w: appointment is no longer booked", ErrValidation)
	ErrTreatmentIncomplete  = fmt.Errorf("%w: diagnosis and prescription are required", ErrValidation)
	ErrAvailabilityNotFound = fmt.Errorf("%w: availability slot", ErrNotFound)
	ErrDuplicateSlot        = fmt.Errorf("%w: availability slot already declared", ErrValidation)
	ErrInvalidWindow        = fmt.Errorf("%w: end time must be after start time", ErrValidation)
)

// Maintenance errors
var (
	ErrResetNotConfirmed = fmt.Errorf("%w: reset cancelled, type RESET to confirm", ErrValidation)
)

// Persistence wraps a storage failure as ErrPersistence, keeping the cause
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
