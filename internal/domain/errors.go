package domain

import "errors"

// Authentication and authorization errors
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

// Domain store errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrMedicationNotFound   = errors.New("medication not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNegativeStock        = errors.New("stock must be non-negative")
)
