package service

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyPantry is returned when suggestions are requested for an empty pantry.
	ErrEmptyPantry = errors.New("pantry is empty")

	// ErrUpstream wraps failures talking to a model backend or third-party API.
	ErrUpstream = errors.New("upstream service unavailable")

	// ErrNotConfigured is returned when an optional integration has no credentials.
	ErrNotConfigured = errors.New("integration not configured")

	ErrInvalidBarcode  = errors.New("invalid barcode")
	ErrProductNotFound = errors.New("product not found")
)
