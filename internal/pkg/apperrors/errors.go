package apperrors

import "errors"

// Errors shared by adapters. The HTTP layer maps them to status codes.
var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when client or configuration input is invalid.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrExternalServiceFailure is returned when an upstream source or RPC endpoint misbehaves.
	ErrExternalServiceFailure = errors.New("external service interaction failed")

	// ErrTimeout is returned when an operation times out or its context is cancelled.
	ErrTimeout = errors.New("operation timed out")
)
