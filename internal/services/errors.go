package services

import "errors"

// Business-rule errors raised at the orchestrator boundary. The transport
// layer maps them onto HTTP statuses; anything not listed here is treated
// as an internal failure and never shown to the caller verbatim.
var (
	ErrFieldsRequired     = errors.New("all fields are required")
	ErrUserExists         = errors.New("email or username is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPendingNotFound    = errors.New("no pending registration found")
	ErrCodeInvalid        = errors.New("invalid OTP")
	ErrCodeExpired        = errors.New("OTP has expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDeliveryFailed     = errors.New("failed to send OTP email")
)
