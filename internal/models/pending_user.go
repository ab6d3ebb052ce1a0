package models

import "time"

// PendingUser is an unconfirmed registration waiting for OTP verification.
// The password is staged as a bcrypt hash, never as plaintext. At most one
// row exists per email; a repeat registration replaces it.
type PendingUser struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	OTP          string    `json:"-"`
	OTPExpiresAt time.Time `json:"otp_expires_at"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
