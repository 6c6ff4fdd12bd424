package dto

import "github.com/spec-kit/adoption-client/internal/domain"

// AuthResponse is returned by register, login and refresh. The token sits at
// the top level next to the user.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	// VerificationToken is exposed on registration; the mock API has no mailer.
	VerificationToken string `json:"verificationToken,omitempty"`
}

// ForgotPasswordRequest payload for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetTokenResponse exposes the reset token; the mock API has no mailer.
type ResetTokenResponse struct {
	ResetToken string `json:"resetToken,omitempty"`
}
