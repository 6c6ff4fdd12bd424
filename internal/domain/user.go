package domain

import "time"

// Role is the account type assigned by the API.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleShelter Role = "shelter"
)

// User is the profile of the signed-in account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
	// EmailVerified flips once POST /auth/verify-email accepts a token.
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LoginRequest payload for /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest payload for /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone_br"`
}

// ProfileUpdate payload for PUT /auth/profile.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,phone_br"`
}

// PasswordChange payload for PUT /auth/change-password.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// PasswordReset payload for POST /auth/reset-password.
type PasswordReset struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// EmailVerification payload for POST /auth/verify-email.
type EmailVerification struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
