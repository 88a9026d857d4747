package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest holds the signup payload for a new student.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Role     UserRole `json:"role" validate:"required,oneof=STUDENT TEACHER"`
	Password string   `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user snapshot.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        User      `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// VerifyEmailRequest confirms a pending verification code.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// SendCodeRequest asks for a fresh verification code.
type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateDetailsRequest lets a student edit their own profile details.
type UpdateDetailsRequest struct {
	Name       string `json:"name" validate:"required"`
	ClassLevel int    `json:"class_level" validate:"required,oneof=11 12"`
}

// ChangePasswordRequest payload for updating password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ResetPasswordRequest payload for the forgotten password flow.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordResponse reports the generated password so the caller can
// deliver it out-of-band in addition to the email we send.
type ResetPasswordResponse struct {
	Message     string `json:"message"`
	NewPassword string `json:"new_password,omitempty"`
}

// SessionStatus is the session guard poll result.
type SessionStatus struct {
	Valid bool `json:"valid"`
}

// JWTClaims represents the JWT payload for access tokens. SessionToken
// carries the opaque single-session token for student accounts; it is empty
// for the teacher.
type JWTClaims struct {
	UserID       string   `json:"user_id"`
	Role         UserRole `json:"role"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	SessionToken string   `json:"session_token,omitempty"`
	jwt.RegisteredClaims
}
