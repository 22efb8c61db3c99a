package dto

import (
	"time"

	"giglink_backend/internal/models"
)

// RequestOTPRequest starts a login. Exactly one of email/phone_number must be
// set; the service rejects requests carrying neither.
type RequestOTPRequest struct {
	Email       string          `json:"email" validate:"omitempty,email"`
	PhoneNumber string          `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Role        models.UserRole `json:"role" validate:"omitempty,is-user-role"`
}

type RequestOTPResponse struct {
	UserID    string      `json:"userId"`
	Profile   UserSummary `json:"profile"`
	IsNewUser bool        `json:"isNewUser"`
}

// VerifyOTPRequest completes a login. Name and Password are consumed only for
// first-time registrants, where both are mandatory.
type VerifyOTPRequest struct {
	UserID   string `json:"userId" validate:"required,uuid4"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type FirebaseSignInRequest struct {
	IDToken  string `json:"idToken" validate:"required"`
	FCMToken string `json:"fcmToken"`
}

// AuthResponse is the session payload returned by verify-otp and
// firebase-signin.
type AuthResponse struct {
	User      UserSummary `json:"user"`
	Token     string      `json:"token"`
	IsNewUser bool        `json:"isNewUser"`
}

// UserSummary is the sanitized user shape embedded in auth responses. Secrets
// (password hash, otp, session token) never leave the models layer.
type UserSummary struct {
	ID           string          `json:"id"`
	Email        *string         `json:"email"`
	PhoneNumber  *string         `json:"phone_number"`
	Name         string          `json:"name"`
	Role         models.UserRole `json:"role"`
	ProfileImage string          `json:"profile_image,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:           user.ID,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		Name:         user.Name,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
	}
}
