package dto

import (
	"time"

	"giglink_backend/internal/models"
)

// UpdateProfileRequest binds from multipart form data; the profile image file
// part is handled separately by the handler.
type UpdateProfileRequest struct {
	Name    string  `form:"name" json:"name" validate:"omitempty,min=2,max=100"`
	Address string  `form:"address" json:"address"`
	City    string  `form:"city" json:"city"`
	State   string  `form:"state" json:"state"`
	ZipCode string  `form:"zip_code" json:"zip_code"`
	Country string  `form:"country" json:"country"`
	Gender  string  `form:"gender" json:"gender" validate:"omitempty,oneof=male female other"`
	Height  float64 `form:"height" json:"height" validate:"omitempty,gte=0"`
	Weight  float64 `form:"weight" json:"weight" validate:"omitempty,gte=0"`
}

type UpdateRecruiterProfileRequest struct {
	CompanyName         string   `json:"company_name" validate:"required,min=2,max=200"`
	CompanyType         string   `json:"company_type"`
	CompanyRegistration string   `json:"company_registration"`
	CompanyAddress      string   `json:"company_address"`
	Industries          []string `json:"industries" validate:"omitempty,max=50,dive,min=1"`
	GigTypes            []string `json:"gig_types" validate:"omitempty,max=50,dive,min=1"`
}

// ProfileResponse is the full sanitized profile.
type ProfileResponse struct {
	ID           string          `json:"id"`
	Email        *string         `json:"email"`
	PhoneNumber  *string         `json:"phone_number"`
	Name         string          `json:"name"`
	Role         models.UserRole `json:"role"`
	Address      string          `json:"address,omitempty"`
	City         string          `json:"city,omitempty"`
	State        string          `json:"state,omitempty"`
	ZipCode      string          `json:"zip_code,omitempty"`
	Country      string          `json:"country,omitempty"`
	Gender       string          `json:"gender,omitempty"`
	Height       float64         `json:"height,omitempty"`
	Weight       float64         `json:"weight,omitempty"`
	ProfileImage string          `json:"profile_image,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Company *CompanyProfile `json:"company,omitempty"`
}

type CompanyProfile struct {
	Name         string   `json:"name"`
	Type         string   `json:"type,omitempty"`
	Registration string   `json:"registration,omitempty"`
	Address      string   `json:"address,omitempty"`
	Logo         string   `json:"logo,omitempty"`
	Industries   []string `json:"industries"`
	GigTypes     []string `json:"gig_types"`
}

type UserListResponse struct {
	Users      []ProfileResponse `json:"users"`
	Pagination Pagination        `json:"pagination"`
}
