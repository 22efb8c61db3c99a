package models

import (
	"time"

	"gorm.io/datatypes"
)

// User carries identity, auth state and profile in a single row. Email and
// phone are nullable uniques: exactly one of them is enough to request an
// OTP. An empty Name marks a provisional account that has not completed
// signup yet.
type User struct {
	BaseModel
	Email        *string  `gorm:"uniqueIndex" json:"email"`
	PhoneNumber  *string  `gorm:"uniqueIndex" json:"phone_number"`
	Name         string   `json:"name"`
	PasswordHash string   `gorm:"column:password_hash" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	// OTP and OTPExpiry are always set and cleared together.
	OTP       *string    `gorm:"column:otp" json:"-"`
	OTPExpiry *time.Time `gorm:"column:otp_expiry" json:"-"`

	// SessionToken holds the raw JWT of the single active session. Clearing
	// it revokes every previously issued token for this user.
	SessionToken *string `gorm:"column:session_token" json:"-"`
	PushToken    string  `json:"-"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Profile
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zip_code"`
	Country      string  `json:"country"`
	Gender       string  `json:"gender"`
	Height       float64 `json:"height"`
	Weight       float64 `json:"weight"`
	ProfileImage string  `json:"profile_image"`

	// Recruiter-only fields
	CompanyName         string         `json:"company_name,omitempty"`
	CompanyType         string         `json:"company_type,omitempty"`
	CompanyRegistration string         `json:"company_registration,omitempty"`
	CompanyAddress      string         `json:"company_address,omitempty"`
	CompanyLogo         string         `json:"company_logo,omitempty"`
	Industries          datatypes.JSON `gorm:"type:jsonb" json:"industries,omitempty"`
	GigTypes            datatypes.JSON `gorm:"type:jsonb" json:"gig_types,omitempty"`
}

// IsProvisional reports whether the account was created by an OTP request
// and has not completed signup.
func (u *User) IsProvisional() bool {
	return u.Name == ""
}

// Identifier returns the contact the user authenticates with.
func (u *User) Identifier() string {
	if u.Email != nil && *u.Email != "" {
		return *u.Email
	}
	if u.PhoneNumber != nil {
		return *u.PhoneNumber
	}
	return ""
}
