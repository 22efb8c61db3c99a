package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"giglink_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Envelope mirrors the API response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ParseEnvelope decodes a response body and optionally its data payload.
func ParseEnvelope(t *testing.T, body string, data interface{}) Envelope {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env), "response is not a valid envelope: %s", body)
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data), "failed to decode envelope data: %s", body)
	}
	return env
}

// ReadStoredOTP pulls the code straight from the database; tests have no
// inbox to read from.
func ReadStoredOTP(t *testing.T, db *gorm.DB, userID string) string {
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error, "failed to load user %s", userID)
	require.NotNil(t, user.OTP, "user %s has no stored OTP", userID)
	return *user.OTP
}

// SignupViaOTP runs the full request-otp + verify-otp flow through the API
// and returns the session token with the persisted user.
func SignupViaOTP(t *testing.T, ts *TestServer, email, name string, role models.UserRole) (string, *models.User) {
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/request-otp", "", map[string]interface{}{
		"email": email,
		"role":  role,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "request-otp should succeed: "+body)

	var otpData struct {
		UserID    string `json:"userId"`
		IsNewUser bool   `json:"isNewUser"`
	}
	ParseEnvelope(t, body, &otpData)
	require.NotEmpty(t, otpData.UserID)

	code := ReadStoredOTP(t, ts.DB, otpData.UserID)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/verify-otp", "", map[string]interface{}{
		"userId":   otpData.UserID,
		"otp":      code,
		"name":     name,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "verify-otp should succeed: "+body)

	var authData struct {
		Token string `json:"token"`
	}
	ParseEnvelope(t, body, &authData)
	require.NotEmpty(t, authData.Token, "session token must not be empty")

	var user models.User
	require.NoError(t, ts.DB.First(&user, "id = ?", otpData.UserID).Error)

	return authData.Token, &user
}

// CreateAndLoginSeeker signs up a job-seeker with a unique email.
func CreateAndLoginSeeker(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("seeker_%d@test.com", time.Now().UnixNano())
	return SignupViaOTP(t, ts, email, "Test Seeker", models.UserRoleUser)
}

// CreateAndLoginRecruiter signs up a recruiter with a unique email.
func CreateAndLoginRecruiter(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("recruiter_%d@test.com", time.Now().UnixNano())
	return SignupViaOTP(t, ts, email, "Test Recruiter", models.UserRoleRecruiter)
}

// CreateTestPost inserts a post directly, bypassing the API.
func CreateTestPost(t *testing.T, db *gorm.DB, ownerID, title, location string, endDate time.Time) models.Post {
	post := models.Post{
		UserID:    ownerID,
		Title:     title,
		Content:   "Test content",
		Location:  location,
		StartDate: endDate.AddDate(0, 0, -7),
		EndDate:   endDate,
		IsActive:  true,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}

// AssertErrorCode checks the machine-readable code on an error response.
func AssertErrorCode(t *testing.T, body string, expected string) {
	env := ParseEnvelope(t, body, nil)
	assert.False(t, env.Success)
	assert.Equal(t, expected, env.Code, "unexpected error code in: "+body)
}
