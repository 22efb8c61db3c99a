package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrappingAndUnwrap(t *testing.T) {
	cause := errors.New("record not found")
	appErr := ErrNotFound(cause)

	assert.Equal(t, CodeNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.True(t, Is(appErr, cause), "wrapped cause must survive errors.Is")

	var target *AppError
	assert.True(t, As(appErr, &target))
	assert.Equal(t, appErr, target)
}

func TestDomainErrors_StatusCodes(t *testing.T) {
	cases := []struct {
		err      *AppError
		httpCode int
		code     ErrorCode
	}{
		{ErrOTPExpired, http.StatusBadRequest, CodeValidationFailed},
		{ErrOTPMismatch, http.StatusBadRequest, CodeValidationFailed},
		{ErrInvalidToken, http.StatusUnauthorized, CodeInvalidToken},
		{ErrInsufficientPermissions, http.StatusForbidden, CodeForbidden},
		{ErrInvalidStatusFilter, http.StatusBadRequest, CodeInvalidStatus},
		{ErrNotPostOwner, http.StatusForbidden, CodeForbidden},
		{ErrOTPDispatchFailed(errors.New("smtp down")), http.StatusServiceUnavailable, CodeExternalServiceError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.httpCode, tc.err.HTTPCode, tc.err.Message)
		assert.Equal(t, tc.code, tc.err.Code, tc.err.Message)
	}
}

func TestHandleError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, ValidationError(map[string]string{"email": "invalid email"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, CodeValidationFailed, resp.Code)
	assert.Equal(t, "Validation failed", resp.Message)
}

func TestHandleError_UnknownErrorBecomesInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, errors.New("somebody set up us the bomb"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeInternalError, resp.Code)
}

func TestSetDebug_HidesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	SetDebug(false)
	defer SetDebug(true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleError(c, ValidationError(map[string]string{"email": "invalid email"}))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Details, "details must not leak outside debug mode")
}
