package handlers

import (
	"giglink_backend/internal/services"
	"giglink_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RequestOTP issues a login code to an email or phone identifier, creating a
// provisional account for unknown identifiers.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.RequestOTP(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "OTP sent successfully", resp)
}

// VerifyOTP exchanges a valid code for a session token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.VerifyOTP(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "OTP verified successfully", resp)
}

// FirebaseSignIn signs in with a federated identity assertion.
func (h *AuthHandler) FirebaseSignIn(c *gin.Context) {
	var req dto.FirebaseSignInRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.FirebaseSignIn(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Signed in successfully", resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Logged out successfully", nil)
}

func (h *AuthHandler) DeleteProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteProfile(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Profile deleted successfully", nil)
}
