package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"giglink_backend/internal/config"
	"giglink_backend/internal/logger"
	"giglink_backend/internal/services"
	"giglink_backend/internal/services/dto"
	"giglink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Profile fetched successfully", resp)
}

// UpdateProfile accepts multipart form data; the optional profile_image part
// is stored on disk and referenced by URL.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_Form(c, &req) {
		return
	}

	var imageURL string
	if file, err := c.FormFile("profile_image"); err == nil {
		imageURL, err = h.storeUpload(c, file)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	resp, err := h.userService.UpdateProfile(h.GetDB(c), userID, &req, imageURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Profile updated successfully", resp)
}

func (h *UserHandler) UpdateRecruiterProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRecruiterProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateRecruiterProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Company profile updated successfully", resp)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := ParsePagination(c)

	resp, err := h.userService.ListUsers(h.GetDB(c), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Users fetched successfully", resp)
}

func (h *UserHandler) storeUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", apperrors.NewBadRequestError("Unsupported image type: " + ext)
	}

	cfg := config.GetConfig()
	if err := os.MkdirAll(cfg.Storage.BasePath, 0o755); err != nil {
		return "", apperrors.InternalError(err)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(cfg.Storage.BasePath, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to store upload", err, "dst", dst)
		return "", apperrors.InternalError(err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Storage.BaseURL, "/"), name), nil
}
