package handlers

import (
	"giglink_backend/internal/models"
	"giglink_backend/internal/services"
	"giglink_backend/internal/services/dto"
	"giglink_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	*BaseHandler
	postService        services.PostService
	applicationService services.ApplicationService
}

func NewPostHandler(
	base *BaseHandler,
	postService services.PostService,
	applicationService services.ApplicationService,
) *PostHandler {
	return &PostHandler{
		BaseHandler:        base,
		postService:        postService,
		applicationService: applicationService,
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.postService.CreatePost(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, "Post created successfully", resp)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.postService.UpdatePost(h.GetDB(c), userID, postID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Post updated successfully", resp)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(h.GetDB(c), userID, postID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Post deleted successfully", nil)
}

// GetAllPosts is the job-seeker feed with optional location filter.
func (h *PostHandler) GetAllPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, limit := ParsePagination(c)
	location := c.Query("location")

	resp, err := h.postService.GetAllPosts(h.GetDB(c), userID, location, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Posts fetched successfully", resp)
}

func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	resp, err := h.postService.GetPostByID(h.GetDB(c), postID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Post fetched successfully", resp)
}

func (h *PostHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	// Body is optional: an application without a cover note is fine.
	var req dto.ApplyRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	resp, err := h.applicationService.Apply(h.GetDB(c), userID, postID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, "Application submitted successfully", resp)
}

func (h *PostHandler) GetAppliedPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, limit := ParsePagination(c)

	resp, err := h.applicationService.GetAppliedPosts(h.GetDB(c), userID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Applied posts fetched successfully", resp)
}

func (h *PostHandler) SavePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.SavePost(h.GetDB(c), userID, postID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, "Post saved successfully", nil)
}

func (h *PostHandler) UnsavePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.UnsavePost(h.GetDB(c), userID, postID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Post unsaved successfully", nil)
}

func (h *PostHandler) GetSavedPosts(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, limit := ParsePagination(c)

	resp, err := h.postService.GetSavedPosts(h.GetDB(c), userID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Saved posts fetched successfully", resp)
}

// UpdateApplicationStatus moves an application through the owner's pipeline.
// The :id here is the application id.
func (h *PostHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applicationID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.applicationService.SetStatus(h.GetDB(c), userID, applicationID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Application status updated successfully", resp)
}

// GetOwnerDashboard lists the recruiter's own posts with applicant metrics,
// split by filter=ACTIVE|COMPLETED.
func (h *PostHandler) GetOwnerDashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, limit := ParsePagination(c)
	filter := models.PostFilter(c.Query("filter"))
	if filter != "" && filter != models.PostFilterActive && filter != models.PostFilterCompleted {
		apperrors.HandleError(c, apperrors.NewBadRequestError("filter must be ACTIVE or COMPLETED"))
		return
	}

	resp, err := h.postService.GetOwnerDashboard(h.GetDB(c), userID, filter, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Posts fetched successfully", resp)
}

// ListApplications is the owner's applicant list for one post.
func (h *PostHandler) ListApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	postID, ok := h.requireIDParam(c)
	if !ok {
		return
	}

	page, limit := ParsePagination(c)
	status := models.ApplicationStatus(c.Query("status"))
	switch status {
	case "", models.ApplicationStatusPending, models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
	default:
		apperrors.HandleError(c, apperrors.ErrInvalidStatusFilter)
		return
	}

	resp, err := h.applicationService.ListForPost(h.GetDB(c), userID, postID, status, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Applications fetched successfully", resp)
}

func (h *BaseHandler) requireIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required path parameter: id"))
		return "", false
	}
	return id, true
}
