package handlers

import (
	"giglink_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MasterHandler struct {
	*BaseHandler
	masterService services.MasterService
}

func NewMasterHandler(base *BaseHandler, masterService services.MasterService) *MasterHandler {
	return &MasterHandler{
		BaseHandler:   base,
		masterService: masterService,
	}
}

func (h *MasterHandler) ListCategories(c *gin.Context) {
	resp, err := h.masterService.ListCategories(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Ok(c, "Categories fetched successfully", resp)
}
