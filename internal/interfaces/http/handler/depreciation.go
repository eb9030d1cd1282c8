package handler

import (
	assetapp "github.com/buildcore/backend/internal/application/asset"
	"github.com/buildcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DepreciationHandler handles depreciation run and ledger API endpoints
type DepreciationHandler struct {
	BaseHandler
	service *assetapp.DepreciationService
}

// NewDepreciationHandler creates a new DepreciationHandler
func NewDepreciationHandler(service *assetapp.DepreciationService) *DepreciationHandler {
	return &DepreciationHandler{service: service}
}

// Generate runs depreciation generation for the current month
func (h *DepreciationHandler) Generate(c *gin.Context) {
	result, err := h.service.GenerateDepreciation(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListSchedules lists schedule rows joined with asset identity
func (h *DepreciationHandler) ListSchedules(c *gin.Context) {
	var filter assetapp.ScheduleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	schedules, total, err := h.service.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, schedules, total, filter.Page, filter.PageSize)
}

// Summary returns ledger-wide depreciation totals
func (h *DepreciationHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summarize(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
