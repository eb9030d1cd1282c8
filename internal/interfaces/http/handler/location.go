package handler

import (
	assetapp "github.com/buildcore/backend/internal/application/asset"
	"github.com/buildcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// LocationHandler handles asset movement API endpoints
type LocationHandler struct {
	BaseHandler
	service *assetapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(service *assetapp.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// RecordMovement appends a movement record and updates the asset's location
func (h *LocationHandler) RecordMovement(c *gin.Context) {
	var req assetapp.RecordLocationChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user is required")
		return
	}

	resp, err := h.service.RecordLocationChange(c.Request.Context(), req, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListHistory lists all movement records, newest first, optionally narrowed
// by a free-text query
func (h *LocationHandler) ListHistory(c *gin.Context) {
	query := c.Query("q")

	entries, err := h.service.ListHistory(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListAssetHistory lists one asset's movement records, newest first
func (h *LocationHandler) ListAssetHistory(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	entries, err := h.service.ListHistoryForAsset(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
