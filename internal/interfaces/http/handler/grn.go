package handler

import (
	assetapp "github.com/buildcore/backend/internal/application/asset"
	"github.com/buildcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// GRNHandler handles goods receipt note API endpoints
type GRNHandler struct {
	BaseHandler
	service *assetapp.GRNService
}

// NewGRNHandler creates a new GRNHandler
func NewGRNHandler(service *assetapp.GRNService) *GRNHandler {
	return &GRNHandler{service: service}
}

// Create records a new goods receipt note
func (h *GRNHandler) Create(c *gin.Context) {
	var req assetapp.SaveGRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user is required")
		return
	}

	resp, err := h.service.SaveGRN(c.Request.Context(), req, nil, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Replace fully overwrites an existing goods receipt note
func (h *GRNHandler) Replace(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req assetapp.SaveGRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user is required")
		return
	}

	resp, err := h.service.SaveGRN(c.Request.Context(), req, &id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns one goods receipt note by ID
func (h *GRNHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.GetGRNByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List lists goods receipt notes, newest receipt first, optionally narrowed
// by a substring query
func (h *GRNHandler) List(c *gin.Context) {
	query := c.Query("q")

	grns, err := h.service.ListGRNs(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, grns)
}
