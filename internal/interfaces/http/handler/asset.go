package handler

import (
	"context"

	assetapp "github.com/buildcore/backend/internal/application/asset"
	"github.com/buildcore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssetHandler handles asset ledger API endpoints
type AssetHandler struct {
	BaseHandler
	service *assetapp.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(service *assetapp.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// LocationActionRequest carries a target location for allocate operations
type LocationActionRequest struct {
	Location string `json:"location" binding:"required"`
}

// DisposeRequest carries the reason for a disposal
type DisposeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Create creates a new asset
func (h *AssetHandler) Create(c *gin.Context) {
	var req assetapp.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.CreateAsset(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one asset by ID
func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.service.GetAssetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update updates an asset's mutable fields
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req assetapp.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.UpdateAsset(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List lists assets with filtering and pagination
func (h *AssetHandler) List(c *gin.Context) {
	var filter assetapp.AssetListFilter
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

	assets, total, err := h.service.ListAssets(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, assets, total, filter.Page, filter.PageSize)
}

// Allocate assigns an asset to a site or project
func (h *AssetHandler) Allocate(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req LocationActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user is required")
		return
	}

	resp, err := h.service.AllocateAsset(c.Request.Context(), id, req.Location, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Release returns an allocated asset to the pool
func (h *AssetHandler) Release(c *gin.Context) {
	h.lifecycleAction(c, h.service.ReleaseAsset)
}

// StartMaintenance takes an asset out of service
func (h *AssetHandler) StartMaintenance(c *gin.Context) {
	h.lifecycleAction(c, h.service.StartMaintenance)
}

// EndMaintenance returns an asset to active status
func (h *AssetHandler) EndMaintenance(c *gin.Context) {
	h.lifecycleAction(c, h.service.EndMaintenance)
}

// Dispose retires an asset permanently
func (h *AssetHandler) Dispose(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req DisposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user is required")
		return
	}

	resp, err := h.service.DisposeAsset(c.Request.Context(), id, userID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// lifecycleAction handles transitions that need only the asset and acting user
func (h *AssetHandler) lifecycleAction(
	c *gin.Context,
	fn func(ctx context.Context, id, userID uuid.UUID) (*assetapp.AssetResponse, error),
) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Acting user is required")
		return
	}

	resp, err := fn(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
