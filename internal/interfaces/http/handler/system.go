package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/buildcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	dbPinger  func() error
}

// NewSystemHandler creates a new SystemHandler.
// dbPinger may be nil when no database check is wanted.
func NewSystemHandler(dbPinger func() error) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		dbPinger:  dbPinger,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Asset Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// Ping is a liveness check
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}

// Health reports service health, including database reachability
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	if h.dbPinger != nil {
		if err := h.dbPinger(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}
