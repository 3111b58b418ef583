package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
	version   string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now(), version: version}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := gin.H{"database": "ok"}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			checks["database"] = "unreachable"
		}
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":  status,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).String(),
		"checks":  checks,
	}))
}
