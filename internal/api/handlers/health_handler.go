package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/database"
	"gorm.io/gorm"
)

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse reports the database connection and the two store tables
type HealthResponse struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Tables   map[string]string `json:"tables,omitempty"`
}

// Health handles GET /health. Tables are only inspected once the database
// answers; a missing table makes the service unhealthy.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()
	resp := HealthResponse{Status: "healthy", Database: "healthy"}

	if err := database.Ping(ctx, h.db); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "unhealthy"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}

	resp.Tables = make(map[string]string, 2)
	for name, present := range database.Tables(ctx, h.db) {
		if !present {
			resp.Tables[name] = "missing"
			resp.Status = "unhealthy"
			continue
		}
		resp.Tables[name] = "present"
	}

	if resp.Status != "healthy" {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	if err := database.Ping(c.Request().Context(), h.db); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "database ping failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
	})
}
