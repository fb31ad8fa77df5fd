package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/response"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
)

// AdminHandler serves the administration endpoints
type AdminHandler struct {
	bootstrap   services.BootstrapService
	stats       services.StatsService
	seed        services.SeedService
	authz       *authz.Authorizer
	recentLimit int
}

// NewAdminHandler creates a new AdminHandler. seed may be nil when seeding
// is disabled.
func NewAdminHandler(bootstrap services.BootstrapService, stats services.StatsService, seed services.SeedService, az *authz.Authorizer, recentLimit int) *AdminHandler {
	return &AdminHandler{
		bootstrap:   bootstrap,
		stats:       stats,
		seed:        seed,
		authz:       az,
		recentLimit: recentLimit,
	}
}

// BootstrapRequest names the account to make administrator
type BootstrapRequest struct {
	Email string `json:"email"`
}

// Bootstrap handles POST /api/admin/bootstrap
func (h *AdminHandler) Bootstrap(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionManage, authz.Collection(authz.KindAdmin)); err != nil {
		return response.Error(c, err)
	}

	var req BootstrapRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Email == "" {
		return response.BadRequest(c, "email is required")
	}

	result, err := h.bootstrap.EnsureAdmin(c.Request().Context(), req.Email)
	if err != nil {
		return response.Error(c, err)
	}
	return response.SuccessWithMessage(c, result, "admin "+result.Outcome())
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionRead, authz.Collection(authz.KindAdmin)); err != nil {
		return response.Error(c, err)
	}

	overview, err := h.stats.Overview(c.Request().Context(), h.recentLimit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, overview)
}

// Seed handles POST /api/admin/seed
func (h *AdminHandler) Seed(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionManage, authz.Collection(authz.KindAdmin)); err != nil {
		return response.Error(c, err)
	}
	if h.seed == nil {
		return response.NotFound(c, "seeding is disabled")
	}

	result, err := h.seed.Seed(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, result)
}
