package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/response"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
)

// ForwardingHandler serves the forwarding-only collection
type ForwardingHandler struct {
	reconciler services.ReconciliationService
	authz      *authz.Authorizer
}

// NewForwardingHandler creates a new ForwardingHandler
func NewForwardingHandler(reconciler services.ReconciliationService, az *authz.Authorizer) *ForwardingHandler {
	return &ForwardingHandler{reconciler: reconciler, authz: az}
}

// List handles GET /api/forwardings
func (h *ForwardingHandler) List(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionRead, authz.Collection(authz.KindForwarding)); err != nil {
		return response.Error(c, err)
	}

	rows, err := h.reconciler.ListForwardings(c.Request().Context(), queryFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rows)
}

// Toggle handles PATCH /api/forwardings/:id/toggle
func (h *ForwardingHandler) Toggle(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionUpdate, authz.Collection(authz.KindForwarding)); err != nil {
		return response.Error(c, err)
	}

	config, err := h.reconciler.ToggleForwarding(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, config)
}

// Delete handles DELETE /api/forwardings/:id
func (h *ForwardingHandler) Delete(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionDelete, authz.Collection(authz.KindForwarding)); err != nil {
		return response.Error(c, err)
	}

	if err := h.reconciler.DeleteForwarding(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}
