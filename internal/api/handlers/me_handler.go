package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/response"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
)

// MeHandler serves the signed-in account's own row
type MeHandler struct {
	reconciler services.ReconciliationService
	accounts   services.AccountService
	authz      *authz.Authorizer
}

// NewMeHandler creates a new MeHandler
func NewMeHandler(reconciler services.ReconciliationService, accounts services.AccountService, az *authz.Authorizer) *MeHandler {
	return &MeHandler{reconciler: reconciler, accounts: accounts, authz: az}
}

// Get handles GET /api/me and records the sign-in
func (h *MeHandler) Get(c echo.Context) error {
	id, err := identity.FromContext(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	if _, err := authorize(c, h.authz, authz.ActionRead, authz.Owned(authz.KindAccount, id.Email)); err != nil {
		return response.Error(c, err)
	}

	account, err := h.accounts.TouchLastLogin(c.Request().Context(), id.Email)
	if err != nil {
		return response.Error(c, err)
	}
	row, err := h.reconciler.GetCombined(c.Request().Context(), account.ID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, row)
}

// SaveForwarding handles PUT /api/me/forwarding. Account holders may only
// switch their rule between ACTIVE and PAUSED; the account status stays
// under administrator control.
func (h *MeHandler) SaveForwarding(c echo.Context) error {
	id, err := identity.FromContext(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	if _, err := authorize(c, h.authz, authz.ActionUpdate, authz.Owned(authz.KindForwarding, id.Email)); err != nil {
		return response.Error(c, err)
	}

	var req ForwardingRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	status := models.ForwardingStatus(req.Status)
	if !status.IsValid() {
		return response.BadRequest(c, "status must be ACTIVE or PAUSED")
	}

	account, err := h.accounts.FindByEmail(c.Request().Context(), id.Email)
	if err != nil {
		return response.Error(c, err)
	}
	row, err := h.reconciler.SaveForwardingRule(c.Request().Context(), account.ID, req.ForwardingEmail, status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, row)
}
