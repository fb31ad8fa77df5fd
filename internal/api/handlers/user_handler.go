package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/response"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
	"github.com/welldanyogia/forwarding-admin-backend/internal/view"
)

// UserHandler serves the accounts-only collection
type UserHandler struct {
	accounts services.AccountService
	authz    *authz.Authorizer
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(accounts services.AccountService, az *authz.Authorizer) *UserHandler {
	return &UserHandler{accounts: accounts, authz: az}
}

// List handles GET /api/users
func (h *UserHandler) List(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionRead, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	accounts, err := h.accounts.ListAccounts(c.Request().Context(), queryFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, accounts)
}

// Export handles GET /api/users/export
func (h *UserHandler) Export(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionExport, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	accounts, err := h.accounts.ListAccounts(c.Request().Context(), queryFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.CSV(c, "users.csv", view.AccountsCSV(accounts))
}
