package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/response"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
	"github.com/welldanyogia/forwarding-admin-backend/internal/view"
)

// AccountHandler handles the combined account and forwarding collection
type AccountHandler struct {
	reconciler services.ReconciliationService
	accounts   services.AccountService
	importer   services.ImportService
	authz      *authz.Authorizer
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(reconciler services.ReconciliationService, accounts services.AccountService, importer services.ImportService, az *authz.Authorizer) *AccountHandler {
	return &AccountHandler{
		reconciler: reconciler,
		accounts:   accounts,
		importer:   importer,
		authz:      az,
	}
}

// ImportRequest is the body of a bulk import
type ImportRequest struct {
	Text string `json:"text"`
}

// List handles GET /api/accounts
func (h *AccountHandler) List(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionRead, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	rows, err := h.reconciler.ListCombinedView(c.Request().Context(), queryFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rows)
}

// Export handles GET /api/accounts/export
func (h *AccountHandler) Export(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionExport, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	rows, err := h.reconciler.ListCombinedView(c.Request().Context(), queryFrom(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.CSV(c, "accounts.csv", view.CombinedCSV(rows))
}

// Create handles POST /api/accounts
func (h *AccountHandler) Create(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionCreate, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	var req services.CreateAccountInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Email == "" {
		return response.BadRequest(c, "email is required")
	}

	account, err := h.accounts.CreateAccount(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, account)
}

// Update handles PATCH /api/accounts/:id
func (h *AccountHandler) Update(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionUpdate, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	var req services.UpdateAccountInput
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	account, err := h.accounts.UpdateAccount(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, account)
}

// Delete handles DELETE /api/accounts/:id
func (h *AccountHandler) Delete(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionDelete, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	if err := h.reconciler.DeleteAccount(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}

// SaveForwarding handles PUT /api/accounts/:id/forwarding
func (h *AccountHandler) SaveForwarding(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionUpdate, authz.Collection(authz.KindForwarding)); err != nil {
		return response.Error(c, err)
	}

	var req ForwardingRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	row, err := h.reconciler.SaveForwarding(c.Request().Context(), c.Param("id"), req.ForwardingEmail, models.CombinedStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, row)
}

// Import handles POST /api/accounts/import. With ?extract=true the text is
// scanned for organization addresses instead of read one per line.
func (h *AccountHandler) Import(c echo.Context) error {
	if _, err := authorize(c, h.authz, authz.ActionImport, authz.Collection(authz.KindAccount)); err != nil {
		return response.Error(c, err)
	}

	var req ImportRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	extract, _ := strconv.ParseBool(c.QueryParam("extract"))

	var (
		report *services.ImportReport
		err    error
	)
	if extract {
		report, err = h.importer.ImportExtracted(c.Request().Context(), req.Text)
	} else {
		report, err = h.importer.ImportAccounts(c.Request().Context(), req.Text)
	}
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, report)
}
