// Package handlers implements the HTTP endpoints of the forwarding admin API.
package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/view"
)

// authorize resolves the caller and checks it may perform action on res
func authorize(c echo.Context, az *authz.Authorizer, action authz.Action, res authz.Resource) (identity.Identity, error) {
	id, err := identity.FromContext(c.Request().Context())
	if err != nil {
		return identity.Identity{}, err
	}
	if err := az.Authorize(id, action, res); err != nil {
		return identity.Identity{}, err
	}
	return id, nil
}

// queryFrom reads the collection view parameters q, status, role, sort and dir
func queryFrom(c echo.Context) view.Query {
	return view.Query{
		Search:    c.QueryParam("q"),
		Status:    c.QueryParam("status"),
		Role:      c.QueryParam("role"),
		SortKey:   c.QueryParam("sort"),
		Direction: view.ParseDirection(c.QueryParam("dir")),
	}
}

// ForwardingRequest is the body of a forwarding edit. An empty
// forwarding_email keeps the current target.
type ForwardingRequest struct {
	ForwardingEmail string `json:"forwarding_email"`
	Status          string `json:"status"`
}
