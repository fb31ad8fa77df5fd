package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/response"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
)

// Authenticate verifies the bearer token of every request and stores the
// caller's identity in the request context.
func Authenticate(verifier *identity.Verifier, events *logger.EventLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				events.AuthFailure(c.RealIP(), c.Path(), "missing authorization header")
				return response.Unauthorized(c, "missing authorization header")
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				events.AuthFailure(c.RealIP(), c.Path(), "malformed authorization header")
				return response.Unauthorized(c, "authorization header must be a bearer token")
			}

			id, err := verifier.Verify(token)
			if err != nil {
				reason := "invalid token"
				if errors.Is(err, identity.ErrExpiredToken) {
					reason = "token expired"
				}
				events.AuthFailure(c.RealIP(), c.Path(), reason)
				return response.Unauthorized(c, reason)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(identity.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}
