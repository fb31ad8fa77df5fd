// Package middleware provides HTTP middleware for the forwarding admin API.
package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/welldanyogia/forwarding-admin-backend/internal/metrics"
)

// RequestLogger returns a middleware that logs HTTP requests and records
// them in m when it is non-nil
func RequestLogger(logger *slog.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let echo write the response so the status below is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := time.Since(start)

			logger.Info("request",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", elapsed),
				slog.String("remote_ip", c.RealIP()),
			)
			m.ObserveRequest(req.Method, routeOf(c), res.Status, elapsed)

			return nil
		}
	}
}

// routeOf returns the registered route pattern, keeping label cardinality bounded
func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return "unmatched"
}

// Recover returns a middleware that recovers from panics
func Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}
