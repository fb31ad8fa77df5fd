// Package api wires the HTTP surface of the forwarding admin backend.
package api

import (
	"io"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/handlers"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/middleware"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/metrics"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Rate limiter defaults used when RouterConfig leaves them unset
const (
	DefaultRateLimit = 10
	DefaultRateBurst = 20
)

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB         *gorm.DB
	Logger     *slog.Logger
	Events     *logger.EventLogger
	Metrics    *metrics.Metrics
	Verifier   *identity.Verifier
	Authorizer *authz.Authorizer

	Reconciler services.ReconciliationService
	Accounts   services.AccountService
	Importer   services.ImportService
	Bootstrap  services.BootstrapService
	Stats      services.StatsService
	// Seed is only routed when EnableSeed is set
	Seed services.SeedService

	// Security configuration
	AllowedOrigins []string
	Production     bool
	// RateLimiter is shared with the cleanup loop; nil builds one from RateLimit and RateBurst
	RateLimiter *middleware.IPRateLimiter
	RateLimit   float64
	RateBurst   int

	RecentLimit int
	EnableSeed  bool
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	events := cfg.Events
	if events == nil {
		events = logger.NewEventLogger(log)
	}

	limiter := cfg.RateLimiter
	if limiter == nil {
		rps, burst := cfg.RateLimit, cfg.RateBurst
		if rps <= 0 {
			rps = DefaultRateLimit
		}
		if burst <= 0 {
			burst = DefaultRateBurst
		}
		limiter = middleware.NewIPRateLimiter(rate.Limit(rps), burst)
	}

	// Middleware order: recover, headers, CORS, rate limit, logging
	e.Use(middleware.Recover())
	e.Use(middleware.SecureHeaders())
	e.Use(middleware.SecureCORS(cfg.AllowedOrigins, cfg.Production))
	e.Use(middleware.RateLimiter(limiter, events))
	e.Use(middleware.RequestLogger(log, cfg.Metrics))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	accountHandler := handlers.NewAccountHandler(cfg.Reconciler, cfg.Accounts, cfg.Importer, cfg.Authorizer)
	userHandler := handlers.NewUserHandler(cfg.Accounts, cfg.Authorizer)
	forwardingHandler := handlers.NewForwardingHandler(cfg.Reconciler, cfg.Authorizer)
	meHandler := handlers.NewMeHandler(cfg.Reconciler, cfg.Accounts, cfg.Authorizer)
	var seed services.SeedService
	if cfg.EnableSeed {
		seed = cfg.Seed
	}
	adminHandler := handlers.NewAdminHandler(cfg.Bootstrap, cfg.Stats, seed, cfg.Authorizer, cfg.RecentLimit)

	// Health and metrics routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))

	api := e.Group("/api", middleware.Authenticate(cfg.Verifier, events))

	api.GET("/me", meHandler.Get)
	api.PUT("/me/forwarding", meHandler.SaveForwarding)

	accounts := api.Group("/accounts")
	accounts.GET("", accountHandler.List)
	accounts.GET("/export", accountHandler.Export)
	accounts.POST("", accountHandler.Create)
	accounts.POST("/import", accountHandler.Import)
	accounts.PATCH("/:id", accountHandler.Update)
	accounts.DELETE("/:id", accountHandler.Delete)
	accounts.PUT("/:id/forwarding", accountHandler.SaveForwarding)

	users := api.Group("/users")
	users.GET("", userHandler.List)
	users.GET("/export", userHandler.Export)

	forwardings := api.Group("/forwardings")
	forwardings.GET("", forwardingHandler.List)
	forwardings.PATCH("/:id/toggle", forwardingHandler.Toggle)
	forwardings.DELETE("/:id", forwardingHandler.Delete)

	admin := api.Group("/admin")
	admin.POST("/bootstrap", adminHandler.Bootstrap)
	admin.GET("/stats", adminHandler.Stats)
	if cfg.EnableSeed {
		admin.POST("/seed", adminHandler.Seed)
	}

	return e
}
