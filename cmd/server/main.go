package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/welldanyogia/forwarding-admin-backend/internal/api"
	"github.com/welldanyogia/forwarding-admin-backend/internal/api/middleware"
	"github.com/welldanyogia/forwarding-admin-backend/internal/authz"
	"github.com/welldanyogia/forwarding-admin-backend/internal/config"
	"github.com/welldanyogia/forwarding-admin-backend/internal/database"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/metrics"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout      = 15 * time.Second
	limiterSweepInterval = 5 * time.Minute
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadWithValidation()
	if err != nil {
		return err
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	slog.Info("Starting forwarding admin backend...")
	cfg.LogConfig(log)

	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		AppEnv:          cfg.AppEnv,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories and services
	events := logger.NewEventLogger(log)
	m := metrics.New()
	accounts := repository.NewAccountRepository(db)
	forwardings := repository.NewForwardingRepository(db)

	reconciler := services.NewReconciliationService(accounts, forwardings, events, m)
	bootstrap := services.NewBootstrapService(accounts, events, m)

	if cfg.AdminEmail != "" {
		result, err := bootstrap.EnsureAdmin(ctx, cfg.AdminEmail)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		slog.Info("admin account ensured", slog.String("outcome", result.Outcome()))
	}

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRequests), cfg.RateLimitBurst)
	router := api.NewRouter(&api.RouterConfig{
		DB:             db,
		Logger:         log,
		Events:         events,
		Metrics:        m,
		Verifier:       identity.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Authorizer:     authz.New(cfg.PrivilegedEmails(), events),
		Reconciler:     reconciler,
		Accounts:       services.NewAccountService(accounts, forwardings, cfg.OrgDomain, events, m),
		Importer:       services.NewImportService(accounts, cfg.OrgDomain, cfg.ImportConcurrency, events, m),
		Bootstrap:      bootstrap,
		Stats:          services.NewStatsService(accounts, forwardings),
		Seed:           services.NewSeedService(accounts, reconciler, cfg.OrgDomain),
		AllowedOrigins: cfg.Origins(),
		Production:     cfg.IsProduction(),
		RateLimiter:    limiter,
		RecentLimit:    cfg.RecentActivityLimit,
		EnableSeed:     !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return limiter.Run(gctx, limiterSweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Server stopped")
	return nil
}
