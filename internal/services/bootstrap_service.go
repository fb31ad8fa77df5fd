package services

import (
	"context"
	"errors"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/metrics"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
	"github.com/welldanyogia/forwarding-admin-backend/internal/validator"
)

// BootstrapResult reports what EnsureAdmin changed
type BootstrapResult struct {
	Created  bool            `json:"created"`
	Promoted bool            `json:"promoted"`
	Account  *models.Account `json:"account"`
}

// Outcome names the result for logs and metrics
func (r *BootstrapResult) Outcome() string {
	switch {
	case r.Created:
		return "created"
	case r.Promoted:
		return "promoted"
	default:
		return "unchanged"
	}
}

// BootstrapService guarantees an administrator account exists
type BootstrapService interface {
	EnsureAdmin(ctx context.Context, adminEmail string) (*BootstrapResult, error)
}

type bootstrapService struct {
	accounts repository.AccountRepository
	events   *logger.EventLogger
	metrics  *metrics.Metrics
}

// NewBootstrapService creates a new BootstrapService instance
func NewBootstrapService(accounts repository.AccountRepository, events *logger.EventLogger, m *metrics.Metrics) BootstrapService {
	if events == nil {
		events = logger.NewEventLogger(nil)
	}
	return &bootstrapService{accounts: accounts, events: events, metrics: m}
}

// EnsureAdmin creates adminEmail as an active ADMIN, or promotes an existing
// non-admin account. An existing ADMIN is left untouched. Repeated calls
// converge on exactly one ADMIN account for the address.
func (s *bootstrapService) EnsureAdmin(ctx context.Context, adminEmail string) (*BootstrapResult, error) {
	email := validator.NormalizeEmail(adminEmail)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, apperrors.Validation("admin email %q is invalid: %v", adminEmail, err)
	}

	result, err := s.ensure(ctx, email)
	if err != nil {
		return nil, err
	}

	s.events.BootstrapOutcome(email, result.Created, result.Promoted)
	s.metrics.IncBootstrap(result.Outcome())
	return result, nil
}

func (s *bootstrapService) ensure(ctx context.Context, email string) (*BootstrapResult, error) {
	existing, err := s.find(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		account := &models.Account{Email: email, Role: models.RoleAdmin, Status: models.AccountActive}
		err := s.accounts.Create(ctx, account)
		if err == nil {
			return &BootstrapResult{Created: true, Account: account}, nil
		}
		if !errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, translate(err, "account")
		}

		// Handle race condition - a concurrent bootstrap created it first
		existing, err = s.find(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperrors.Store(errors.New("account rejected as duplicate but not found"), "bootstrap admin")
		}
	}

	if existing.Role == models.RoleAdmin {
		return &BootstrapResult{Account: existing}, nil
	}

	role := models.RoleAdmin
	status := models.AccountActive
	promoted, err := s.accounts.Update(ctx, existing.ID, repository.AccountUpdate{Role: &role, Status: &status})
	if err != nil {
		return nil, translate(err, "account")
	}
	return &BootstrapResult{Promoted: true, Account: promoted}, nil
}

func (s *bootstrapService) find(ctx context.Context, email string) (*models.Account, error) {
	accounts, err := s.accounts.List(ctx, repository.AccountFilter{Email: email})
	if err != nil {
		return nil, translate(err, "accounts")
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}
