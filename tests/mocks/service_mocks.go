// Package mocks provides testify mocks of the service interfaces for handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/services"
	"github.com/welldanyogia/forwarding-admin-backend/internal/view"
)

// MockReconciliationService implements services.ReconciliationService
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Snapshot(ctx context.Context) (*services.ReconcileResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReconcileResult), args.Error(1)
}

func (m *MockReconciliationService) ListCombinedView(ctx context.Context, q view.Query) ([]models.CombinedView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CombinedView), args.Error(1)
}

func (m *MockReconciliationService) GetCombined(ctx context.Context, accountID string) (*models.CombinedView, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CombinedView), args.Error(1)
}

func (m *MockReconciliationService) SaveForwarding(ctx context.Context, accountID, forwardingEmail string, desired models.CombinedStatus) (*models.CombinedView, error) {
	args := m.Called(ctx, accountID, forwardingEmail, desired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CombinedView), args.Error(1)
}

func (m *MockReconciliationService) SaveForwardingRule(ctx context.Context, accountID, forwardingEmail string, status models.ForwardingStatus) (*models.CombinedView, error) {
	args := m.Called(ctx, accountID, forwardingEmail, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CombinedView), args.Error(1)
}

func (m *MockReconciliationService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockReconciliationService) ListForwardings(ctx context.Context, q view.Query) ([]models.ForwardingConfig, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ForwardingConfig), args.Error(1)
}

func (m *MockReconciliationService) ToggleForwarding(ctx context.Context, forwardingID string) (*models.ForwardingConfig, error) {
	args := m.Called(ctx, forwardingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForwardingConfig), args.Error(1)
}

func (m *MockReconciliationService) DeleteForwarding(ctx context.Context, forwardingID string) error {
	args := m.Called(ctx, forwardingID)
	return args.Error(0)
}

// MockAccountService implements services.AccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, input services.CreateAccountInput) (*models.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, id string, input services.UpdateAccountInput) (*models.Account, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, q view.Query) ([]models.Account, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountService) TouchLastLogin(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockImportService implements services.ImportService
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportAccounts(ctx context.Context, raw string) (*services.ImportReport, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ImportReport), args.Error(1)
}

func (m *MockImportService) ImportExtracted(ctx context.Context, text string) (*services.ImportReport, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ImportReport), args.Error(1)
}

// MockBootstrapService implements services.BootstrapService
type MockBootstrapService struct {
	mock.Mock
}

func (m *MockBootstrapService) EnsureAdmin(ctx context.Context, adminEmail string) (*services.BootstrapResult, error) {
	args := m.Called(ctx, adminEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BootstrapResult), args.Error(1)
}

// MockStatsService implements services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Overview(ctx context.Context, recentLimit int) (*services.Overview, error) {
	args := m.Called(ctx, recentLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Overview), args.Error(1)
}

// MockSeedService implements services.SeedService
type MockSeedService struct {
	mock.Mock
}

func (m *MockSeedService) Seed(ctx context.Context) (*services.SeedResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SeedResult), args.Error(1)
}

var (
	_ services.ReconciliationService = (*MockReconciliationService)(nil)
	_ services.AccountService        = (*MockAccountService)(nil)
	_ services.ImportService         = (*MockImportService)(nil)
	_ services.BootstrapService      = (*MockBootstrapService)(nil)
	_ services.StatsService          = (*MockStatsService)(nil)
	_ services.SeedService           = (*MockSeedService)(nil)
)
