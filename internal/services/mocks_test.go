package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) List(ctx context.Context, filter repository.AccountFilter) ([]models.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, id string, update repository.AccountUpdate) (*models.Account, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockForwardingRepository is a mock implementation of ForwardingRepository
type MockForwardingRepository struct {
	mock.Mock
}

func (m *MockForwardingRepository) List(ctx context.Context, filter repository.ForwardingFilter) ([]models.ForwardingConfig, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ForwardingConfig), args.Error(1)
}

func (m *MockForwardingRepository) GetByID(ctx context.Context, id string) (*models.ForwardingConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForwardingConfig), args.Error(1)
}

func (m *MockForwardingRepository) Create(ctx context.Context, config *models.ForwardingConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockForwardingRepository) Update(ctx context.Context, id string, update repository.ForwardingUpdate) (*models.ForwardingConfig, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ForwardingConfig), args.Error(1)
}

func (m *MockForwardingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// quietEvents discards event output
func quietEvents() *logger.EventLogger {
	return logger.NewEventLoggerWithHandler(slog.NewTextHandler(io.Discard, nil))
}

// testStore is a pair of repositories backed by a private in-memory SQLite database
type testStore struct {
	db          *gorm.DB
	accounts    repository.AccountRepository
	forwardings repository.ForwardingRepository
}

func newTestStore(t *testing.T) *testStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.ForwardingConfig{}))
	return &testStore{
		db:          db,
		accounts:    repository.NewAccountRepository(db),
		forwardings: repository.NewForwardingRepository(db),
	}
}

func (s *testStore) account(t *testing.T, email string, status models.AccountStatus) *models.Account {
	account := &models.Account{Email: email, Role: models.RoleStudent, Status: status}
	require.NoError(t, s.accounts.Create(context.Background(), account))
	return account
}

func (s *testStore) forwarding(t *testing.T, f models.ForwardingConfig) *models.ForwardingConfig {
	require.NoError(t, s.forwardings.Create(context.Background(), &f))
	return &f
}

func (s *testStore) forwardingsFor(t *testing.T, email string) []models.ForwardingConfig {
	rows, err := s.forwardings.List(context.Background(), repository.ForwardingFilter{AccountEmail: email})
	require.NoError(t, err)
	return rows
}
