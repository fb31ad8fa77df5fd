package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an in-memory SQLite database with the account schema
func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.ForwardingConfig{}))
	return db
}

// AccountRepositoryTestSuite is the test suite for AccountRepository
type AccountRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo AccountRepository
}

// SetupSuite runs once before all tests
func (s *AccountRepositoryTestSuite) SetupSuite() {
	s.db = openTestDB(s.T())
	s.repo = NewAccountRepository(s.db)
}

// TearDownSuite runs once after all tests
func (s *AccountRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// SetupTest runs before each test - clean up data
func (s *AccountRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM forwarding_configs")
	s.db.Exec("DELETE FROM accounts")
}

// TestAccountRepositoryTestSuite runs the test suite
func TestAccountRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRepositoryTestSuite))
}

func (s *AccountRepositoryTestSuite) createAccount(email string, role models.Role, status models.AccountStatus, createdAt time.Time) *models.Account {
	account := &models.Account{Email: email, Role: role, Status: status, CreatedAt: createdAt}
	require.NoError(s.T(), s.repo.Create(context.Background(), account))
	return account
}

// ==================== Create Tests ====================

func (s *AccountRepositoryTestSuite) TestCreate_Success() {
	account := &models.Account{Email: "new@gauntletai.com", Role: models.RoleStudent, Status: models.AccountInactive}

	err := s.repo.Create(context.Background(), account)

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), account.ID)
	assert.NotZero(s.T(), account.CreatedAt)
}

func (s *AccountRepositoryTestSuite) TestCreate_DuplicateEmail_ReturnsError() {
	s.createAccount("dup@gauntletai.com", models.RoleStudent, models.AccountInactive, time.Now())

	err := s.repo.Create(context.Background(), &models.Account{Email: "dup@gauntletai.com", Role: models.RoleStudent, Status: models.AccountInactive})

	assert.ErrorIs(s.T(), err, ErrDuplicateEntry)
}

func (s *AccountRepositoryTestSuite) TestCreate_EmptyEmail_ReturnsInvalidInput() {
	err := s.repo.Create(context.Background(), &models.Account{Email: "  "})

	assert.ErrorIs(s.T(), err, ErrInvalidInput)
}

// ==================== List Tests ====================

func (s *AccountRepositoryTestSuite) TestList_OrderedByCreation() {
	base := time.Now().Add(-time.Hour)
	s.createAccount("second@gauntletai.com", models.RoleStudent, models.AccountActive, base.Add(time.Minute))
	s.createAccount("first@gauntletai.com", models.RoleAdmin, models.AccountActive, base)
	s.createAccount("third@gauntletai.com", models.RoleStudent, models.AccountInactive, base.Add(2*time.Minute))

	accounts, err := s.repo.List(context.Background(), AccountFilter{})

	require.NoError(s.T(), err)
	require.Len(s.T(), accounts, 3)
	assert.Equal(s.T(), "first@gauntletai.com", accounts[0].Email)
	assert.Equal(s.T(), "second@gauntletai.com", accounts[1].Email)
	assert.Equal(s.T(), "third@gauntletai.com", accounts[2].Email)
}

func (s *AccountRepositoryTestSuite) TestList_Filters() {
	now := time.Now()
	s.createAccount("admin@gauntletai.com", models.RoleAdmin, models.AccountActive, now)
	s.createAccount("student@gauntletai.com", models.RoleStudent, models.AccountInactive, now)

	byEmail, err := s.repo.List(context.Background(), AccountFilter{Email: "admin@gauntletai.com"})
	require.NoError(s.T(), err)
	assert.Len(s.T(), byEmail, 1)

	byRole, err := s.repo.List(context.Background(), AccountFilter{Role: models.RoleStudent})
	require.NoError(s.T(), err)
	require.Len(s.T(), byRole, 1)
	assert.Equal(s.T(), "student@gauntletai.com", byRole[0].Email)

	byStatus, err := s.repo.List(context.Background(), AccountFilter{Status: models.AccountActive})
	require.NoError(s.T(), err)
	require.Len(s.T(), byStatus, 1)
	assert.Equal(s.T(), "admin@gauntletai.com", byStatus[0].Email)

	none, err := s.repo.List(context.Background(), AccountFilter{Email: "missing@gauntletai.com"})
	require.NoError(s.T(), err)
	assert.Empty(s.T(), none)
}

// ==================== GetByID Tests ====================

func (s *AccountRepositoryTestSuite) TestGetByID_Found() {
	created := s.createAccount("found@gauntletai.com", models.RoleStudent, models.AccountActive, time.Now())

	account, err := s.repo.GetByID(context.Background(), created.ID)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), "found@gauntletai.com", account.Email)
}

func (s *AccountRepositoryTestSuite) TestGetByID_NotFound() {
	account, err := s.repo.GetByID(context.Background(), "missing")

	assert.Nil(s.T(), account)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

// ==================== Update Tests ====================

func (s *AccountRepositoryTestSuite) TestUpdate_ChangesOnlyGivenFields() {
	created := s.createAccount("update@gauntletai.com", models.RoleStudent, models.AccountInactive, time.Now())
	status := models.AccountActive

	updated, err := s.repo.Update(context.Background(), created.ID, AccountUpdate{Status: &status})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.AccountActive, updated.Status)
	assert.Equal(s.T(), models.RoleStudent, updated.Role)
	assert.Equal(s.T(), "update@gauntletai.com", updated.Email)
}

func (s *AccountRepositoryTestSuite) TestUpdate_LastLogin() {
	created := s.createAccount("login@gauntletai.com", models.RoleStudent, models.AccountActive, time.Now())
	now := time.Now().UTC().Truncate(time.Second)

	updated, err := s.repo.Update(context.Background(), created.ID, AccountUpdate{LastLoginAt: &now})

	require.NoError(s.T(), err)
	require.NotNil(s.T(), updated.LastLoginAt)
	assert.True(s.T(), now.Equal(updated.LastLoginAt.UTC()))
}

func (s *AccountRepositoryTestSuite) TestUpdate_DuplicateEmail() {
	s.createAccount("taken@gauntletai.com", models.RoleStudent, models.AccountActive, time.Now())
	other := s.createAccount("other@gauntletai.com", models.RoleStudent, models.AccountActive, time.Now())
	email := "taken@gauntletai.com"

	_, err := s.repo.Update(context.Background(), other.ID, AccountUpdate{Email: &email})

	assert.ErrorIs(s.T(), err, ErrDuplicateEntry)
}

func (s *AccountRepositoryTestSuite) TestUpdate_NotFound() {
	role := models.RoleAdmin

	_, err := s.repo.Update(context.Background(), "missing", AccountUpdate{Role: &role})

	assert.ErrorIs(s.T(), err, ErrNotFound)
}

// ==================== Delete Tests ====================

func (s *AccountRepositoryTestSuite) TestDelete_Success() {
	created := s.createAccount("delete@gauntletai.com", models.RoleStudent, models.AccountActive, time.Now())

	err := s.repo.Delete(context.Background(), created.ID)
	require.NoError(s.T(), err)

	_, err = s.repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *AccountRepositoryTestSuite) TestDelete_NotFound() {
	err := s.repo.Delete(context.Background(), "missing")

	assert.ErrorIs(s.T(), err, ErrNotFound)
}
