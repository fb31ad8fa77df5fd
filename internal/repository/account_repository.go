package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"gorm.io/gorm"
)

// AccountFilter selects accounts by equality; zero fields are ignored
type AccountFilter struct {
	Email  string
	Role   models.Role
	Status models.AccountStatus
}

// AccountUpdate carries the fields to change; nil fields are left untouched
type AccountUpdate struct {
	Email       *string
	Role        *models.Role
	Status      *models.AccountStatus
	LastLoginAt *time.Time
}

// IsEmpty reports whether the update changes nothing
func (u AccountUpdate) IsEmpty() bool {
	return u.Email == nil && u.Role == nil && u.Status == nil && u.LastLoginAt == nil
}

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	List(ctx context.Context, filter AccountFilter) ([]models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, id string, update AccountUpdate) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

// accountRepository implements AccountRepository using GORM
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// List retrieves accounts matching filter, oldest first
func (r *accountRepository) List(ctx context.Context, filter AccountFilter) ([]models.Account, error) {
	query := r.db.WithContext(ctx).Model(&models.Account{})
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var accounts []models.Account
	if err := query.Order("created_at ASC").Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", result.Error)
	}
	return &account, nil
}

// Create creates a new account; the unique email index is authoritative
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if strings.TrimSpace(account.Email) == "" {
		return fmt.Errorf("account email is required: %w", ErrInvalidInput)
	}
	result := r.db.WithContext(ctx).Create(account)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return fmt.Errorf("account with email '%s' already exists: %w", account.Email, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create account: %w", result.Error)
	}
	return nil
}

// Update applies the non-nil fields of update and returns the stored account
func (r *accountRepository) Update(ctx context.Context, id string, update AccountUpdate) (*models.Account, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	changes := map[string]any{}
	if update.Email != nil {
		if strings.TrimSpace(*update.Email) == "" {
			return nil, fmt.Errorf("account email is required: %w", ErrInvalidInput)
		}
		changes["email"] = *update.Email
	}
	if update.Role != nil {
		changes["role"] = *update.Role
	}
	if update.Status != nil {
		changes["status"] = *update.Status
	}
	if update.LastLoginAt != nil {
		changes["last_login_at"] = *update.LastLoginAt
	}

	result := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return nil, fmt.Errorf("account email already in use: %w", ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete deletes an account by its ID. Forwarding rows are not touched here.
func (r *accountRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Account{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
