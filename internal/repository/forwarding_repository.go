package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"gorm.io/gorm"
)

// ForwardingFilter selects forwarding rows by equality; zero fields are ignored
type ForwardingFilter struct {
	AccountEmail string
	AccountID    string
	Status       models.ForwardingStatus
}

// ForwardingUpdate carries the fields to change; nil fields are left untouched
type ForwardingUpdate struct {
	ForwardingEmail *string
	Status          *models.ForwardingStatus
	AccountEmail    *string
}

// ForwardingRepository defines the interface for forwarding config data access.
// The store enforces no uniqueness on AccountEmail.
type ForwardingRepository interface {
	List(ctx context.Context, filter ForwardingFilter) ([]models.ForwardingConfig, error)
	GetByID(ctx context.Context, id string) (*models.ForwardingConfig, error)
	Create(ctx context.Context, config *models.ForwardingConfig) error
	Update(ctx context.Context, id string, update ForwardingUpdate) (*models.ForwardingConfig, error)
	Delete(ctx context.Context, id string) error
}

type forwardingRepository struct {
	db *gorm.DB
}

// NewForwardingRepository creates a new ForwardingRepository instance
func NewForwardingRepository(db *gorm.DB) ForwardingRepository {
	return &forwardingRepository{db: db}
}

// List retrieves forwarding rows matching filter, oldest first
func (r *forwardingRepository) List(ctx context.Context, filter ForwardingFilter) ([]models.ForwardingConfig, error) {
	query := r.db.WithContext(ctx).Model(&models.ForwardingConfig{})
	if filter.AccountEmail != "" {
		query = query.Where("account_email = ?", filter.AccountEmail)
	}
	if filter.AccountID != "" {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var configs []models.ForwardingConfig
	if err := query.Order("created_at ASC").Order("id ASC").Find(&configs).Error; err != nil {
		return nil, fmt.Errorf("failed to list forwarding configs: %w", err)
	}
	return configs, nil
}

// GetByID retrieves a forwarding config by its ID
func (r *forwardingRepository) GetByID(ctx context.Context, id string) (*models.ForwardingConfig, error) {
	var config models.ForwardingConfig
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&config)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get forwarding config by ID: %w", result.Error)
	}
	return &config, nil
}

// Create creates a new forwarding config
func (r *forwardingRepository) Create(ctx context.Context, config *models.ForwardingConfig) error {
	if strings.TrimSpace(config.AccountEmail) == "" || strings.TrimSpace(config.ForwardingEmail) == "" {
		return fmt.Errorf("account email and forwarding email are required: %w", ErrInvalidInput)
	}
	if err := r.db.WithContext(ctx).Create(config).Error; err != nil {
		return fmt.Errorf("failed to create forwarding config: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of update and returns the stored row.
// UpdatedAt is always bumped, even when nothing else changes.
func (r *forwardingRepository) Update(ctx context.Context, id string, update ForwardingUpdate) (*models.ForwardingConfig, error) {
	changes := map[string]any{}
	if update.ForwardingEmail != nil {
		if strings.TrimSpace(*update.ForwardingEmail) == "" {
			return nil, fmt.Errorf("forwarding email is required: %w", ErrInvalidInput)
		}
		changes["forwarding_email"] = *update.ForwardingEmail
	}
	if update.Status != nil {
		changes["status"] = *update.Status
	}
	if update.AccountEmail != nil {
		changes["account_email"] = *update.AccountEmail
	}
	if len(changes) == 0 {
		changes["updated_at"] = r.db.NowFunc()
	}

	result := r.db.WithContext(ctx).Model(&models.ForwardingConfig{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update forwarding config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete deletes a forwarding config by its ID
func (r *forwardingRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ForwardingConfig{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete forwarding config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
