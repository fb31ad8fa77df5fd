package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForwardingStatus is the state of a forwarding rule
type ForwardingStatus string

const (
	ForwardingActive ForwardingStatus = "ACTIVE"
	ForwardingPaused ForwardingStatus = "PAUSED"
)

// IsValid reports whether s is a known forwarding status
func (s ForwardingStatus) IsValid() bool {
	return s == ForwardingActive || s == ForwardingPaused
}

// Toggled returns the opposite status
func (s ForwardingStatus) Toggled() ForwardingStatus {
	if s == ForwardingActive {
		return ForwardingPaused
	}
	return ForwardingActive
}

// ForwardingConfig redirects mail sent to an account's address.
// AccountEmail is a denormalized copy of the owning account's email and is
// the key used to join the two collections.
type ForwardingConfig struct {
	ID              string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AccountID       string           `gorm:"not null;index;size:36" json:"account_id"`
	AccountEmail    string           `gorm:"not null;index;size:255" json:"account_email"`
	ForwardingEmail string           `gorm:"not null;size:255" json:"forwarding_email"`
	Status          ForwardingStatus `gorm:"not null;size:20;default:ACTIVE" json:"status"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for ForwardingConfig
func (ForwardingConfig) TableName() string {
	return "forwarding_configs"
}

// BeforeCreate assigns an opaque identifier when none is set
func (f *ForwardingConfig) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
