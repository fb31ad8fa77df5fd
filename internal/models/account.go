package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the organizational role held by an account
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// AccountStatus is the account-level activation flag
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// IsValid reports whether s is a known account status
func (s AccountStatus) IsValid() bool {
	return s == AccountActive || s == AccountInactive
}

// Account represents a provisioned organizational mailbox owner
type Account struct {
	ID          string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email       string        `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Role        Role          `gorm:"not null;size:20;default:STUDENT" json:"role"`
	Status      AccountStatus `gorm:"not null;size:20;default:INACTIVE" json:"status"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
}

// TableName returns the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate assigns an opaque identifier when none is set
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the account holds the privileged role
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
