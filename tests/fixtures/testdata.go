// Package fixtures builds accounts and forwarding rules for tests.
package fixtures

import (
	"time"

	"github.com/google/uuid"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
)

// AccountBuilder creates test Account instances with fluent API
type AccountBuilder struct {
	account models.Account
}

// NewAccountBuilder creates a new AccountBuilder with sensible defaults
func NewAccountBuilder() *AccountBuilder {
	now := time.Now()
	return &AccountBuilder{
		account: models.Account{
			ID:        uuid.NewString(),
			Email:     "student@gauntletai.com",
			Role:      models.RoleStudent,
			Status:    models.AccountActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the account ID
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.account.ID = id
	return b
}

// WithEmail sets the account email
func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.account.Email = email
	return b
}

// WithRole sets the account role
func (b *AccountBuilder) WithRole(role models.Role) *AccountBuilder {
	b.account.Role = role
	return b
}

// Inactive marks the account INACTIVE
func (b *AccountBuilder) Inactive() *AccountBuilder {
	b.account.Status = models.AccountInactive
	return b
}

// WithCreatedAt sets the created timestamp
func (b *AccountBuilder) WithCreatedAt(t time.Time) *AccountBuilder {
	b.account.CreatedAt = t
	return b
}

// Build returns the constructed Account
func (b *AccountBuilder) Build() *models.Account {
	account := b.account
	return &account
}

// ForwardingBuilder creates test ForwardingConfig instances with fluent API
type ForwardingBuilder struct {
	config models.ForwardingConfig
}

// NewForwardingBuilder creates a ForwardingBuilder for account
func NewForwardingBuilder(account *models.Account) *ForwardingBuilder {
	now := time.Now()
	return &ForwardingBuilder{
		config: models.ForwardingConfig{
			ID:              uuid.NewString(),
			AccountID:       account.ID,
			AccountEmail:    account.Email,
			ForwardingEmail: "personal@gmail.com",
			Status:          models.ForwardingActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}

// WithForwardingEmail sets the forwarding target
func (b *ForwardingBuilder) WithForwardingEmail(email string) *ForwardingBuilder {
	b.config.ForwardingEmail = email
	return b
}

// Paused marks the rule PAUSED
func (b *ForwardingBuilder) Paused() *ForwardingBuilder {
	b.config.Status = models.ForwardingPaused
	return b
}

// WithAccountEmail overrides the recorded account email, e.g. to model a stale row
func (b *ForwardingBuilder) WithAccountEmail(email string) *ForwardingBuilder {
	b.config.AccountEmail = email
	return b
}

// Build returns the constructed ForwardingConfig
func (b *ForwardingBuilder) Build() *models.ForwardingConfig {
	config := b.config
	return &config
}

// Admin returns an identity in the ADMIN group
func Admin() identity.Identity {
	return identity.Identity{ID: "admin-1", Email: "admin@gauntletai.com", Groups: []string{identity.GroupAdmin}}
}

// Student returns a non-privileged identity for email
func Student(email string) identity.Identity {
	return identity.Identity{ID: "student-" + email, Email: email}
}

// CombinedRow returns the view row of account joined with config
func CombinedRow(account *models.Account, config *models.ForwardingConfig) models.CombinedView {
	return models.NewCombinedView(account, config)
}
