package services

import (
	"context"
	"time"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/metrics"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
	"github.com/welldanyogia/forwarding-admin-backend/internal/validator"
	"github.com/welldanyogia/forwarding-admin-backend/internal/view"
)

// CreateAccountInput is the payload for a new account. Email may omit the
// domain, in which case the organization domain is appended.
type CreateAccountInput struct {
	Email  string               `json:"email"`
	Role   models.Role          `json:"role,omitempty"`
	Status models.AccountStatus `json:"status,omitempty"`
}

// UpdateAccountInput changes the non-nil fields of an account
type UpdateAccountInput struct {
	Email  *string               `json:"email,omitempty"`
	Role   *models.Role          `json:"role,omitempty"`
	Status *models.AccountStatus `json:"status,omitempty"`
}

// AccountService manages accounts
type AccountService interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	ListAccounts(ctx context.Context, q view.Query) ([]models.Account, error)
	// TouchLastLogin records a sign-in of the account with email
	TouchLastLogin(ctx context.Context, email string) (*models.Account, error)
}

type accountService struct {
	accounts    repository.AccountRepository
	forwardings repository.ForwardingRepository
	orgDomain   string
	events      *logger.EventLogger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewAccountService creates a new AccountService instance
func NewAccountService(accounts repository.AccountRepository, forwardings repository.ForwardingRepository, orgDomain string, events *logger.EventLogger, m *metrics.Metrics) AccountService {
	if events == nil {
		events = logger.NewEventLogger(nil)
	}
	return &accountService{
		accounts:    accounts,
		forwardings: forwardings,
		orgDomain:   orgDomain,
		events:      events,
		metrics:     m,
		now:         time.Now,
	}
}

func (s *accountService) CreateAccount(ctx context.Context, input CreateAccountInput) (*models.Account, error) {
	email := validator.WithDefaultDomain(input.Email, s.orgDomain)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, apperrors.Validation("email %q is invalid: %v", input.Email, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !role.IsValid() {
		return nil, apperrors.Validation("role must be ADMIN or STUDENT, got %q", role)
	}
	status := input.Status
	if status == "" {
		status = models.AccountInactive
	}
	if !status.IsValid() {
		return nil, apperrors.Validation("status must be ACTIVE or INACTIVE, got %q", status)
	}

	// Pre-check for a friendlier error; the unique index stays authoritative
	existing, err := s.accounts.List(ctx, repository.AccountFilter{Email: email})
	if err != nil {
		return nil, translate(err, "accounts")
	}
	if len(existing) > 0 {
		return nil, apperrors.Duplicate("account with email '%s' already exists", email)
	}

	account := &models.Account{Email: email, Role: role, Status: status}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, translate(err, "account")
	}
	return account, nil
}

// UpdateAccount changes role, status or email. A new email is propagated to
// every forwarding rule of the account after the account itself is saved.
func (s *accountService) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*models.Account, error) {
	update := repository.AccountUpdate{Role: input.Role, Status: input.Status}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, apperrors.Validation("role must be ADMIN or STUDENT, got %q", *input.Role)
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperrors.Validation("status must be ACTIVE or INACTIVE, got %q", *input.Status)
	}

	current, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "account")
	}

	renamed := false
	if input.Email != nil {
		email := validator.WithDefaultDomain(*input.Email, s.orgDomain)
		if err := validator.ValidateEmail(email); err != nil {
			return nil, apperrors.Validation("email %q is invalid: %v", *input.Email, err)
		}
		if email != current.Email {
			update.Email = &email
			renamed = true
		}
	}

	// Owned rows are resolved before the rename so the old email still finds them
	var owned []models.ForwardingConfig
	if renamed {
		owned, err = s.forwardingsOf(ctx, current)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.accounts.Update(ctx, id, update)
	if err != nil {
		return nil, translate(err, "account")
	}

	for _, f := range owned {
		_, err := s.forwardings.Update(ctx, f.ID, repository.ForwardingUpdate{AccountEmail: &updated.Email})
		if err != nil {
			err = translate(err, "forwarding config")
			s.events.PartialReconciliation("rename account", "account update", "forwarding email propagation", err)
			s.metrics.IncPartialReconciliation("rename account")
			return nil, apperrors.NewPartialReconciliationError("rename account", "account update", "forwarding email propagation", err)
		}
	}
	return updated, nil
}

func (s *accountService) forwardingsOf(ctx context.Context, account *models.Account) ([]models.ForwardingConfig, error) {
	byEmail, err := s.forwardings.List(ctx, repository.ForwardingFilter{AccountEmail: account.Email})
	if err != nil {
		return nil, translate(err, "forwarding configs")
	}
	byID, err := s.forwardings.List(ctx, repository.ForwardingFilter{AccountID: account.ID})
	if err != nil {
		return nil, translate(err, "forwarding configs")
	}

	seen := make(map[string]struct{}, len(byEmail))
	var owned []models.ForwardingConfig
	for _, f := range append(byEmail, byID...) {
		if _, ok := seen[f.ID]; !ok {
			seen[f.ID] = struct{}{}
			owned = append(owned, f)
		}
	}
	return owned, nil
}

func (s *accountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "account")
	}
	return account, nil
}

func (s *accountService) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	email = validator.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}
	accounts, err := s.accounts.List(ctx, repository.AccountFilter{Email: email})
	if err != nil {
		return nil, translate(err, "accounts")
	}
	if len(accounts) == 0 {
		return nil, apperrors.NotFound("account %s not found", email)
	}
	return &accounts[0], nil
}

func (s *accountService) ListAccounts(ctx context.Context, q view.Query) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx, repository.AccountFilter{})
	if err != nil {
		return nil, translate(err, "accounts")
	}
	return view.Accounts.Apply(accounts, q)
}

func (s *accountService) TouchLastLogin(ctx context.Context, email string) (*models.Account, error) {
	account, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	updated, err := s.accounts.Update(ctx, account.ID, repository.AccountUpdate{LastLoginAt: &now})
	if err != nil {
		return nil, translate(err, "account")
	}
	return updated, nil
}
