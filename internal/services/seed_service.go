package services

import (
	"context"
	"fmt"

	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
)

// SeedResult lists what Seed created
type SeedResult struct {
	Created     []string `json:"created"`
	Existing    []string `json:"existing"`
	Forwardings int      `json:"forwardings"`
}

// SeedService fills an empty store with sample accounts for development
type SeedService interface {
	Seed(ctx context.Context) (*SeedResult, error)
}

type seedService struct {
	accounts      repository.AccountRepository
	reconciliator ReconciliationService
	orgDomain     string
}

// NewSeedService creates a new SeedService instance
func NewSeedService(accounts repository.AccountRepository, reconciliator ReconciliationService, orgDomain string) SeedService {
	return &seedService{accounts: accounts, reconciliator: reconciliator, orgDomain: orgDomain}
}

type seedAccount struct {
	local  string
	status models.AccountStatus
}

var seedAccounts = []seedAccount{
	{"test1", models.AccountActive},
	{"test2", models.AccountInactive},
	{"test3", models.AccountActive},
}

// Seed creates test1..3 on the organization domain when absent and gives the
// active ones a forwarding rule to <local>@gmail.com. Running it again only
// refreshes those rules; existing accounts keep their status.
func (s *seedService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{Created: []string{}, Existing: []string{}}

	for _, sa := range seedAccounts {
		email := fmt.Sprintf("%s@%s", sa.local, s.orgDomain)

		existing, err := s.accounts.List(ctx, repository.AccountFilter{Email: email})
		if err != nil {
			return nil, translate(err, "accounts")
		}

		var account models.Account
		if len(existing) > 0 {
			account = existing[0]
			result.Existing = append(result.Existing, email)
		} else {
			account = models.Account{Email: email, Role: models.RoleStudent, Status: sa.status}
			if err := s.accounts.Create(ctx, &account); err != nil {
				return nil, translate(err, "account")
			}
			result.Created = append(result.Created, email)
		}

		if sa.status != models.AccountActive {
			continue
		}
		target := fmt.Sprintf("%s@gmail.com", sa.local)
		if _, err := s.reconciliator.SaveForwardingRule(ctx, account.ID, target, models.ForwardingActive); err != nil {
			return nil, err
		}
		result.Forwardings++
	}
	return result, nil
}
