package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/metrics"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
	"github.com/welldanyogia/forwarding-admin-backend/internal/validator"
	"github.com/welldanyogia/forwarding-admin-backend/internal/view"
)

// ReconciliationService keeps accounts and their forwarding rules consistent
type ReconciliationService interface {
	// Snapshot reads both stores and joins them
	Snapshot(ctx context.Context) (*ReconcileResult, error)

	// ListCombinedView returns the joined rows filtered and sorted by q
	ListCombinedView(ctx context.Context, q view.Query) ([]models.CombinedView, error)

	// GetCombined returns the joined row of one account
	GetCombined(ctx context.Context, accountID string) (*models.CombinedView, error)

	// SaveForwarding applies an edit of the forwarding address and desired
	// combined status, creating the forwarding rule when needed
	SaveForwarding(ctx context.Context, accountID, forwardingEmail string, desired models.CombinedStatus) (*models.CombinedView, error)

	// SaveForwardingRule edits or creates the forwarding rule only; the
	// account status is never changed
	SaveForwardingRule(ctx context.Context, accountID, forwardingEmail string, status models.ForwardingStatus) (*models.CombinedView, error)

	// DeleteAccount removes the account after every forwarding rule it owns
	DeleteAccount(ctx context.Context, accountID string) error

	// ListForwardings returns the forwarding rules filtered and sorted by q
	ListForwardings(ctx context.Context, q view.Query) ([]models.ForwardingConfig, error)

	// ToggleForwarding flips a rule between ACTIVE and PAUSED
	ToggleForwarding(ctx context.Context, forwardingID string) (*models.ForwardingConfig, error)

	// DeleteForwarding removes one rule; the account is left in place
	DeleteForwarding(ctx context.Context, forwardingID string) error
}

type reconciliationService struct {
	accounts    repository.AccountRepository
	forwardings repository.ForwardingRepository
	events      *logger.EventLogger
	metrics     *metrics.Metrics
}

// NewReconciliationService creates a new ReconciliationService instance
func NewReconciliationService(accounts repository.AccountRepository, forwardings repository.ForwardingRepository, events *logger.EventLogger, m *metrics.Metrics) ReconciliationService {
	if events == nil {
		events = logger.NewEventLogger(nil)
	}
	return &reconciliationService{
		accounts:    accounts,
		forwardings: forwardings,
		events:      events,
		metrics:     m,
	}
}

// Snapshot reads both collections in full and joins them
func (s *reconciliationService) Snapshot(ctx context.Context) (*ReconcileResult, error) {
	accounts, err := s.accounts.List(ctx, repository.AccountFilter{})
	if err != nil {
		return nil, translate(err, "accounts")
	}
	forwardings, err := s.forwardings.List(ctx, repository.ForwardingFilter{})
	if err != nil {
		return nil, translate(err, "forwarding configs")
	}

	result := Reconcile(accounts, forwardings)
	s.report(result)
	return &result, nil
}

// report logs and counts the integrity findings of a join
func (s *reconciliationService) report(result ReconcileResult) {
	for _, d := range result.Duplicates {
		s.events.DuplicateForwarding(d.AccountEmail, d.KeptID, d.ShadowedID)
	}
	for _, st := range result.Stale {
		s.events.StaleForwarding(st.ForwardingID, st.RecordedEmail, st.AccountEmail)
	}
	s.metrics.AddDuplicateForwardings(len(result.Duplicates))
	s.metrics.AddStaleForwardings(len(result.Stale))
}

func (s *reconciliationService) ListCombinedView(ctx context.Context, q view.Query) ([]models.CombinedView, error) {
	result, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return view.Combined.Apply(result.Rows, q)
}

func (s *reconciliationService) GetCombined(ctx context.Context, accountID string) (*models.CombinedView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, translate(err, "account")
	}
	owned, err := s.ownedForwardings(ctx, account)
	if err != nil {
		return nil, err
	}
	result := Reconcile([]models.Account{*account}, owned)
	s.report(result)
	return &result.Rows[0], nil
}

// ownedForwardings lists the rows joined to account by email or by id, in store order
func (s *reconciliationService) ownedForwardings(ctx context.Context, account *models.Account) ([]models.ForwardingConfig, error) {
	byEmail, err := s.forwardings.List(ctx, repository.ForwardingFilter{AccountEmail: account.Email})
	if err != nil {
		return nil, translate(err, "forwarding configs")
	}
	byID, err := s.forwardings.List(ctx, repository.ForwardingFilter{AccountID: account.ID})
	if err != nil {
		return nil, translate(err, "forwarding configs")
	}

	seen := make(map[string]struct{}, len(byEmail))
	owned := make([]models.ForwardingConfig, 0, len(byEmail)+len(byID))
	for _, f := range append(byEmail, byID...) {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		owned = append(owned, f)
	}
	sortForwardings(owned)
	return owned, nil
}

func (s *reconciliationService) SaveForwarding(ctx context.Context, accountID, forwardingEmail string, desired models.CombinedStatus) (*models.CombinedView, error) {
	if !desired.IsValid() {
		return nil, apperrors.Validation("status must be ACTIVE, INACTIVE or PAUSED, got %q", desired)
	}
	forwardingEmail, err := normalizeTarget(forwardingEmail)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, translate(err, "account")
	}

	// Account status first; PAUSED leaves the account as it is
	accountUpdated := false
	if desired != models.CombinedPaused && models.AccountStatus(desired) != account.Status {
		status := models.AccountStatus(desired)
		account, err = s.accounts.Update(ctx, accountID, repository.AccountUpdate{Status: &status})
		if err != nil {
			return nil, translate(err, "account")
		}
		accountUpdated = true
	}

	forwardingStatus := models.ForwardingActive
	if desired == models.CombinedPaused {
		forwardingStatus = models.ForwardingPaused
	}

	saved, step, err := s.upsertForwarding(ctx, account, forwardingEmail, forwardingStatus)
	if err != nil {
		err = translate(err, "forwarding config")
		if accountUpdated {
			return nil, s.partial("save forwarding", "account status update", step, err)
		}
		return nil, err
	}

	row := models.NewCombinedView(account, saved)
	return &row, nil
}

func (s *reconciliationService) SaveForwardingRule(ctx context.Context, accountID, forwardingEmail string, status models.ForwardingStatus) (*models.CombinedView, error) {
	if !status.IsValid() {
		return nil, apperrors.Validation("status must be ACTIVE or PAUSED, got %q", status)
	}
	forwardingEmail, err := normalizeTarget(forwardingEmail)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, translate(err, "account")
	}

	saved, _, err := s.upsertForwarding(ctx, account, forwardingEmail, status)
	if err != nil {
		return nil, translate(err, "forwarding config")
	}

	row := models.NewCombinedView(account, saved)
	return &row, nil
}

// normalizeTarget normalizes a forwarding address; empty means keep the current one
func normalizeTarget(forwardingEmail string) (string, error) {
	forwardingEmail = validator.NormalizeEmail(forwardingEmail)
	if forwardingEmail != "" {
		if err := validator.ValidateEmail(forwardingEmail); err != nil {
			return "", apperrors.Validation("forwarding email %q is invalid: %v", forwardingEmail, err)
		}
	}
	return forwardingEmail, nil
}

// upsertForwarding updates the rule the join picks for account or creates one
// when forwardingEmail is set. A nil rule means the account has none. On error
// step names the store call that failed.
func (s *reconciliationService) upsertForwarding(ctx context.Context, account *models.Account, forwardingEmail string, status models.ForwardingStatus) (*models.ForwardingConfig, string, error) {
	owned, err := s.ownedForwardings(ctx, account)
	if err != nil {
		return nil, "forwarding lookup", err
	}

	if current, ok := Reconcile([]models.Account{*account}, owned).Forwarding(account.ID); ok {
		update := repository.ForwardingUpdate{Status: &status}
		if forwardingEmail != "" {
			update.ForwardingEmail = &forwardingEmail
		}
		if current.AccountEmail != account.Email {
			update.AccountEmail = &account.Email
		}
		saved, err := s.forwardings.Update(ctx, current.ID, update)
		if err != nil {
			return nil, "forwarding update", err
		}
		return saved, "", nil
	}

	if forwardingEmail == "" {
		return nil, "", nil
	}
	saved := &models.ForwardingConfig{
		AccountID:       account.ID,
		AccountEmail:    account.Email,
		ForwardingEmail: forwardingEmail,
		Status:          status,
	}
	if err := s.forwardings.Create(ctx, saved); err != nil {
		return nil, "forwarding create", err
	}
	return saved, "", nil
}

func (s *reconciliationService) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return translate(err, "account")
	}
	owned, err := s.ownedForwardings(ctx, account)
	if err != nil {
		return err
	}

	removed := 0
	for _, f := range owned {
		err := s.forwardings.Delete(ctx, f.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			err = translate(err, "forwarding config")
			if removed == 0 {
				return err
			}
			return s.partial("delete account",
				fmt.Sprintf("%d of %d forwarding deletes", removed, len(owned)), "forwarding delete", err)
		}
		removed++
	}

	if err := s.accounts.Delete(ctx, accountID); err != nil {
		err = translate(err, "account")
		if removed == 0 {
			return err
		}
		return s.partial("delete account", "forwarding delete", "account delete", err)
	}
	return nil
}

// partial builds, logs and counts a PartialReconciliationError
func (s *reconciliationService) partial(operation, completed, failed string, err error) error {
	s.events.PartialReconciliation(operation, completed, failed, err)
	s.metrics.IncPartialReconciliation(operation)
	return apperrors.NewPartialReconciliationError(operation, completed, failed, err)
}

func (s *reconciliationService) ListForwardings(ctx context.Context, q view.Query) ([]models.ForwardingConfig, error) {
	rows, err := s.forwardings.List(ctx, repository.ForwardingFilter{})
	if err != nil {
		return nil, translate(err, "forwarding configs")
	}
	return view.Forwardings.Apply(rows, q)
}

func (s *reconciliationService) ToggleForwarding(ctx context.Context, forwardingID string) (*models.ForwardingConfig, error) {
	current, err := s.forwardings.GetByID(ctx, forwardingID)
	if err != nil {
		return nil, translate(err, "forwarding config")
	}
	next := current.Status.Toggled()
	updated, err := s.forwardings.Update(ctx, forwardingID, repository.ForwardingUpdate{Status: &next})
	if err != nil {
		return nil, translate(err, "forwarding config")
	}
	return updated, nil
}

func (s *reconciliationService) DeleteForwarding(ctx context.Context, forwardingID string) error {
	if err := s.forwardings.Delete(ctx, forwardingID); err != nil {
		return translate(err, "forwarding config")
	}
	return nil
}
