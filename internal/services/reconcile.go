package services

import (
	"slices"
	"strings"

	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
)

// DuplicateForwarding is a forwarding row hidden by a later row for the same account email
type DuplicateForwarding struct {
	AccountEmail string `json:"account_email"`
	KeptID       string `json:"kept_id"`
	ShadowedID   string `json:"shadowed_id"`
}

// StaleForwarding is a forwarding row whose AccountEmail no longer matches
// its owner; it is joined through AccountID instead.
type StaleForwarding struct {
	ForwardingID  string `json:"forwarding_id"`
	RecordedEmail string `json:"recorded_email"`
	AccountID     string `json:"account_id"`
	AccountEmail  string `json:"account_email"`
}

// ReconcileResult is the joined collection plus the integrity findings
type ReconcileResult struct {
	Rows       []models.CombinedView
	Duplicates []DuplicateForwarding
	Stale      []StaleForwarding
	// Orphans match no account by email or by id
	Orphans []models.ForwardingConfig
	// picked maps account id to the forwarding row used for it
	picked map[string]models.ForwardingConfig
}

// Forwarding returns the forwarding row joined to accountID, if any
func (r ReconcileResult) Forwarding(accountID string) (models.ForwardingConfig, bool) {
	f, ok := r.picked[accountID]
	return f, ok
}

// Reconcile joins accounts with forwarding rows on account email. When
// several rows share an email the last one in list order wins and the
// others are reported as duplicates. Rows whose email matches no account
// but whose AccountID does are attached by id and reported as stale.
// Accounts keep their input order.
func Reconcile(accounts []models.Account, forwardings []models.ForwardingConfig) ReconcileResult {
	result := ReconcileResult{
		Rows:   make([]models.CombinedView, 0, len(accounts)),
		picked: make(map[string]models.ForwardingConfig, len(accounts)),
	}

	accountByEmail := make(map[string]models.Account, len(accounts))
	accountByID := make(map[string]models.Account, len(accounts))
	for _, a := range accounts {
		accountByEmail[a.Email] = a
		accountByID[a.ID] = a
	}

	byEmail := make(map[string]models.ForwardingConfig, len(forwardings))
	byID := make(map[string]models.ForwardingConfig)
	for _, f := range forwardings {
		if _, ok := accountByEmail[f.AccountEmail]; ok {
			if prev, dup := byEmail[f.AccountEmail]; dup {
				result.Duplicates = append(result.Duplicates, DuplicateForwarding{
					AccountEmail: f.AccountEmail,
					KeptID:       f.ID,
					ShadowedID:   prev.ID,
				})
			}
			byEmail[f.AccountEmail] = f
			continue
		}

		owner, ok := accountByID[f.AccountID]
		if !ok || f.AccountID == "" {
			result.Orphans = append(result.Orphans, f)
			continue
		}
		result.Stale = append(result.Stale, StaleForwarding{
			ForwardingID:  f.ID,
			RecordedEmail: f.AccountEmail,
			AccountID:     owner.ID,
			AccountEmail:  owner.Email,
		})
		if prev, dup := byID[owner.ID]; dup {
			result.Duplicates = append(result.Duplicates, DuplicateForwarding{
				AccountEmail: owner.Email,
				KeptID:       f.ID,
				ShadowedID:   prev.ID,
			})
		}
		byID[owner.ID] = f
	}

	for _, a := range accounts {
		f, ok := byEmail[a.Email]
		stale, hasStale := byID[a.ID]
		switch {
		case ok && hasStale:
			// the email match wins over a row found only by id
			result.Duplicates = append(result.Duplicates, DuplicateForwarding{
				AccountEmail: a.Email,
				KeptID:       f.ID,
				ShadowedID:   stale.ID,
			})
		case !ok && hasStale:
			f, ok = stale, true
		}
		if !ok {
			result.Rows = append(result.Rows, models.NewCombinedView(&a, nil))
			continue
		}
		result.picked[a.ID] = f
		result.Rows = append(result.Rows, models.NewCombinedView(&a, &f))
	}
	return result
}

// sortForwardings orders rows the way the store lists them
func sortForwardings(rows []models.ForwardingConfig) {
	slices.SortStableFunc(rows, func(a, b models.ForwardingConfig) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
