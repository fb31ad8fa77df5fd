package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
	"github.com/welldanyogia/forwarding-admin-backend/internal/repository"
)

// DefaultRecentActivityLimit is the activity feed length when none is given
const DefaultRecentActivityLimit = 10

// Activity types
const (
	ActivityAccountCreated    = "account_created"
	ActivityForwardingUpdated = "forwarding_updated"
)

// Activity is one entry of the admin activity feed
type Activity struct {
	Type  string    `json:"type"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	At    time.Time `json:"at"`
}

// Overview is the admin dashboard summary
type Overview struct {
	Accounts          int                           `json:"accounts"`
	ActiveAccounts    int                           `json:"active_accounts"`
	Admins            int                           `json:"admins"`
	Forwardings       int                           `json:"forwardings"`
	ActiveForwardings int                           `json:"active_forwardings"`
	PausedForwardings int                           `json:"paused_forwardings"`
	ByStatus          map[models.CombinedStatus]int `json:"by_status"`
	RecentActivity    []Activity                    `json:"recent_activity"`
}

// StatsService computes dashboard figures
type StatsService interface {
	Overview(ctx context.Context, recentLimit int) (*Overview, error)
}

type statsService struct {
	accounts    repository.AccountRepository
	forwardings repository.ForwardingRepository
}

// NewStatsService creates a new StatsService instance
func NewStatsService(accounts repository.AccountRepository, forwardings repository.ForwardingRepository) StatsService {
	return &statsService{accounts: accounts, forwardings: forwardings}
}

func (s *statsService) Overview(ctx context.Context, recentLimit int) (*Overview, error) {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentActivityLimit
	}

	accounts, err := s.accounts.List(ctx, repository.AccountFilter{})
	if err != nil {
		return nil, translate(err, "accounts")
	}
	forwardings, err := s.forwardings.List(ctx, repository.ForwardingFilter{})
	if err != nil {
		return nil, translate(err, "forwarding configs")
	}

	o := &Overview{
		Accounts:    len(accounts),
		Forwardings: len(forwardings),
		ByStatus: map[models.CombinedStatus]int{
			models.CombinedActive:   0,
			models.CombinedInactive: 0,
			models.CombinedPaused:   0,
		},
	}

	activity := make([]Activity, 0, len(accounts)+len(forwardings))
	for _, a := range accounts {
		if a.Status == models.AccountActive {
			o.ActiveAccounts++
		}
		if a.Role == models.RoleAdmin {
			o.Admins++
		}
		activity = append(activity, Activity{Type: ActivityAccountCreated, Name: localPart(a.Email), Email: a.Email, At: a.CreatedAt})
	}
	for _, f := range forwardings {
		switch f.Status {
		case models.ForwardingActive:
			o.ActiveForwardings++
		case models.ForwardingPaused:
			o.PausedForwardings++
		}
		activity = append(activity, Activity{Type: ActivityForwardingUpdated, Name: localPart(f.AccountEmail), Email: f.AccountEmail, At: f.UpdatedAt})
	}

	for _, row := range Reconcile(accounts, forwardings).Rows {
		o.ByStatus[row.Status]++
	}

	// Newest first
	slices.SortStableFunc(activity, func(a, b Activity) int { return b.At.Compare(a.At) })
	if len(activity) > recentLimit {
		activity = activity[:recentLimit]
	}
	o.RecentActivity = activity
	return o, nil
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
