package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/models"
)

func TestOverview_Counts(t *testing.T) {
	store := newTestStore(t)
	jane := store.account(t, "jane@gauntletai.com", models.AccountActive)
	bob := store.account(t, "bob@gauntletai.com", models.AccountActive)
	store.account(t, "amy@gauntletai.com", models.AccountInactive)
	store.forwarding(t, models.ForwardingConfig{AccountID: jane.ID, AccountEmail: jane.Email, ForwardingEmail: "jane@gmail.com", Status: models.ForwardingActive})
	store.forwarding(t, models.ForwardingConfig{AccountID: bob.ID, AccountEmail: bob.Email, ForwardingEmail: "bob@gmail.com", Status: models.ForwardingPaused})

	o, err := NewStatsService(store.accounts, store.forwardings).Overview(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 3, o.Accounts)
	assert.Equal(t, 2, o.ActiveAccounts)
	assert.Equal(t, 0, o.Admins)
	assert.Equal(t, 2, o.Forwardings)
	assert.Equal(t, 1, o.ActiveForwardings)
	assert.Equal(t, 1, o.PausedForwardings)
	assert.Equal(t, map[models.CombinedStatus]int{
		models.CombinedActive:   1,
		models.CombinedPaused:   1,
		models.CombinedInactive: 1,
	}, o.ByStatus)
	assert.Len(t, o.RecentActivity, 5)
}

func TestOverview_RecentActivityNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := &models.Account{Email: "old@gauntletai.com", Role: models.RoleStudent, Status: models.AccountActive, CreatedAt: base}
	newer := &models.Account{Email: "new@gauntletai.com", Role: models.RoleAdmin, Status: models.AccountActive, CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, store.accounts.Create(context.Background(), older))
	require.NoError(t, store.accounts.Create(context.Background(), newer))
	store.forwarding(t, models.ForwardingConfig{
		AccountID: older.ID, AccountEmail: older.Email, ForwardingEmail: "old@gmail.com",
		Status: models.ForwardingActive, CreatedAt: base, UpdatedAt: base.Add(time.Hour),
	})

	o, err := NewStatsService(store.accounts, store.forwardings).Overview(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, 1, o.Admins)
	require.Len(t, o.RecentActivity, 2)
	assert.Equal(t, ActivityAccountCreated, o.RecentActivity[0].Type)
	assert.Equal(t, "new", o.RecentActivity[0].Name)
	assert.Equal(t, ActivityForwardingUpdated, o.RecentActivity[1].Type)
	assert.Equal(t, "old@gauntletai.com", o.RecentActivity[1].Email)
}

func TestOverview_StoreError(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := NewStatsService(accounts, new(MockForwardingRepository)).Overview(context.Background(), 5)

	assert.True(t, apperrors.IsStore(err))
}
