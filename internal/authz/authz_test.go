package authz

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
)

func newTestAuthorizer(adminEmails ...string) (*Authorizer, *bytes.Buffer) {
	var buf bytes.Buffer
	events := logger.NewEventLoggerWithHandler(slog.NewJSONHandler(&buf, nil))
	return New(adminEmails, events), &buf
}

func TestAuthorize_AdminGroupMayDoEverything(t *testing.T) {
	a, _ := newTestAuthorizer()
	admin := identity.Identity{Email: "boss@gauntletai.com", Groups: []string{"ADMIN"}}

	assert.NoError(t, a.Authorize(admin, ActionDelete, Owned(KindAccount, "someone@gauntletai.com")))
	assert.NoError(t, a.Authorize(admin, ActionImport, Collection(KindAccount)))
	assert.NoError(t, a.Authorize(admin, ActionManage, Collection(KindAdmin)))
}

func TestAuthorize_ConfiguredAdminEmail(t *testing.T) {
	a, _ := newTestAuthorizer(" Root@GauntletAI.com ")
	root := identity.Identity{Email: "root@gauntletai.com"}

	assert.True(t, a.IsPrivileged(root))
	assert.NoError(t, a.Authorize(root, ActionManage, Collection(KindAdmin)))
}

func TestAuthorize_OwnerRules(t *testing.T) {
	a, _ := newTestAuthorizer()
	student := identity.Identity{Email: "student@gauntletai.com", Groups: []string{"STUDENT"}}

	tests := []struct {
		name    string
		action  Action
		res     Resource
		allowed bool
	}{
		{"read own account", ActionRead, Owned(KindAccount, "Student@gauntletai.com"), true},
		{"update own account", ActionUpdate, Owned(KindAccount, "student@gauntletai.com"), false},
		{"read own forwarding", ActionRead, Owned(KindForwarding, "student@gauntletai.com"), true},
		{"update own forwarding", ActionUpdate, Owned(KindForwarding, "student@gauntletai.com"), true},
		{"delete own forwarding", ActionDelete, Owned(KindForwarding, "student@gauntletai.com"), false},
		{"read other account", ActionRead, Owned(KindAccount, "other@gauntletai.com"), false},
		{"list accounts", ActionRead, Collection(KindAccount), false},
		{"admin area", ActionManage, Collection(KindAdmin), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authorize(student, tt.action, tt.res)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}

func TestAuthorize_DenialIsLogged(t *testing.T) {
	a, buf := newTestAuthorizer()

	err := a.Authorize(identity.Identity{Email: "student@gauntletai.com"}, ActionDelete, Collection(KindAccount))

	assert.Equal(t, apperrors.CodeForbidden, apperrors.GetErrorCode(err))
	assert.Contains(t, buf.String(), "access_denied")
	assert.Contains(t, buf.String(), "student@gauntletai.com")
}
