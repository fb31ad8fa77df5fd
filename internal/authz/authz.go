// Package authz decides which identities may act on accounts and forwarding rules.
package authz

import (
	"fmt"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
	"github.com/welldanyogia/forwarding-admin-backend/internal/identity"
	"github.com/welldanyogia/forwarding-admin-backend/internal/logger"
	"github.com/welldanyogia/forwarding-admin-backend/internal/validator"
)

// Action is an operation on a resource
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionImport Action = "import"
	ActionExport Action = "export"
	ActionManage Action = "manage"
)

// Kind names a resource type
type Kind string

const (
	KindAccount    Kind = "account"
	KindForwarding Kind = "forwarding"
	KindAdmin      Kind = "admin"
)

// Resource is the target of an action. OwnerEmail is empty for collections.
type Resource struct {
	Kind       Kind
	OwnerEmail string
}

// Collection returns a resource naming every row of kind
func Collection(kind Kind) Resource {
	return Resource{Kind: kind}
}

// Owned returns a resource owned by the account with ownerEmail
func Owned(kind Kind, ownerEmail string) Resource {
	return Resource{Kind: kind, OwnerEmail: validator.NormalizeEmail(ownerEmail)}
}

func (r Resource) String() string {
	if r.OwnerEmail == "" {
		return string(r.Kind)
	}
	return fmt.Sprintf("%s:%s", r.Kind, r.OwnerEmail)
}

// Authorizer is consulted before every operation
type Authorizer struct {
	adminEmails map[string]struct{}
	events      *logger.EventLogger
}

// New creates an Authorizer. adminEmails are privileged regardless of groups.
func New(adminEmails []string, events *logger.EventLogger) *Authorizer {
	set := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = validator.NormalizeEmail(e); e != "" {
			set[e] = struct{}{}
		}
	}
	if events == nil {
		events = logger.NewEventLogger(nil)
	}
	return &Authorizer{adminEmails: set, events: events}
}

// IsPrivileged reports whether id may perform every action
func (a *Authorizer) IsPrivileged(id identity.Identity) bool {
	if id.InGroup(identity.GroupAdmin) {
		return true
	}
	_, ok := a.adminEmails[validator.NormalizeEmail(id.Email)]
	return ok
}

// Authorize returns nil when id may perform action on res, else a Forbidden error.
// Non-privileged callers may read their own account and read or update their
// own forwarding rule.
func (a *Authorizer) Authorize(id identity.Identity, action Action, res Resource) error {
	if a.IsPrivileged(id) || a.ownerMay(id, action, res) {
		return nil
	}

	a.events.AccessDenied(id.Email, string(action), res.String())
	return apperrors.NewAppError(apperrors.ErrForbidden,
		fmt.Sprintf("not allowed to %s %s", action, res.Kind), apperrors.CodeForbidden)
}

func (a *Authorizer) ownerMay(id identity.Identity, action Action, res Resource) bool {
	if res.OwnerEmail == "" || res.OwnerEmail != validator.NormalizeEmail(id.Email) {
		return false
	}
	switch res.Kind {
	case KindAccount:
		return action == ActionRead
	case KindForwarding:
		return action == ActionRead || action == ActionUpdate
	default:
		return false
	}
}
