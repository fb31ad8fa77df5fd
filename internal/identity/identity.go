// Package identity carries the authenticated caller through a request context
// and verifies the bearer tokens that establish it.
package identity

import (
	"context"
	"strings"

	apperrors "github.com/welldanyogia/forwarding-admin-backend/internal/errors"
)

// GroupAdmin is the identity-provider group granting full access
const GroupAdmin = "ADMIN"

// Identity is the authenticated caller
type Identity struct {
	ID     string   `json:"id"`
	Email  string   `json:"email"`
	Groups []string `json:"groups"`
}

// InGroup reports whether the identity belongs to group (case-insensitive)
func (i Identity) InGroup(group string) bool {
	for _, g := range i.Groups {
		if strings.EqualFold(g, group) {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the current identity or ErrUnauthenticated
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.Email == "" {
		return Identity{}, apperrors.NewAppError(apperrors.ErrUnauthenticated, "authentication required", apperrors.CodeUnauthenticated)
	}
	return id, nil
}
