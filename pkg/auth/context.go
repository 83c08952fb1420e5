package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Role is a member's role within its family.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Identity is the verified caller identity carried by every authenticated
// request and every live connection. FamilyID is the trust boundary: all
// aggregate queries must be scoped by it.
type Identity struct {
	MemberID uuid.UUID
	FamilyID uuid.UUID
	Role     Role
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// ErrIdentityNotFound is returned when no Identity exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrIdentityNotFound = errors.New("identity not found in context")

// IdentityFromCtx extracts the authenticated caller identity from the request
// context. Returns ErrIdentityNotFound if none is set (unauthenticated request).
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.MemberID == uuid.Nil {
		return Identity{}, ErrIdentityNotFound
	}
	return id, nil
}

// WithIdentity returns a new context with the given Identity attached.
// Used by authentication middleware after verifying the bearer token.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
