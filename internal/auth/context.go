package auth

import "context"

type identityKey struct{}

// Identity is the authenticated caller attached to a request context.
// Talents optionally narrows the token to specific talent ids within the
// tenant; empty means the whole roster.
type Identity struct {
	TenantID string
	Role     Role
	Subject  string
	Talents  []string
}

// CanAccessTalent reports whether the identity's talent scope covers the id.
func (id Identity) CanAccessTalent(talentID string) bool {
	if len(id.Talents) == 0 {
		return true
	}
	for _, allowed := range id.Talents {
		if allowed == talentID {
			return true
		}
	}
	return false
}

// WithIdentity attaches the caller identity to the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, zero when the request
// was never authenticated.
func IdentityFromContext(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	if id, ok := ctx.Value(identityKey{}).(Identity); ok {
		return id
	}
	return Identity{}
}

// TenantIDFromContext returns the caller's tenant id.
func TenantIDFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).TenantID
}

// RoleFromContext returns the caller's role.
func RoleFromContext(ctx context.Context) Role {
	return IdentityFromContext(ctx).Role
}

// SubjectFromContext returns the caller's subject.
func SubjectFromContext(ctx context.Context) string {
	return IdentityFromContext(ctx).Subject
}
