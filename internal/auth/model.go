package auth

import (
	"context"

	"github.com/iedc-carmel/club-management-backend/internal/principal"
)

// Roles carried in the custom claim and mirrored on the user document.
// Defined in internal/principal (below the middleware) and re-exported
// here; the values are identical.
const (
	RoleStudent    = principal.RoleStudent
	RoleAdmin      = principal.RoleAdmin
	RoleSuperAdmin = principal.RoleSuperAdmin
)

// Principal is the authenticated identity extracted from a bearer
// token. Aliased from internal/principal so packages that cannot
// import auth (it depends on internal/member) share the same type.
type Principal = principal.Principal

// TokenVerifier validates a bearer token and extracts the principal.
// It never mutates state.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*Principal, error)
}

// TokenMinter issues custom sign-in tokens for the secondary
// password-based login flow.
type TokenMinter interface {
	MintCustomToken(ctx context.Context, uid string, claims map[string]interface{}) (string, error)
}
