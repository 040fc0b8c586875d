package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims this service accepts. The talents claim,
// when present, limits the token to those talent ids within the tenant.
type Claims struct {
	TenantID string   `json:"tenant_id"`
	Role     string   `json:"role"`
	Talents  []string `json:"talents,omitempty"`
	jwt.RegisteredClaims
}

var (
	// ErrNoToken is returned when a request carries no bearer token.
	ErrNoToken = errors.New("auth: no bearer token")
	// ErrTokenInvalid is returned for tokens that fail validation.
	ErrTokenInvalid = errors.New("auth: token rejected")
)

// ParseToken validates an HS256-signed token and returns its claims.
// Expiry and not-before are enforced by the parser.
func ParseToken(raw string, secret []byte) (*Claims, error) {
	if raw == "" {
		return nil, ErrNoToken
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: no signing secret configured", ErrTokenInvalid)
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant_id claim missing", ErrTokenInvalid)
	}
	if _, ok := NormalizeRole(claims.Role); !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, claims.Role)
	}
	return claims, nil
}

// Identity converts validated claims into the request identity.
func (c *Claims) Identity() Identity {
	role, _ := NormalizeRole(c.Role)
	return Identity{
		TenantID: c.TenantID,
		Role:     role,
		Subject:  c.Subject,
		Talents:  c.Talents,
	}
}
