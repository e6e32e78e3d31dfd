// Package auth reads the identity the fronting proxy injects. The dashboard
// sits behind an authenticating reverse proxy that stamps every request with
// the caller's id and role; nothing here verifies credentials.
package auth

import (
	"context"
	"net/http"

	"salestrack/internal/domain"
)

const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-User-Role"
)

type Claims struct {
	UserID string
	Role   domain.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

type contextKey struct{}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// FromContext returns the request claims. Requests reaching a handler
// without the middleware read as an anonymous agent.
func FromContext(ctx context.Context) Claims {
	claims, ok := ctx.Value(contextKey{}).(Claims)
	if !ok {
		return Claims{Role: domain.RoleAgent}
	}
	return claims
}

// Middleware extracts the proxy headers into request claims. An unknown or
// missing role downgrades to agent.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := Claims{
			UserID: r.Header.Get(HeaderUserID),
			Role:   domain.RoleAgent,
		}
		if r.Header.Get(HeaderRole) == string(domain.RoleAdmin) {
			claims.Role = domain.RoleAdmin
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
