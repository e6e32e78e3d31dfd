package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salestrack/internal/domain"
)

func TestMiddlewareClaims(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		role     string
		wantRole domain.Role
	}{
		{"admin headers", "u1", "admin", domain.RoleAdmin},
		{"agent headers", "u2", "agent", domain.RoleAgent},
		{"unknown role downgrades", "u3", "superuser", domain.RoleAgent},
		{"missing headers", "", "", domain.RoleAgent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got Claims
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.userID != "" {
				req.Header.Set(HeaderUserID, tc.userID)
			}
			if tc.role != "" {
				req.Header.Set(HeaderRole, tc.role)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got.UserID != tc.userID {
				t.Fatalf("expected user id %q, got %q", tc.userID, got.UserID)
			}
			if got.Role != tc.wantRole {
				t.Fatalf("expected role %q, got %q", tc.wantRole, got.Role)
			}
		})
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	claims := FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	if claims.IsAdmin() {
		t.Fatalf("expected anonymous requests to read as agent")
	}
}
