package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nat/todo-api/internal/api/middleware"
	"github.com/nat/todo-api/internal/domain"
	"github.com/nat/todo-api/internal/service"
	"github.com/nat/todo-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The middleware only needs token validation, which never touches the
// store, so these tests run without a database.
func newAuthService() *service.AuthService {
	return service.NewAuthService(nil, testutil.TestConfig())
}

func protectedEcho(authService *service.AuthService, role domain.Role) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetUserID(r.Context()); !ok {
			http.Error(w, "no user id", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return middleware.Auth(authService)(middleware.RequireRole(role)(inner))
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := protectedEcho(newAuthService(), domain.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := protectedEcho(newAuthService(), domain.RoleUser)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no bearer prefix", header: "some-token"},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw=="},
		{name: "bearer without token", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := protectedEcho(newAuthService(), domain.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	authService := newAuthService()
	handler := protectedEcho(authService, domain.RoleUser)

	token, err := authService.IssueToken(&domain.User{ID: 42, Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	authService := newAuthService()
	handler := protectedEcho(authService, domain.RoleUser)

	// Authenticated but carrying the wrong role: forbidden, not
	// unauthenticated.
	token, err := authService.IssueToken(&domain.User{ID: 42, Role: domain.Role("Admin")})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
