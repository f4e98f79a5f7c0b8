package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dallasheidt14/rankwatch/internal/rbac"
)

func testService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("test-secret", map[string]Account{
		"ops": {PassHash: string(hash), Role: "operator"},
	})
}

func TestVerify(t *testing.T) {
	a := testService(t)

	role, ok := a.Verify("ops", "hunter2")
	require.True(t, ok)
	require.Equal(t, "operator", role)

	_, ok = a.Verify("ops", "wrong")
	require.False(t, ok)

	_, ok = a.Verify("nobody", "hunter2")
	require.False(t, ok)
}

func TestIssueAndParseJWT(t *testing.T) {
	a := testService(t)

	tok, err := a.IssueJWT("ops", "operator")
	require.NoError(t, err)

	claims, err := a.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "ops", claims.Sub)
	require.Equal(t, "operator", claims.Role)
	require.Equal(t, "rankwatch", claims.Issuer)

	// A token signed with a different secret does not parse.
	other := NewAuthService("other-secret", nil)
	_, err = other.Parse(tok)
	require.Error(t, err)
}

func TestLoginHandler(t *testing.T) {
	h := LoginHandler(testService(t))

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"ops","password":"hunter2"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "access_token")
		require.Contains(t, rec.Body.String(), `"role":"operator"`)
	})

	t.Run("bad password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"ops","password":"nope"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestJWTMiddleware(t *testing.T) {
	a := testService(t)
	var gotRole, gotSub string
	handler := JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = rbac.RoleFromContext(r.Context())
		gotSub = rbac.SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token", func(t *testing.T) {
		tok, err := a.IssueJWT("ops", "operator")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "operator", gotRole)
		require.Equal(t, "ops", gotSub)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
