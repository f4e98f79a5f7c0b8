package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckerHas(t *testing.T) {
	c := NewChecker(nil)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"viewer", "snapshot:list", true},
		{"viewer", "snapshot:ingest", false},
		{"viewer", "report:state-ranks", true},
		{"viewer", "team:audit", true},
		{"operator", "snapshot:ingest", true},
		{"operator", "report:components", true},
		{"admin", "snapshot:ingest", true},
		{"admin", "anything:at-all", true},
		{"", "report:state-ranks", false},
		{"ghost", "report:state-ranks", false},
	}
	for _, tc := range cases {
		require.Equalf(t, tc.want, c.Has(tc.role, tc.perm), "%s / %s", tc.role, tc.perm)
	}
}

func TestMatchPerm(t *testing.T) {
	require.True(t, matchPerm("*", "snapshot:ingest"))
	require.True(t, matchPerm("snapshot:*", "snapshot:ingest"))
	require.True(t, matchPerm("snapshot:list", "snapshot:list"))
	require.False(t, matchPerm("snapshot:list", "snapshot:ingest"))
	require.False(t, matchPerm("report:*", "snapshot:list"))
}

func TestRequire(t *testing.T) {
	handler := Require("snapshot:ingest")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
		req = req.WithContext(WithRole(req.Context(), "operator"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("forbidden role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
		req = req.WithContext(WithRole(req.Context(), "viewer"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no role in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithRole(WithSubject(httptest.NewRequest("GET", "/", nil).Context(), "admin"), "admin")
	require.Equal(t, "admin", RoleFromContext(ctx))
	require.Equal(t, "admin", SubjectFromContext(ctx))
}
