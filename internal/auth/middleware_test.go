package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/wtr-org/backoffice/internal/shared"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	clock := shared.FixedClock{T: time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)}
	issuer := NewTokenIssuer("test-secret", time.Hour, clock)

	var gotIdentity shared.Identity
	r := chi.NewRouter()
	r.Use(RequireAuth(issuer, nil, newTestLogger()))
	r.Get("/protected", func(w http.ResponseWriter, req *http.Request) {
		id, ok := shared.IdentityFromContext(req.Context())
		require.True(t, ok)
		gotIdentity = id
		w.WriteHeader(http.StatusNoContent)
	})

	// no token
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// malformed token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token
	token, _, err := issuer.Issue(42, "Jane Doe", "manager")
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, int64(42), gotIdentity.EmployeeID)
	require.Equal(t, "Jane Doe", gotIdentity.FullName)
	require.Equal(t, "manager", gotIdentity.Role)
}
