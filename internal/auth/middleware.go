package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wtr-org/backoffice/internal/platform/httpx"
	"github.com/wtr-org/backoffice/internal/shared"
)

type claimsKey struct{}

// ClaimsFromContext returns the verified token claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// RequireAuth verifies the bearer token, rejects revoked tokens, and
// stores the caller identity in the request context.
func RequireAuth(issuer *TokenIssuer, denylist *Denylist, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || token == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					logger.Warn("denylist lookup failed", slog.Any("error", err))
				} else if revoked {
					httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "token revoked")
					return
				}
			}

			employeeID, err := claims.EmployeeID()
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid subject")
				return
			}

			ctx := shared.ContextWithIdentity(r.Context(), shared.Identity{
				EmployeeID: employeeID,
				FullName:   claims.FullName,
				Role:       claims.Role,
			})
			ctx = context.WithValue(ctx, claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
