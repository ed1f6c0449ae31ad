package middleware

import (
	"context"
	"net/http"

	"github.com/baechuer/flatfile-auth/internal/domain"
	"github.com/baechuer/flatfile-auth/internal/infrastructure/security"
)

type WriteErrFunc func(w http.ResponseWriter, r *http.Request, err error)

// Authorizer is the slice of auth.Service that role gating needs.
type Authorizer interface {
	Authorize(ctx context.Context, token string, required domain.Role) (domain.UserRecord, error)
}

// RequireRole admits a request whose session user is admin or holds
// exactly role. There is no hierarchy: moderator does not pass an admin
// check and admin is not "above" anything, it simply bypasses.
// The identified record is put in the request context.
func RequireRole(authz Authorizer, role domain.Role, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := authz.Authorize(r.Context(), security.ReadSession(r), role)
			if err != nil {
				reason := "error"
				switch {
				case domain.Is(err, domain.CodeNotLoggedIn):
					reason = "not_logged_in"
				case domain.Is(err, domain.CodeForbidden):
					reason = "forbidden"
				}
				AuthorizationDeniedTotal.WithLabelValues(string(role), reason).Inc()
				writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
