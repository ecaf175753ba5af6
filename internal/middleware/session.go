package middleware

import (
	"net/http"

	"github.com/mdiaw/bibliotheque/internal/auth"
)

// Session resolves the session cookie into a UserCtx. Missing or
// invalid cookies just leave the request anonymous; the role
// middleware decides what that means per route.
func Session(sm *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := sm.Parse(cookie.Value)
			if err != nil {
				sm.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUser(r.Context(), UserCtx{
				UserID:   claims.UserID,
				Username: claims.Username,
				IsAdmin:  claims.IsAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
