package middleware

import "net/http"

// The whole access policy lives in this one check: anonymous users go
// to the login page, authenticated users of the wrong role go to their
// own home page. No route renders an error for a role mismatch.
func requireRole(admin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := FromCtx(r.Context())
			if !u.Authenticated() {
				http.Redirect(w, r, "/connexion", http.StatusSeeOther)
				return
			}
			if u.IsAdmin != admin {
				http.Redirect(w, r, u.HomePath(), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser guards the regular-user pages.
func RequireUser(next http.Handler) http.Handler { return requireRole(false)(next) }

// RequireAdmin guards the administrator pages.
func RequireAdmin(next http.Handler) http.Handler { return requireRole(true)(next) }

// RequireAuth only needs a session, any role (logout).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromCtx(r.Context()).Authenticated() {
			http.Redirect(w, r, "/connexion", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
