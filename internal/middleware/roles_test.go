package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdiaw/bibliotheque/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestAs(u UserCtx) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	if u.Authenticated() {
		r = r.WithContext(WithUser(r.Context(), u))
	}
	return r
}

func TestRoleRedirects(t *testing.T) {
	anonymous := UserCtx{}
	regular := UserCtx{UserID: "u1", Username: "alice"}
	admin := UserCtx{UserID: "u2", Username: "root", IsAdmin: true}

	tests := []struct {
		name       string
		mw         func(http.Handler) http.Handler
		user       UserCtx
		wantStatus int
		wantTarget string
	}{
		{"anonymous on user page", RequireUser, anonymous, http.StatusSeeOther, "/connexion"},
		{"anonymous on admin page", RequireAdmin, anonymous, http.StatusSeeOther, "/connexion"},
		{"user on user page", RequireUser, regular, http.StatusOK, ""},
		{"user on admin page", RequireAdmin, regular, http.StatusSeeOther, "/accueil"},
		{"admin on admin page", RequireAdmin, admin, http.StatusOK, ""},
		{"admin on user page", RequireUser, admin, http.StatusSeeOther, "/accueil_admin"},
		{"anonymous needs auth", RequireAuth, anonymous, http.StatusSeeOther, "/connexion"},
		{"user passes auth", RequireAuth, regular, http.StatusOK, ""},
		{"admin passes auth", RequireAuth, admin, http.StatusOK, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.mw(okHandler()).ServeHTTP(rec, requestAs(tc.user))

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantTarget != "" {
				assert.Equal(t, tc.wantTarget, rec.Header().Get("Location"))
			}
		})
	}
}

func TestSessionMiddleware_ValidCookie(t *testing.T) {
	sm := auth.NewSessionManager("test-secret", time.Hour)
	token, err := sm.Issue("u1", "alice", true)
	require.NoError(t, err)

	var got UserCtx
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromCtx(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	Session(sm)(next).ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.IsAdmin)
}

func TestSessionMiddleware_InvalidCookieStaysAnonymous(t *testing.T) {
	sm := auth.NewSessionManager("test-secret", time.Hour)

	var got UserCtx
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromCtx(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	Session(sm)(next).ServeHTTP(rec, r)

	assert.False(t, got.Authenticated())
	// invalid cookie gets dropped
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestSessionMiddleware_NoCookie(t *testing.T) {
	sm := auth.NewSessionManager("test-secret", time.Hour)

	var got UserCtx
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromCtx(r.Context())
	})

	Session(sm)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, got.Authenticated())
}
