package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdiaw/bibliotheque/internal/auth"
	"github.com/mdiaw/bibliotheque/internal/config"
	"github.com/mdiaw/bibliotheque/internal/models"
	"github.com/mdiaw/bibliotheque/internal/repository/memory"
	"github.com/mdiaw/bibliotheque/internal/services"
	"github.com/mdiaw/bibliotheque/internal/upload"
	"github.com/mdiaw/bibliotheque/internal/worker"
)

type testApp struct {
	router   http.Handler
	store    *memory.Store
	sessions *auth.SessionManager
	users    *services.UserService
	catalog  *services.CatalogService
	loans    *services.LoanService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := memory.NewStore()
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)

	userSvc := services.NewUserService(store.Users())
	catalogSvc := services.NewCatalogService(store.Books(), store.AuditLogs(), wp)
	loanSvc := services.NewLoanService(store.Loans(), store.AuditLogs(), wp)
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	images := upload.NewImageStore(t.TempDir())

	renderer, err := NewRenderer()
	require.NoError(t, err)

	cfg := config.Config{Env: "dev", UploadDir: t.TempDir(), RateRPS: 0}
	handlers := NewHandlers(userSvc, catalogSvc, loanSvc, sessions, images, renderer)

	return &testApp{
		router:   NewRouter(cfg, handlers, sessions),
		store:    store,
		sessions: sessions,
		users:    userSvc,
		catalog:  catalogSvc,
		loans:    loanSvc,
	}
}

func (a *testApp) registerUser(t *testing.T, name string) models.User {
	t.Helper()
	u, err := a.users.Register(context.Background(), name, name+"@example.com", "1 rue du Test", "pw")
	require.NoError(t, err)
	return u
}

func (a *testApp) admin(t *testing.T) models.User {
	t.Helper()
	hash, err := auth.HashPassword("@admin")
	require.NoError(t, err)
	u, err := a.store.Users().Create(context.Background(), "admin", "admin@example.com", "@admin", hash, true)
	require.NoError(t, err)
	return u
}

func (a *testApp) get(t *testing.T, path string, as *models.User) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	a.authenticate(t, r, as)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, r)
	return rec
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, as *models.User) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.authenticate(t, r, as)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, r)
	return rec
}

func (a *testApp) authenticate(t *testing.T, r *http.Request, as *models.User) {
	t.Helper()
	if as == nil {
		return
	}
	token, err := a.sessions.Issue(as.ID, as.Username, as.IsAdmin)
	require.NoError(t, err)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
}

func TestIndexRedirects(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	root := app.admin(t)

	rec := app.get(t, "/", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/connexion", rec.Header().Get("Location"))

	rec = app.get(t, "/", &alice)
	assert.Equal(t, "/accueil", rec.Header().Get("Location"))

	rec = app.get(t, "/", &root)
	assert.Equal(t, "/accueil_admin", rec.Header().Get("Location"))
}

func TestAccessControlMatrix(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	root := app.admin(t)

	tests := []struct {
		name       string
		path       string
		as         *models.User
		wantStatus int
		wantTarget string
	}{
		{"anonymous user page", "/bibliotheque", nil, http.StatusSeeOther, "/connexion"},
		{"anonymous admin page", "/gerer_livres", nil, http.StatusSeeOther, "/connexion"},
		{"user on own page", "/accueil", &alice, http.StatusOK, ""},
		{"user on admin page", "/gerer_livres", &alice, http.StatusSeeOther, "/accueil"},
		{"admin on own page", "/accueil_admin", &root, http.StatusOK, ""},
		{"admin on user page", "/bibliotheque", &root, http.StatusSeeOther, "/accueil_admin"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.get(t, tc.path, tc.as)
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantTarget != "" {
				assert.Equal(t, tc.wantTarget, rec.Header().Get("Location"))
			}
		})
	}
}

func TestLogin_SetsSessionAndRedirectsByRole(t *testing.T) {
	app := newTestApp(t)
	app.registerUser(t, "alice")
	app.admin(t)

	rec := app.postForm(t, "/connexion",
		url.Values{"nom_utilisateur": {"alice"}, "mot_de_passe": {"pw"}}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accueil", rec.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	claims, err := app.sessions.Parse(sessionCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	rec = app.postForm(t, "/connexion",
		url.Values{"nom_utilisateur": {"admin"}, "mot_de_passe": {"@admin"}}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accueil_admin", rec.Header().Get("Location"))
}

// Unknown username and wrong password must behave identically: same
// status, same page, same message, no session cookie.
func TestLogin_UniformFailure(t *testing.T) {
	app := newTestApp(t)
	app.registerUser(t, "alice")

	for name, form := range map[string]url.Values{
		"wrong password":   {"nom_utilisateur": {"alice"}, "mot_de_passe": {"nope"}},
		"unknown username": {"nom_utilisateur": {"ghost"}, "mot_de_passe": {"pw"}},
	} {
		t.Run(name, func(t *testing.T) {
			rec := app.postForm(t, "/connexion", form, nil)
			assert.Equal(t, http.StatusOK, rec.Code, "form is re-rendered, not redirected")
			assert.Contains(t, rec.Body.String(), "Identifiants invalides.")
			for _, c := range rec.Result().Cookies() {
				assert.NotEqual(t, auth.SessionCookieName, c.Name, "no session on failed login")
			}
		})
	}
}

func TestRegister_DuplicateShowsFlashWithoutSecondRow(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{
		"nom_utilisateur": {"alice"},
		"email":           {"alice@example.com"},
		"adresse":         {"12 rue des Lilas"},
		"mot_de_passe":    {"pw1"},
	}

	rec := app.postForm(t, "/inscription", form, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/connexion", rec.Header().Get("Location"))

	form.Set("email", "alice2@example.com")
	rec = app.postForm(t, "/inscription", form, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nom d&#39;utilisateur déjà utilisé")

	users, err := app.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestBorrowFlow(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	book, err := app.catalog.Create(context.Background(), models.Book{
		Title: "Dune", Author: "Frank Herbert", Genre: "Science-fiction", Year: 1965, Quantity: 1,
	})
	require.NoError(t, err)

	// confirmation page
	rec := app.get(t, "/emprunter/"+book.ID, &alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")

	// borrow
	rec = app.postForm(t, "/emprunter/"+book.ID, url.Values{}, &alice)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/mes_emprunts", rec.Header().Get("Location"))

	after, err := app.catalog.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Quantity)

	// second copy does not exist anymore
	bob := app.registerUser(t, "bob")
	rec = app.postForm(t, "/emprunter/"+book.ID, url.Values{}, &bob)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/details_livre/"+book.ID, rec.Header().Get("Location"))

	loans, err := app.loans.MyLoans(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, loans)
}

func TestMyLoans_ShowsOnlyOwnLoans(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	bob := app.registerUser(t, "bob")

	duneID := seedBookDirect(t, app, "Dune", 3)
	fondationID := seedBookDirect(t, app, "Fondation", 3)

	_, err := app.loans.Borrow(context.Background(), alice.ID, duneID)
	require.NoError(t, err)
	_, err = app.loans.Borrow(context.Background(), bob.ID, fondationID)
	require.NoError(t, err)

	rec := app.get(t, "/mes_emprunts", &alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune")
	assert.NotContains(t, rec.Body.String(), "Fondation")
}

func TestAdminViewsUserLoans(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	root := app.admin(t)

	duneID := seedBookDirect(t, app, "Dune", 3)
	_, err := app.loans.Borrow(context.Background(), alice.ID, duneID)
	require.NoError(t, err)

	rec := app.get(t, "/voir_emprunts/"+alice.ID, &root)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
	assert.Contains(t, rec.Body.String(), "Dune")
}

func TestDeleteUser(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	root := app.admin(t)

	rec := app.postForm(t, "/supprimerUtilisateur/"+alice.ID, url.Values{}, &root)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/gererUtilisateurs", rec.Header().Get("Location"))

	users, err := app.users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}

func TestEditBook_AcceptsRawImageReference(t *testing.T) {
	app := newTestApp(t)
	root := app.admin(t)
	bookID := seedBookDirect(t, app, "Dune", 2)

	form := url.Values{
		"titre":             {"Dune"},
		"auteur":            {"Frank Herbert"},
		"genre":             {"Science-fiction"},
		"annee_publication": {"1965"},
		"quantite":          {"4"},
		"image_url":         {"/static/IMAGE/dune.jpg"},
	}
	rec := app.postForm(t, "/modifier_livre/"+bookID, form, &root)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	after, err := app.catalog.Get(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 4, after.Quantity)
	require.NotNil(t, after.ImageURL)
	assert.Equal(t, "/static/IMAGE/dune.jpg", *after.ImageURL)
}

func seedBookDirect(t *testing.T, app *testApp, title string, qty int) string {
	t.Helper()
	b, err := app.catalog.Create(context.Background(), models.Book{
		Title: title, Author: "A", Genre: "G", Year: 2000, Quantity: qty,
	})
	require.NoError(t, err)
	return b.ID
}
