package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mdiaw/bibliotheque/internal/middleware"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
	"github.com/mdiaw/bibliotheque/internal/services"
)

func (h *Handlers) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if u := middleware.FromCtx(r.Context()); u.Authenticated() {
		http.Redirect(w, r, u.HomePath(), http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "connexion", nil)
}

// Login authenticates and opens a session. Unknown username and wrong
// password take the exact same path: same flash, same re-rendered
// form.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if u := middleware.FromCtx(r.Context()); u.Authenticated() {
		http.Redirect(w, r, u.HomePath(), http.StatusSeeOther)
		return
	}

	username := r.FormValue("nom_utilisateur")
	password := r.FormValue("mot_de_passe")

	user, err := h.users.Login(r.Context(), username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.render.Render(w, r, "connexion", withFlash("error", "Identifiants invalides."))
		return
	}
	if err != nil {
		slog.Error("login", "err", err)
		h.render.Render(w, r, "connexion", withFlash("error", "Erreur lors de la connexion."))
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		slog.Error("session issue", "err", err)
		h.render.Render(w, r, "connexion", withFlash("error", "Erreur lors de la connexion."))
		return
	}
	h.sessions.SetCookie(w, token)
	setFlash(w, "success", "Connecté avec succès.")
	http.Redirect(w, r, user.HomePath(), http.StatusSeeOther)
}

func (h *Handlers) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if u := middleware.FromCtx(r.Context()); u.Authenticated() {
		http.Redirect(w, r, u.HomePath(), http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "inscription", nil)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if u := middleware.FromCtx(r.Context()); u.Authenticated() {
		http.Redirect(w, r, u.HomePath(), http.StatusSeeOther)
		return
	}

	_, err := h.users.Register(r.Context(),
		r.FormValue("nom_utilisateur"),
		r.FormValue("email"),
		r.FormValue("adresse"),
		r.FormValue("mot_de_passe"),
	)
	switch {
	case errors.Is(err, repo.ErrDuplicateUsername):
		h.render.Render(w, r, "inscription", withFlash("error", "Nom d'utilisateur déjà utilisé. Veuillez en choisir un autre."))
	case err != nil:
		slog.Error("register", "err", err)
		h.render.Render(w, r, "inscription", withFlash("error", "Erreur lors de l'inscription. Veuillez réessayer."))
	default:
		setFlash(w, "success", "Compte créé avec succès. Vous pouvez maintenant vous connecter.")
		http.Redirect(w, r, "/connexion", http.StatusSeeOther)
	}
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	setFlash(w, "success", "Déconnecté avec succès.")
	http.Redirect(w, r, "/connexion", http.StatusSeeOther)
}
