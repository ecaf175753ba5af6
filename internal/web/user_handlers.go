package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

func (h *Handlers) ManageUsers(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	users, err := h.users.List(r.Context())
	if err != nil {
		slog.Error("list users", "err", err)
		data["Flash"] = &Flash{Category: "error", Message: "Erreur lors du chargement des utilisateurs."}
	}
	data["Users"] = users
	h.render.Render(w, r, "gerer_utilisateurs", data)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, repo.ErrNotFound):
		setFlash(w, "error", "Utilisateur introuvable.")
	case err != nil:
		slog.Error("delete user", "err", err)
		setFlash(w, "error", "Erreur lors de la suppression.")
	default:
		setFlash(w, "success", "Utilisateur supprimé avec succès.")
	}
	http.Redirect(w, r, "/gererUtilisateurs", http.StatusSeeOther)
}
