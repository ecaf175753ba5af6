package web

import (
	"net/http"

	"github.com/mdiaw/bibliotheque/internal/auth"
	"github.com/mdiaw/bibliotheque/internal/middleware"
	"github.com/mdiaw/bibliotheque/internal/services"
	"github.com/mdiaw/bibliotheque/internal/upload"
)

type Handlers struct {
	users    *services.UserService
	catalog  *services.CatalogService
	loans    *services.LoanService
	sessions *auth.SessionManager
	images   *upload.ImageStore
	render   *Renderer
}

func NewHandlers(us *services.UserService, cs *services.CatalogService, ls *services.LoanService,
	sm *auth.SessionManager, images *upload.ImageStore, rn *Renderer) *Handlers {
	return &Handlers{users: us, catalog: cs, loans: ls, sessions: sm, images: images, render: rn}
}

// Index sends visitors wherever their session says they belong.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	u := middleware.FromCtx(r.Context())
	if !u.Authenticated() {
		http.Redirect(w, r, "/connexion", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, u.HomePath(), http.StatusSeeOther)
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "accueil", nil)
}

func (h *Handlers) AdminHome(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "accueil_admin", nil)
}
