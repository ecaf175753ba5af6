package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mdiaw/bibliotheque/internal/auth"
	"github.com/mdiaw/bibliotheque/internal/config"
	"github.com/mdiaw/bibliotheque/internal/metrics"
	"github.com/mdiaw/bibliotheque/internal/middleware"
)

func NewRouter(cfg config.Config, h *Handlers, sm *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS))
	r.Use(middleware.HTTPMetrics)
	r.Use(middleware.Session(sm))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// Uploaded covers and other assets.
	fs := http.StripPrefix("/static/IMAGE/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/static/IMAGE/*", fs.ServeHTTP)

	r.Get("/", h.Index)

	// public
	r.Get("/connexion", h.ShowLogin)
	r.Post("/connexion", h.Login)
	r.Get("/inscription", h.ShowRegister)
	r.Post("/inscription", h.Register)

	// any authenticated role
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/deconnexion", h.Logout)
	})

	// regular users
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/accueil", h.Home)
		r.Get("/bibliotheque", h.Library)
		r.Get("/details_livre/{id}", h.BookDetails)
		r.Get("/emprunter/{id}", h.ShowBorrow)
		r.Post("/emprunter/{id}", h.Borrow)
		r.Get("/mes_emprunts", h.MyLoans)
		r.Get("/retour_emprunt/{id}", h.ReturnLoan)
	})

	// administrators
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/accueil_admin", h.AdminHome)
		r.Get("/gerer_livres", h.ManageBooks)
		r.Get("/ajout_livre", h.ShowAddBook)
		r.Post("/ajout_livre", h.AddBook)
		r.Get("/modifier_livre/{id}", h.ShowEditBook)
		r.Post("/modifier_livre/{id}", h.EditBook)
		r.Post("/supprimer_livre/{id}", h.DeleteBook)
		r.Get("/voir_emprunts/{id}", h.UserLoans)
		r.Get("/gererUtilisateurs", h.ManageUsers)
		r.Post("/supprimerUtilisateur/{id}", h.DeleteUser)
	})

	return r
}
