package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mdiaw/bibliotheque/internal/middleware"
	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

// ShowBorrow renders the confirmation page before the loan is made.
func (h *Handlers) ShowBorrow(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		setFlash(w, "error", "Livre introuvable.")
		http.Redirect(w, r, "/bibliotheque", http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "emprunter", map[string]any{
		"Book":     book,
		"Today":    time.Now().Format("02-01-2006"),
		"Duration": models.LoanDurationDays,
	})
}

func (h *Handlers) Borrow(w http.ResponseWriter, r *http.Request) {
	u := middleware.FromCtx(r.Context())
	bookID := chi.URLParam(r, "id")

	_, err := h.loans.Borrow(r.Context(), u.UserID, bookID)
	switch {
	case errors.Is(err, repo.ErrNotAvailable):
		setFlash(w, "error", "Ce livre n'est pas disponible.")
		http.Redirect(w, r, "/details_livre/"+bookID, http.StatusSeeOther)
	case errors.Is(err, repo.ErrNotFound):
		setFlash(w, "error", "Livre introuvable.")
		http.Redirect(w, r, "/bibliotheque", http.StatusSeeOther)
	case err != nil:
		slog.Error("borrow", "err", err)
		setFlash(w, "error", "Erreur lors de l'emprunt.")
		http.Redirect(w, r, "/bibliotheque", http.StatusSeeOther)
	default:
		setFlash(w, "success", "Emprunt effectué avec succès.")
		http.Redirect(w, r, "/mes_emprunts", http.StatusSeeOther)
	}
}

func (h *Handlers) MyLoans(w http.ResponseWriter, r *http.Request) {
	u := middleware.FromCtx(r.Context())
	data := map[string]any{}
	loans, err := h.loans.MyLoans(r.Context(), u.UserID)
	if err != nil {
		slog.Error("my loans", "err", err)
		data["Flash"] = &Flash{Category: "error", Message: "Erreur lors du chargement des emprunts."}
	}
	data["Loans"] = loans
	h.render.Render(w, r, "mes_emprunts", data)
}

func (h *Handlers) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	u := middleware.FromCtx(r.Context())

	_, err := h.loans.Return(r.Context(), chi.URLParam(r, "id"), u.UserID)
	switch {
	case errors.Is(err, repo.ErrAlreadyReturned):
		// Second click on an already-closed loan; nothing changed.
		setFlash(w, "error", "Cet emprunt est déjà rendu.")
	case errors.Is(err, repo.ErrNotFound):
		setFlash(w, "error", "Emprunt introuvable.")
	case err != nil:
		slog.Error("return loan", "err", err)
		setFlash(w, "error", "Erreur lors du retour.")
	default:
		setFlash(w, "success", "Livre retourné avec succès.")
	}
	http.Redirect(w, r, "/mes_emprunts", http.StatusSeeOther)
}

// UserLoans lets an administrator inspect any user's loans.
func (h *Handlers) UserLoans(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	borrower, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		setFlash(w, "error", "Utilisateur introuvable.")
		http.Redirect(w, r, "/gererUtilisateurs", http.StatusSeeOther)
		return
	}
	data := map[string]any{"Borrower": borrower}
	loans, err := h.loans.LoansOfUser(r.Context(), id)
	if err != nil {
		slog.Error("user loans", "err", err)
		data["Flash"] = &Flash{Category: "error", Message: "Erreur lors du chargement des emprunts."}
	}
	data["Loans"] = loans
	h.render.Render(w, r, "voir_emprunts", data)
}
