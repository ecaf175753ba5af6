package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

const maxUploadBytes = 10 << 20

// Browse serves both /bibliotheque (user) and /gerer_livres (admin);
// the role middleware decides who sees which, the page differs.
func (h *Handlers) browse(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("search")
		data := map[string]any{"Search": term}
		books, err := h.catalog.Browse(r.Context(), term)
		if err != nil {
			slog.Error("catalog browse", "err", err)
			data["Flash"] = &Flash{Category: "error", Message: "Erreur lors du chargement du catalogue."}
		}
		data["Books"] = books
		h.render.Render(w, r, page, data)
	}
}

func (h *Handlers) Library(w http.ResponseWriter, r *http.Request) { h.browse("bibliotheque")(w, r) }
func (h *Handlers) ManageBooks(w http.ResponseWriter, r *http.Request) {
	h.browse("gerer_livres")(w, r)
}

func (h *Handlers) BookDetails(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repo.ErrNotFound) {
		setFlash(w, "error", "Livre introuvable.")
		http.Redirect(w, r, "/bibliotheque", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("book details", "err", err)
		http.Redirect(w, r, "/bibliotheque", http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "details_livre", map[string]any{"Book": book})
}

func (h *Handlers) ShowAddBook(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "ajout_livre", nil)
}

func (h *Handlers) AddBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		setFlash(w, "error", "Formulaire invalide.")
		http.Redirect(w, r, "/ajout_livre", http.StatusSeeOther)
		return
	}

	book, err := bookFromForm(r)
	if err != nil {
		setFlash(w, "error", err.Error())
		http.Redirect(w, r, "/ajout_livre", http.StatusSeeOther)
		return
	}

	if file, fh, err := r.FormFile("image"); err == nil {
		file.Close()
		url, err := h.images.Save(fh)
		if err != nil {
			slog.Error("image upload", "err", err)
			setFlash(w, "error", "Erreur lors de l'ajout du livre.")
			http.Redirect(w, r, "/gerer_livres", http.StatusSeeOther)
			return
		}
		book.ImageURL = &url
	}

	if _, err := h.catalog.Create(r.Context(), book); err != nil {
		slog.Error("book create", "err", err)
		setFlash(w, "error", "Erreur lors de l'ajout du livre.")
		http.Redirect(w, r, "/gerer_livres", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Livre ajouté avec succès !")
	http.Redirect(w, r, "/gerer_livres", http.StatusSeeOther)
}

func (h *Handlers) ShowEditBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		setFlash(w, "error", "Livre introuvable.")
		http.Redirect(w, r, "/gerer_livres", http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, "modifier_livre", map[string]any{"Book": book})
}

// EditBook overwrites every mutable field. Unlike creation it takes a
// raw image reference instead of an upload.
// TODO: accept a replacement upload here, same as AddBook.
func (h *Handlers) EditBook(w http.ResponseWriter, r *http.Request) {
	book, err := bookFromForm(r)
	if err != nil {
		setFlash(w, "error", err.Error())
		http.Redirect(w, r, "/modifier_livre/"+chi.URLParam(r, "id"), http.StatusSeeOther)
		return
	}
	book.ID = chi.URLParam(r, "id")
	if raw := strings.TrimSpace(r.FormValue("image_url")); raw != "" {
		book.ImageURL = &raw
	}

	if err := h.catalog.Update(r.Context(), book); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			setFlash(w, "error", "Livre introuvable.")
		} else {
			slog.Error("book update", "err", err)
			setFlash(w, "error", "Erreur lors de la modification du livre.")
		}
		http.Redirect(w, r, "/gerer_livres", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Livre modifié avec succès.")
	http.Redirect(w, r, "/gerer_livres", http.StatusSeeOther)
}

func (h *Handlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, repo.ErrNotFound):
		setFlash(w, "error", "Livre introuvable.")
	case err != nil:
		slog.Error("book delete", "err", err)
		setFlash(w, "error", "Erreur lors de la suppression du livre.")
	default:
		setFlash(w, "success", "Livre supprimé avec succès.")
	}
	http.Redirect(w, r, "/gerer_livres", http.StatusSeeOther)
}

func bookFromForm(r *http.Request) (models.Book, error) {
	year, err := strconv.Atoi(r.FormValue("annee_publication"))
	if err != nil {
		return models.Book{}, errors.New("année de publication invalide")
	}
	qty, err := strconv.Atoi(r.FormValue("quantite"))
	if err != nil {
		return models.Book{}, errors.New("quantité invalide")
	}

	b := models.Book{
		Title:    strings.TrimSpace(r.FormValue("titre")),
		Author:   strings.TrimSpace(r.FormValue("auteur")),
		Genre:    strings.TrimSpace(r.FormValue("genre")),
		Year:     year,
		Quantity: qty,
	}
	if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
		b.Description = &desc
	}
	return b, b.Validate()
}
