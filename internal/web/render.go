package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mdiaw/bibliotheque/internal/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer holds one parsed template set per page, each paired with
// the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if name == "layout.html" {
			continue
		}
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the page inside the layout, injecting the current
// user and any pending flash message.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	t, ok := rn.pages[page]
	if !ok {
		slog.Error("unknown template", "page", page)
		http.Error(w, "erreur interne", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	u := middleware.FromCtx(r.Context())
	data["CurrentUser"] = u
	data["IsLoggedIn"] = u.Authenticated()
	data["IsAdmin"] = u.IsAdmin
	if _, inline := data["Flash"]; !inline {
		if f := popFlash(w, r); f != nil {
			data["Flash"] = f
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("render", "page", page, "err", err)
	}
}
