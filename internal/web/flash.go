package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "flash"

// Flash is a one-request message surfaced on the next rendered page,
// like the category/message pairs of the original templates.
type Flash struct {
	Category string `json:"category"` // "success" | "error"
	Message  string `json:"message"`
}

// withFlash carries a flash inline into an immediate re-render, where
// the cookie round-trip of setFlash would only surface one page late.
func withFlash(category, message string) map[string]any {
	return map[string]any{"Flash": &Flash{Category: category, Message: message}}
}

func setFlash(w http.ResponseWriter, category, message string) {
	b, err := json.Marshal(Flash{Category: category, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}
