package models

import (
	"errors"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"nom_utilisateur"`
	Email        string    `json:"email"`
	Address      string    `json:"adresse"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return errors.New("nom d'utilisateur trop court")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("email invalide")
	}
	if strings.TrimSpace(u.Address) == "" {
		return errors.New("adresse requise")
	}
	return nil
}

// HomePath is where this user lands after login and where the
// role middleware sends them when they hit the other role's pages.
func (u User) HomePath() string {
	if u.IsAdmin {
		return "/accueil_admin"
	}
	return "/accueil"
}
