package models

import (
	"errors"
	"strings"
	"time"
)

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"titre"`
	Author      string    `json:"auteur"`
	Genre       string    `json:"genre"`
	Year        int       `json:"annee_publication"`
	Description *string   `json:"description,omitempty"`
	Quantity    int       `json:"quantite"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("titre requis")
	}
	if strings.TrimSpace(b.Author) == "" {
		return errors.New("auteur requis")
	}
	if strings.TrimSpace(b.Genre) == "" {
		return errors.New("genre requis")
	}
	if b.Year <= 0 {
		return errors.New("annee de publication invalide")
	}
	if b.Quantity < 0 {
		return errors.New("quantite invalide")
	}
	return nil
}

func (b Book) Available() bool { return b.Quantity > 0 }
