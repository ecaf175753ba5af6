package models

import "time"

// LoanDurationDays is the fixed borrowing period for every loan.
const LoanDurationDays = 15

type Loan struct {
	ID           string     `json:"id"`
	UserID       string     `json:"utilisateur_id"`
	BookID       string     `json:"livre_id"`
	BorrowedAt   time.Time  `json:"date_emprunt"`
	DurationDays int        `json:"duree_emprunt"`
	ReturnedAt   *time.Time `json:"date_retour,omitempty"`

	// BookTitle is joined in for list views, not a column of emprunts.
	BookTitle string `json:"-"`
}

func (l Loan) Returned() bool { return l.ReturnedAt != nil }

func (l Loan) DueDate() time.Time {
	return l.BorrowedAt.AddDate(0, 0, l.DurationDays)
}
