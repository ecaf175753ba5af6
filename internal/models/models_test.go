package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserValidate(t *testing.T) {
	valid := User{Username: "alice", Email: "alice@example.com", Address: "12 rue des Lilas"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		u    User
	}{
		{"short username", User{Username: "al", Email: "a@b.fr", Address: "x"}},
		{"bad email", User{Username: "alice", Email: "nope", Address: "x"}},
		{"blank address", User{Username: "alice", Email: "a@b.fr", Address: "   "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.u.Validate())
		})
	}
}

func TestUserHomePath(t *testing.T) {
	assert.Equal(t, "/accueil", (&User{}).HomePath())
	assert.Equal(t, "/accueil_admin", (&User{IsAdmin: true}).HomePath())
}

func TestBookValidate(t *testing.T) {
	valid := Book{Title: "Dune", Author: "Frank Herbert", Genre: "SF", Year: 1965, Quantity: 0}
	assert.NoError(t, valid.Validate(), "zero quantity is a valid state")

	tests := []struct {
		name string
		b    Book
	}{
		{"no title", Book{Author: "A", Genre: "G", Year: 2000}},
		{"no author", Book{Title: "T", Genre: "G", Year: 2000}},
		{"no genre", Book{Title: "T", Author: "A", Year: 2000}},
		{"bad year", Book{Title: "T", Author: "A", Genre: "G", Year: 0}},
		{"negative quantity", Book{Title: "T", Author: "A", Genre: "G", Year: 2000, Quantity: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.b.Validate())
		})
	}
}

func TestLoanDueDate(t *testing.T) {
	borrowed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	l := Loan{BorrowedAt: borrowed, DurationDays: LoanDurationDays}

	assert.Equal(t, time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), l.DueDate())
	assert.False(t, l.Returned())

	now := time.Now()
	l.ReturnedAt = &now
	assert.True(t, l.Returned())
}
