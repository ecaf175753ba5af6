package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mdiaw/bibliotheque/internal/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrNotAvailable      = errors.New("book not available")
	ErrAlreadyReturned   = errors.New("loan already returned")
)

type Users interface {
	Create(ctx context.Context, username, email, address, passwordHash string, isAdmin bool) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}

type Books interface {
	Create(ctx context.Context, b models.Book) (models.Book, error)
	GetByID(ctx context.Context, id string) (models.Book, error)
	// List returns the whole catalog; Search filters it by a
	// case-insensitive substring over title, author and genre.
	List(ctx context.Context) ([]models.Book, error)
	Search(ctx context.Context, term string) ([]models.Book, error)
	Update(ctx context.Context, b models.Book) error
	Delete(ctx context.Context, id string) error
}

type Loans interface {
	// Borrow decrements the book's quantity and creates the loan in a
	// single transaction. ErrNotAvailable when quantity is exhausted.
	Borrow(ctx context.Context, userID, bookID string, at time.Time) (models.Loan, error)
	// Return sets the return date and restores the quantity in a single
	// transaction. A second call on the same loan is a no-op
	// (ErrAlreadyReturned); the quantity is touched only once.
	Return(ctx context.Context, loanID, userID string, at time.Time) (models.Loan, error)
	GetByID(ctx context.Context, id string) (models.Loan, error)
	ListByUser(ctx context.Context, userID string) ([]models.Loan, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
