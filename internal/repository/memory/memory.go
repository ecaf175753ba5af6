// Package memory holds in-memory repository implementations with the
// same semantics as the postgres ones. They back the service and
// handler tests; nothing in cmd/ wires them.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

type Store struct {
	mu    sync.Mutex
	users map[string]models.User
	books map[string]models.Book
	loans map[string]models.Loan
	audit []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]models.User),
		books: make(map[string]models.Book),
		loans: make(map[string]models.Loan),
	}
}

func (s *Store) Users() repo.Users         { return (*usersRepo)(s) }
func (s *Store) Books() repo.Books         { return (*booksRepo)(s) }
func (s *Store) Loans() repo.Loans         { return (*loansRepo)(s) }
func (s *Store) AuditLogs() repo.AuditLogs { return (*auditRepo)(s) }

// ---- users ----

type usersRepo Store

func (r *usersRepo) Create(_ context.Context, username, email, address, hash string, isAdmin bool) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return models.User{}, repo.ErrDuplicateUsername
		}
	}
	u := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Address:      address,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *usersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (r *usersRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *usersRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// ---- books ----

type booksRepo Store

func (r *booksRepo) Create(_ context.Context, b models.Book) (models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now()
	r.books[b.ID] = b
	return b, nil
}

func (r *booksRepo) GetByID(_ context.Context, id string) (models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return models.Book{}, repo.ErrNotFound
	}
	return b, nil
}

func (r *booksRepo) List(_ context.Context) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *booksRepo) Search(_ context.Context, term string) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	needle := strings.ToLower(term)
	var out []models.Book
	for _, b := range r.sorted() {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) ||
			strings.Contains(strings.ToLower(b.Genre), needle) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *booksRepo) sorted() []models.Book {
	out := make([]models.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (r *booksRepo) Update(_ context.Context, b models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.books[b.ID]
	if !ok {
		return repo.ErrNotFound
	}
	b.CreatedAt = old.CreatedAt
	r.books[b.ID] = b
	return nil
}

func (r *booksRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

// ---- loans ----

type loansRepo Store

func (r *loansRepo) Borrow(_ context.Context, userID, bookID string, at time.Time) (models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[bookID]
	if !ok {
		return models.Loan{}, repo.ErrNotFound
	}
	if b.Quantity <= 0 {
		return models.Loan{}, repo.ErrNotAvailable
	}
	b.Quantity--
	r.books[bookID] = b

	l := models.Loan{
		ID:           uuid.NewString(),
		UserID:       userID,
		BookID:       bookID,
		BorrowedAt:   at,
		DurationDays: models.LoanDurationDays,
		BookTitle:    b.Title,
	}
	r.loans[l.ID] = l
	return l, nil
}

func (r *loansRepo) Return(_ context.Context, loanID, userID string, at time.Time) (models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[loanID]
	if !ok || l.UserID != userID {
		return models.Loan{}, repo.ErrNotFound
	}
	if l.ReturnedAt != nil {
		return models.Loan{}, repo.ErrAlreadyReturned
	}
	ts := at
	l.ReturnedAt = &ts
	r.loans[loanID] = l

	if b, ok := r.books[l.BookID]; ok {
		b.Quantity++
		r.books[l.BookID] = b
	}
	return l, nil
}

func (r *loansRepo) GetByID(_ context.Context, id string) (models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok {
		return models.Loan{}, repo.ErrNotFound
	}
	return l, nil
}

func (r *loansRepo) ListByUser(_ context.Context, userID string) ([]models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Loan
	for _, l := range r.loans {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowedAt.After(out[j].BorrowedAt) })
	return out, nil
}

// ---- audit ----

type auditRepo Store

func (r *auditRepo) Create(_ context.Context, l models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = time.Now()
	r.audit = append(r.audit, l)
	return nil
}
