package services

import (
	"context"
	"strings"

	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
	"github.com/mdiaw/bibliotheque/internal/worker"
)

type CatalogService struct {
	books repo.Books
	audit auditTrail
}

func NewCatalogService(books repo.Books, logs repo.AuditLogs, wp *worker.Pool) *CatalogService {
	return &CatalogService{books: books, audit: auditTrail{logs: logs, wp: wp}}
}

// Browse returns the catalog, narrowed by a case-insensitive substring
// match on title, author or genre when term is non-empty. Pure read.
func (s *CatalogService) Browse(ctx context.Context, term string) ([]models.Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.books.List(ctx)
	}
	return s.books.Search(ctx, term)
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, b models.Book) (models.Book, error) {
	if err := b.Validate(); err != nil {
		return models.Book{}, err
	}
	created, err := s.books.Create(ctx, b)
	if err != nil {
		return models.Book{}, err
	}
	s.audit.record("livre", created.ID, "created", map[string]any{"titre": created.Title})
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, b models.Book) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.books.Update(ctx, b); err != nil {
		return err
	}
	s.audit.record("livre", b.ID, "updated", map[string]any{"titre": b.Title})
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record("livre", id, "deleted", nil)
	return nil
}
