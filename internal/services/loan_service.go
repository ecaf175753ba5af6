package services

import (
	"context"
	"errors"
	"time"

	"github.com/mdiaw/bibliotheque/internal/metrics"
	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
	"github.com/mdiaw/bibliotheque/internal/worker"
)

type LoanService struct {
	loans repo.Loans
	audit auditTrail
	now   func() time.Time
}

func NewLoanService(loans repo.Loans, logs repo.AuditLogs, wp *worker.Pool) *LoanService {
	return &LoanService{
		loans: loans,
		audit: auditTrail{logs: logs, wp: wp},
		now:   time.Now,
	}
}

// Borrow creates a loan for the fixed duration. The repository rejects
// it with ErrNotAvailable when no copy is left, in which case nothing
// is written.
func (s *LoanService) Borrow(ctx context.Context, userID, bookID string) (models.Loan, error) {
	l, err := s.loans.Borrow(ctx, userID, bookID, s.now())
	if errors.Is(err, repo.ErrNotAvailable) {
		metrics.LoansRejected.Inc()
		return models.Loan{}, err
	}
	if err != nil {
		return models.Loan{}, err
	}
	metrics.LoansCreated.Inc()
	s.audit.record("emprunt", l.ID, "created", map[string]any{
		"utilisateur_id": userID,
		"livre_id":       bookID,
	})
	return l, nil
}

// Return closes the caller's loan. Already-returned loans come back as
// ErrAlreadyReturned with no quantity change.
func (s *LoanService) Return(ctx context.Context, loanID, userID string) (models.Loan, error) {
	l, err := s.loans.Return(ctx, loanID, userID, s.now())
	if err != nil {
		return models.Loan{}, err
	}
	metrics.LoansReturned.Inc()
	s.audit.record("emprunt", l.ID, "returned", map[string]any{"utilisateur_id": userID})
	return l, nil
}

// MyLoans lists the requesting user's own loans and nothing else.
func (s *LoanService) MyLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	return s.loans.ListByUser(ctx, userID)
}

// LoansOfUser is the admin view over an arbitrary user's loans.
func (s *LoanService) LoansOfUser(ctx context.Context, userID string) ([]models.Loan, error) {
	return s.loans.ListByUser(ctx, userID)
}
