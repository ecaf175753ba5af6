package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

type loansRepo struct{ pool *pgxpool.Pool }

const loanCols = `id, utilisateur_id, livre_id, date_emprunt, duree_emprunt, date_retour`

// Borrow runs the quantity decrement and the loan insert as one
// serializable transaction so the cached count can never drift from
// the outstanding loans.
func (r *loansRepo) Borrow(ctx context.Context, userID, bookID string, at time.Time) (models.Loan, error) {
	var l models.Loan
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx,
			`UPDATE livres SET quantite = quantite - 1 WHERE id=$1 AND quantite > 0`, bookID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			// Either the book is gone or every copy is out.
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM livres WHERE id=$1)`, bookID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return repo.ErrNotFound
			}
			return repo.ErrNotAvailable
		}

		l = models.Loan{
			ID:           uuid.NewString(),
			UserID:       userID,
			BookID:       bookID,
			BorrowedAt:   at,
			DurationDays: models.LoanDurationDays,
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO emprunts(id, utilisateur_id, livre_id, date_emprunt, duree_emprunt)
			 VALUES($1,$2,$3,$4,$5)`,
			l.ID, l.UserID, l.BookID, l.BorrowedAt, l.DurationDays)
		return err
	})
	if err != nil {
		return models.Loan{}, err
	}
	return l, nil
}

// Return is idempotent: the date_retour IS NULL guard makes the second
// call a no-op, so the quantity is restored exactly once.
func (r *loansRepo) Return(ctx context.Context, loanID, userID string, at time.Time) (models.Loan, error) {
	var l models.Loan
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`UPDATE emprunts SET date_retour=$3
			  WHERE id=$1 AND utilisateur_id=$2 AND date_retour IS NULL
			  RETURNING `+loanCols,
			loanID, userID, at,
		).Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowedAt, &l.DurationDays, &l.ReturnedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			var returned bool
			lookupErr := tx.QueryRow(ctx,
				`SELECT date_retour IS NOT NULL FROM emprunts WHERE id=$1 AND utilisateur_id=$2`,
				loanID, userID).Scan(&returned)
			if errors.Is(lookupErr, pgx.ErrNoRows) {
				return repo.ErrNotFound
			}
			if lookupErr != nil {
				return lookupErr
			}
			return repo.ErrAlreadyReturned
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE livres SET quantite = quantite + 1 WHERE id=$1`, l.BookID)
		return err
	})
	if err != nil {
		return models.Loan{}, err
	}
	return l, nil
}

func (r *loansRepo) GetByID(ctx context.Context, id string) (models.Loan, error) {
	var l models.Loan
	err := r.pool.QueryRow(ctx,
		`SELECT `+loanCols+` FROM emprunts WHERE id=$1`, id,
	).Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowedAt, &l.DurationDays, &l.ReturnedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Loan{}, repo.ErrNotFound
	}
	return l, err
}

func (r *loansRepo) ListByUser(ctx context.Context, userID string) ([]models.Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.utilisateur_id, e.livre_id, e.date_emprunt, e.duree_emprunt, e.date_retour, l.titre
		   FROM emprunts e
		   JOIN livres l ON l.id = e.livre_id
		  WHERE e.utilisateur_id=$1
		  ORDER BY e.date_emprunt DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Loan
	for rows.Next() {
		var l models.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.BorrowedAt, &l.DurationDays, &l.ReturnedAt, &l.BookTitle); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *loansRepo) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
