package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

type booksRepo struct{ pool *pgxpool.Pool }

const bookCols = `id, titre, auteur, genre, annee_publication, description, quantite, image_url, created_at`

func (r *booksRepo) Create(ctx context.Context, b models.Book) (models.Book, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO livres(id, titre, auteur, genre, annee_publication, description, quantite, image_url)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+bookCols,
		b.ID, b.Title, b.Author, b.Genre, b.Year, b.Description, b.Quantity, b.ImageURL,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year, &b.Description, &b.Quantity, &b.ImageURL, &b.CreatedAt)
	return b, err
}

func (r *booksRepo) GetByID(ctx context.Context, id string) (models.Book, error) {
	var b models.Book
	err := r.pool.QueryRow(ctx,
		`SELECT `+bookCols+` FROM livres WHERE id=$1`, id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year, &b.Description, &b.Quantity, &b.ImageURL, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Book{}, repo.ErrNotFound
	}
	return b, err
}

func (r *booksRepo) List(ctx context.Context) ([]models.Book, error) {
	return r.query(ctx, `SELECT `+bookCols+` FROM livres ORDER BY titre`)
}

func (r *booksRepo) Search(ctx context.Context, term string) ([]models.Book, error) {
	return r.query(ctx,
		`SELECT `+bookCols+` FROM livres
		  WHERE titre ILIKE $1 OR auteur ILIKE $1 OR genre ILIKE $1
		  ORDER BY titre`,
		"%"+term+"%")
}

func (r *booksRepo) query(ctx context.Context, q string, args ...any) ([]models.Book, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year, &b.Description, &b.Quantity, &b.ImageURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *booksRepo) Update(ctx context.Context, b models.Book) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE livres
		    SET titre=$2, auteur=$3, genre=$4, annee_publication=$5,
		        description=$6, quantite=$7, image_url=$8
		  WHERE id=$1`,
		b.ID, b.Title, b.Author, b.Genre, b.Year, b.Description, b.Quantity, b.ImageURL,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *booksRepo) Delete(ctx context.Context, id string) error {
	// TODO: refuse deletion while outstanding loans reference the book;
	// for now the emprunts FK cascades and loan history disappears.
	ct, err := r.pool.Exec(ctx, `DELETE FROM livres WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
