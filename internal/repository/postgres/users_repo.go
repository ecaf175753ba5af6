package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdiaw/bibliotheque/internal/models"
	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, nom_utilisateur, email, adresse, mot_de_passe, is_superuser, created_at`

func (r *usersRepo) Create(ctx context.Context, username, email, address, hash string, isAdmin bool) (models.User, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO utilisateurs(id, nom_utilisateur, email, adresse, mot_de_passe, is_superuser)
		 VALUES($1,$2,$3,$4,$5,$6)`,
		id, username, email, address, hash, isAdmin,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, repo.ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.get(ctx, `SELECT `+userCols+` FROM utilisateurs WHERE id=$1`, id)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.get(ctx, `SELECT `+userCols+` FROM utilisateurs WHERE nom_utilisateur=$1`, username)
}

func (r *usersRepo) get(ctx context.Context, q, arg string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx, q, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.Address, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repo.ErrNotFound
	}
	return u, err
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM utilisateurs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Address, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM utilisateurs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
