package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/mdiaw/bibliotheque/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Books     repo.Books
	Loans     repo.Loans
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Books:     &booksRepo{pool},
		Loans:     &loansRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
