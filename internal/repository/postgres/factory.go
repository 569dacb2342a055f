package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	repo "github.com/pokerhub/pokerhub-backend/internal/repository"
)

type Repositories struct {
	Users      repo.Users
	Currencies repo.Currencies
	Ledger     repo.Ledger
	AuditLogs  repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:      &usersRepo{pool},
		Currencies: &currenciesRepo{pool},
		Ledger:     &ledgerRepo{pool},
		AuditLogs:  &auditLogsRepo{pool},
	}
}
