package pgsql

import (
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	expenseRepo := newPgxExpenseRepository(dbPool)
	debtRepo := newPgxDebtRepository(dbPool)
	apartmentRepo := newPgxApartmentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ExpenseRepo:   expenseRepo,
		DebtRepo:      debtRepo,
		ApartmentRepo: apartmentRepo,
	}
}
