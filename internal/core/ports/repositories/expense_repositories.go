package repositories

import (
	"context"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// ListExpensesByApartment retrieves a paginated list of expenses for an
	// apartment using token-based pagination, newest first. Settlement
	// artifacts are excluded unless includeSettlementArtifacts is set.
	ListExpensesByApartment(ctx context.Context, apartmentID string, includeSettlementArtifacts bool, limit int, nextToken *string) ([]domain.ExpenseRecord, *string, error)

	// FindAllExpensesForBalances retrieves the complete expense feed of an
	// apartment, settlement artifacts included. This is the input of the
	// balance fold and is never paginated.
	FindAllExpensesForBalances(ctx context.Context, apartmentID string) ([]domain.ExpenseRecord, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense record.
	SaveExpense(ctx context.Context, expense domain.ExpenseRecord) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
