package services

import (
	"context"

	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// ListExpenses retrieves a paginated list of expenses in an apartment.
	ListExpenses(ctx context.Context, apartmentID string, userID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense records a new shared expense. This is the sole writer of
	// user-facing expense records.
	CreateExpense(ctx context.Context, apartmentID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.ExpenseRecord, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
