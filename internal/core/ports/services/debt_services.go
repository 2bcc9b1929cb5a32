package services

import (
	"context"

	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/dto"
)

// DebtReaderSvc defines read operations for debt data
type DebtReaderSvc interface {
	// GetDebtByID retrieves a specific debt by its ID.
	GetDebtByID(ctx context.Context, apartmentID string, debtID string, requestingUserID string) (*domain.Debt, error)

	// ListDebts retrieves the debts of an apartment.
	ListDebts(ctx context.Context, apartmentID string, userID string, params dto.ListDebtsParams) ([]domain.Debt, error)
}

// DebtWriterSvc defines write operations for debt data
type DebtWriterSvc interface {
	// CreateDebt records an explicit obligation ("X owes Y $N").
	CreateDebt(ctx context.Context, apartmentID string, req dto.CreateDebtRequest, creatorUserID string) (*domain.Debt, error)
}

// DebtSvcFacade combines all debt-related service interfaces
type DebtSvcFacade interface {
	DebtReaderSvc
	DebtWriterSvc
}
