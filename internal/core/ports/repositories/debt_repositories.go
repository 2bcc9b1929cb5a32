package repositories

import (
	"context"
	"time"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// SettleDebtParams carries everything the settlement transaction needs.
// The service pre-generates the artifact and audit ids so a retried
// transaction writes the same identifiers it would have written the first
// time.
type SettleDebtParams struct {
	DebtID      string
	ApartmentID string
	ActorID     string
	// SettlementArtifactID is the id the compensating expense record will be
	// created under.
	SettlementArtifactID string
	AuditID              string
	Now                  time.Time
}

// DebtReader defines read operations for debt data
type DebtReader interface {
	// FindDebtByID retrieves a specific debt by its unique identifier.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebtsByApartment retrieves the debts of an apartment, optionally
	// filtered by status, newest first.
	ListDebtsByApartment(ctx context.Context, apartmentID string, status *domain.DebtStatus) ([]domain.Debt, error)
}

// DebtWriter defines write operations for debt data
type DebtWriter interface {
	// SaveDebt persists a new debt record.
	SaveDebt(ctx context.Context, debt domain.Debt) error
}

// DebtSettler executes the atomic debt closure.
type DebtSettler interface {
	// SettleDebt closes the debt in one store transaction: the debt row is
	// read under lock and validated, then marked closed, the compensating
	// settlement-artifact expense is inserted, the balance projection is
	// adjusted for both parties, and the audit record is appended. All
	// writes commit together or not at all.
	//
	// A debt that is already closed returns the prior settlement result
	// together with apperrors.ErrAlreadyClosed. Concurrent-write contention
	// returns apperrors.ErrTransientConflict and may be retried.
	SettleDebt(ctx context.Context, params SettleDebtParams) (*domain.SettlementResult, error)
}

// SettlementAuditReader defines read operations for settlement audit data
type SettlementAuditReader interface {
	// ListSettlementAuditsByApartment retrieves the audit trail of an
	// apartment, newest first.
	ListSettlementAuditsByApartment(ctx context.Context, apartmentID string) ([]domain.SettlementAuditRecord, error)
}

// DebtRepositoryFacade combines all debt-related repository interfaces
// This is a facade for clients that need access to all operations
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
	DebtSettler
	SettlementAuditReader
}
