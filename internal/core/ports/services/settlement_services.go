package services

import (
	"context"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// SettlementSvcFacade closes debts and reads the settlement audit trail.
type SettlementSvcFacade interface {
	// CloseDebt settles a debt as one atomic operation. Closing an
	// already-closed debt succeeds idempotently and returns the prior
	// settlement artifact id. Transient store conflicts are retried
	// internally with exponential backoff before being surfaced.
	CloseDebt(ctx context.Context, apartmentID string, debtID string, actorID string) (*domain.SettlementResult, error)

	// ListSettlementAudits retrieves the append-only settlement history of
	// an apartment.
	ListSettlementAudits(ctx context.Context, apartmentID string, userID string) ([]domain.SettlementAuditRecord, error)
}
