package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// CloseDebtResponse defines the data returned when a debt is closed.
// AlreadyClosed is true when the call was an idempotent replay of an earlier
// settlement.
type CloseDebtResponse struct {
	DebtID               string    `json:"debtID"`
	SettlementArtifactID string    `json:"settlementArtifactID"`
	ClosedAt             time.Time `json:"closedAt"`
	AlreadyClosed        bool      `json:"alreadyClosed"`
}

// SettlementAuditResponse defines the data returned for one audit record.
type SettlementAuditResponse struct {
	AuditID              string          `json:"auditID"`
	DebtID               string          `json:"debtID"`
	SettlementArtifactID string          `json:"settlementArtifactID"`
	ActorID              string          `json:"actorID"`
	DebtorID             string          `json:"debtorID"`
	CreditorID           string          `json:"creditorID"`
	OriginalAmount       decimal.Decimal `json:"originalAmount"`
	SettlementAmount     decimal.Decimal `json:"settlementAmount"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ToCloseDebtResponse converts a domain.SettlementResult to its DTO.
func ToCloseDebtResponse(r *domain.SettlementResult) CloseDebtResponse {
	return CloseDebtResponse{
		DebtID:               r.DebtID,
		SettlementArtifactID: r.SettlementArtifactID,
		ClosedAt:             r.ClosedAt,
		AlreadyClosed:        r.AlreadyClosed,
	}
}

// ToSettlementAuditResponses converts audit records to DTOs.
func ToSettlementAuditResponses(audits []domain.SettlementAuditRecord) []SettlementAuditResponse {
	responses := make([]SettlementAuditResponse, len(audits))
	for i, a := range audits {
		responses[i] = SettlementAuditResponse{
			AuditID:              a.AuditID,
			DebtID:               a.DebtID,
			SettlementArtifactID: a.SettlementArtifactID,
			ActorID:              a.ActorID,
			DebtorID:             a.DebtorID,
			CreditorID:           a.CreditorID,
			OriginalAmount:       a.OriginalAmount,
			SettlementAmount:     a.SettlementAmount,
			CreatedAt:            a.CreatedAt,
		}
	}
	return responses
}
