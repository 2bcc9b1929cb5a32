package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewSettlementArtifact builds the compensating expense record that closes a
// debt. The debtor is recorded as payer of twice the debt amount split across
// both parties; under the balance fold that credits the debtor with exactly
// the creditor's share, cancelling the original obligation.
func NewSettlementArtifact(debt Debt, artifactID string, actorID string, closedAt time.Time) ExpenseRecord {
	return ExpenseRecord{
		ExpenseID:            artifactID,
		ApartmentID:          debt.ApartmentID,
		Amount:               debt.Amount.Mul(decimal.NewFromInt(2)),
		PayerID:              debt.FromUserID,
		ParticipantIDs:       []string{debt.FromUserID, debt.ToUserID},
		Description:          "Settlement of debt " + debt.DebtID,
		IsSettlementArtifact: true,
		AuditFields: AuditFields{
			CreatedAt:     closedAt,
			CreatedBy:     actorID,
			LastUpdatedAt: closedAt,
			LastUpdatedBy: actorID,
		},
	}
}

// SettlementAuditRecord is an append-only trace of a debt closure.
// It is never mutated or deleted.
type SettlementAuditRecord struct {
	AuditID              string          `json:"auditID"` // Primary Key (UUID)
	ApartmentID          string          `json:"apartmentID"`
	DebtID               string          `json:"debtID"`
	SettlementArtifactID string          `json:"settlementArtifactID"`
	ActorID              string          `json:"actorID"` // Who requested the close
	DebtorID             string          `json:"debtorID"`
	CreditorID           string          `json:"creditorID"`
	OriginalAmount       decimal.Decimal `json:"originalAmount"`   // The debt amount
	SettlementAmount     decimal.Decimal `json:"settlementAmount"` // Artifact amount (2x)
	CreatedAt            time.Time       `json:"createdAt"`
}

// SettlementResult is returned to the caller of a debt closure.
// AlreadyClosed marks an idempotent replay: the ids refer to the settlement
// performed by an earlier call.
type SettlementResult struct {
	DebtID               string    `json:"debtID"`
	SettlementArtifactID string    `json:"settlementArtifactID"`
	ClosedAt             time.Time `json:"closedAt"`
	AlreadyClosed        bool      `json:"alreadyClosed"`
}
