package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementAuditRecord mirrors a row of the settlement_audits table.
// Rows are append-only; there is no update or delete path.
type SettlementAuditRecord struct {
	AuditID              string          `json:"auditID"`
	ApartmentID          string          `json:"apartmentID"`
	DebtID               string          `json:"debtID"`
	SettlementArtifactID string          `json:"settlementArtifactID"`
	ActorID              string          `json:"actorID"`
	DebtorID             string          `json:"debtorID"`
	CreditorID           string          `json:"creditorID"`
	OriginalAmount       decimal.Decimal `json:"originalAmount"`
	SettlementAmount     decimal.Decimal `json:"settlementAmount"`
	CreatedAt            time.Time       `json:"createdAt"`
}
