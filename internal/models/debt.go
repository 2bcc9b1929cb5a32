package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus indicates the state of a debt row.
type DebtStatus string

const (
	DebtOpen   DebtStatus = "OPEN"
	DebtClosed DebtStatus = "CLOSED"
)

// Debt mirrors a row of the debts table.
type Debt struct {
	DebtID               string          `json:"debtID"`
	ApartmentID          string          `json:"apartmentID"`
	FromUserID           string          `json:"fromUserID"`
	ToUserID             string          `json:"toUserID"`
	Amount               decimal.Decimal `json:"amount"`
	Status               DebtStatus      `json:"status"`
	ClosedAt             *time.Time      `json:"closedAt,omitempty"`
	ClosedBy             *string         `json:"closedBy,omitempty"`
	SettlementArtifactID *string         `json:"settlementArtifactID,omitempty"`
	AuditFields
}
