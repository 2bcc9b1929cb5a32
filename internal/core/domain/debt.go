package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus indicates the state of a debt. Closing is terminal.
type DebtStatus string

const (
	DebtOpen   DebtStatus = "OPEN"
	DebtClosed DebtStatus = "CLOSED"
)

// Debt represents an outstanding obligation between two apartment members.
// It transitions OPEN -> CLOSED exactly once; there is no reopening.
type Debt struct {
	DebtID      string          `json:"debtID"`      // Primary Key (UUID)
	ApartmentID string          `json:"apartmentID"` // FK -> Apartment
	FromUserID  string          `json:"fromUserID"`  // Debtor
	ToUserID    string          `json:"toUserID"`    // Creditor
	Amount      decimal.Decimal `json:"amount"`      // Positive value
	Status      DebtStatus      `json:"status"`
	// Set only when Status is CLOSED.
	ClosedAt             *time.Time `json:"closedAt,omitempty"`
	ClosedBy             *string    `json:"closedBy,omitempty"`
	SettlementArtifactID *string    `json:"settlementArtifactID,omitempty"`
	AuditFields
}
