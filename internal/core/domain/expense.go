package domain

import "github.com/shopspring/decimal"

// ExpenseRecord is an immutable shared-expense fact. The payer fronted the
// full amount; every participant owes an equal share of it.
//
// Records flagged IsSettlementArtifact exist only to compensate a closed debt.
// They are excluded from user-facing expense listings but must be included in
// balance computation.
type ExpenseRecord struct {
	ExpenseID            string          `json:"expenseID"`   // Primary Key (UUID)
	ApartmentID          string          `json:"apartmentID"` // FK -> Apartment
	Amount               decimal.Decimal `json:"amount"`      // Positive value
	PayerID              string          `json:"payerID"`     // UserID of who paid
	ParticipantIDs       []string        `json:"participantIDs"`
	Description          string          `json:"description"` // Nullable user description
	IsSettlementArtifact bool            `json:"isSettlementArtifact"`
	AuditFields
}
