package models

import "github.com/shopspring/decimal"

// ExpenseRecord mirrors a row of the expenses table.
// Participant ids are stored as a TEXT[] column.
type ExpenseRecord struct {
	ExpenseID            string          `json:"expenseID"`
	ApartmentID          string          `json:"apartmentID"`
	Amount               decimal.Decimal `json:"amount"`
	PayerID              string          `json:"payerID"`
	ParticipantIDs       []string        `json:"participantIDs"`
	Description          string          `json:"description"`
	IsSettlementArtifact bool            `json:"isSettlementArtifact"`
	AuditFields
}
