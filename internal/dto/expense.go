package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// CreateExpenseRequest defines the payload for recording a shared expense.
type CreateExpenseRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required,gt=0"`
	PayerID        string          `json:"payerID" binding:"required"`
	ParticipantIDs []string        `json:"participantIDs" binding:"required,min=1,dive,required"`
	Description    string          `json:"description"`
}

// ExpenseResponse defines the data returned for an expense record.
type ExpenseResponse struct {
	ExpenseID            string          `json:"expenseID"`
	ApartmentID          string          `json:"apartmentID"`
	Amount               decimal.Decimal `json:"amount"`
	PayerID              string          `json:"payerID"`
	ParticipantIDs       []string        `json:"participantIDs"`
	Description          string          `json:"description,omitempty"`
	IsSettlementArtifact bool            `json:"isSettlementArtifact"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
}

// ListExpensesParams holds query parameters for listing expenses.
type ListExpensesParams struct {
	Limit                      int     `form:"limit"`
	NextToken                  *string `form:"nextToken"`
	IncludeSettlementArtifacts bool    `form:"includeSettlementArtifacts"`
}

// ListExpensesResponse is the paginated expense listing.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain.ExpenseRecord to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:            e.ExpenseID,
		ApartmentID:          e.ApartmentID,
		Amount:               e.Amount,
		PayerID:              e.PayerID,
		ParticipantIDs:       e.ParticipantIDs,
		Description:          e.Description,
		IsSettlementArtifact: e.IsSettlementArtifact,
		CreatedAt:            e.CreatedAt,
		CreatedBy:            e.CreatedBy,
	}
}

// ToExpenseResponses converts a slice of domain.ExpenseRecord to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.ExpenseRecord) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
