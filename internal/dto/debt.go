package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// CreateDebtRequest defines the payload for recording "X owes Y $N" explicitly.
type CreateDebtRequest struct {
	FromUserID string          `json:"fromUserID" binding:"required"`
	ToUserID   string          `json:"toUserID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// DebtResponse defines the data returned for a debt.
type DebtResponse struct {
	DebtID               string          `json:"debtID"`
	ApartmentID          string          `json:"apartmentID"`
	FromUserID           string          `json:"fromUserID"`
	ToUserID             string          `json:"toUserID"`
	Amount               decimal.Decimal `json:"amount"`
	Status               string          `json:"status"`
	ClosedAt             *time.Time      `json:"closedAt,omitempty"`
	ClosedBy             *string         `json:"closedBy,omitempty"`
	SettlementArtifactID *string         `json:"settlementArtifactID,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	CreatedBy            string          `json:"createdBy"`
}

// ListDebtsParams holds query parameters for listing debts.
type ListDebtsParams struct {
	// Status filters by debt status (OPEN or CLOSED) when set.
	Status *string `form:"status" binding:"omitempty,oneof=OPEN CLOSED"`
}

// ToDebtResponse converts a domain.Debt to DebtResponse DTO.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:               d.DebtID,
		ApartmentID:          d.ApartmentID,
		FromUserID:           d.FromUserID,
		ToUserID:             d.ToUserID,
		Amount:               d.Amount,
		Status:               string(d.Status),
		ClosedAt:             d.ClosedAt,
		ClosedBy:             d.ClosedBy,
		SettlementArtifactID: d.SettlementArtifactID,
		CreatedAt:            d.CreatedAt,
		CreatedBy:            d.CreatedBy,
	}
}

// ToDebtResponses converts a slice of domain.Debt to []DebtResponse.
func ToDebtResponses(debts []domain.Debt) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i := range debts {
		responses[i] = ToDebtResponse(&debts[i])
	}
	return responses
}
