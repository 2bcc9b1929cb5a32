package dto

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// BalanceEntryResponse defines the data returned for one user's balance.
type BalanceEntryResponse struct {
	UserID     string                     `json:"userID"`
	Owes       map[string]decimal.Decimal `json:"owes"`
	Owed       map[string]decimal.Decimal `json:"owed"`
	NetBalance decimal.Decimal            `json:"netBalance"`
}

// ToBalanceEntryResponse converts a domain.BalanceEntry to its DTO.
func ToBalanceEntryResponse(e *domain.BalanceEntry) BalanceEntryResponse {
	return BalanceEntryResponse{
		UserID:     e.UserID,
		Owes:       e.Owes,
		Owed:       e.Owed,
		NetBalance: e.NetBalance,
	}
}

// ToBalanceEntryResponses flattens a balance map into a slice ordered by
// user id so responses are stable across calls.
func ToBalanceEntryResponses(balances map[string]domain.BalanceEntry) []BalanceEntryResponse {
	userIDs := make([]string, 0, len(balances))
	for userID := range balances {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	responses := make([]BalanceEntryResponse, len(userIDs))
	for i, userID := range userIDs {
		entry := balances[userID]
		responses[i] = ToBalanceEntryResponse(&entry)
	}
	return responses
}
