package domain

import "github.com/shopspring/decimal"

// BalanceEntry is the derived who-owes-whom position of a single user.
// It is a projection over the expense feed, never a source of truth.
//
// NetBalance = sum(Owed) - sum(Owes); positive means the user is owed money.
type BalanceEntry struct {
	UserID     string                     `json:"userID"`
	Owes       map[string]decimal.Decimal `json:"owes"` // counterpartyID -> amount
	Owed       map[string]decimal.Decimal `json:"owed"` // counterpartyID -> amount
	NetBalance decimal.Decimal            `json:"netBalance"`
}

// NewBalanceEntry returns an empty entry for the given user.
func NewBalanceEntry(userID string) BalanceEntry {
	return BalanceEntry{
		UserID:     userID,
		Owes:       make(map[string]decimal.Decimal),
		Owed:       make(map[string]decimal.Decimal),
		NetBalance: decimal.Zero,
	}
}
