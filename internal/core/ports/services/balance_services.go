package services

import (
	"context"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// BalanceSvcFacade exposes the derived who-owes-whom state of an apartment.
// Balances are recomputed from the expense feed on every call; there is no
// long-lived cache to invalidate.
type BalanceSvcFacade interface {
	// GetBalances returns per-user balances with each pair netted to a
	// single directional debt, keyed by user id.
	GetBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error)

	// GetRawBalances returns itemized per-payer balances without netting.
	GetRawBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error)

	// GetSimplifiedBalances returns the minimal net transfer set.
	GetSimplifiedBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error)
}
