package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/core/ledger"
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/middleware"
)

// balanceService derives who-owes-whom from the expense feed on demand.
// Every call re-reads the feed and re-runs the fold; there is no trusted
// long-lived cache.
type balanceService struct {
	expenseRepo  portsrepo.ExpenseReader
	apartmentSvc portssvc.ApartmentSvcFacade
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(expenseRepo portsrepo.ExpenseReader, apartmentSvc portssvc.ApartmentSvcFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		expenseRepo:  expenseRepo,
		apartmentSvc: apartmentSvc,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalances returns per-user balances with each pair netted to a single
// directional debt.
func (s *balanceService) GetBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error) {
	expenses, err := s.loadFeed(ctx, apartmentID, userID)
	if err != nil {
		return nil, err
	}
	balances, skipped := ledger.ComputeBalances(expenses)
	s.logSkipped(ctx, apartmentID, skipped)
	return balances, nil
}

// GetRawBalances returns itemized per-payer balances without netting.
func (s *balanceService) GetRawBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error) {
	expenses, err := s.loadFeed(ctx, apartmentID, userID)
	if err != nil {
		return nil, err
	}
	balances, skipped := ledger.ComputeRawBalances(expenses)
	s.logSkipped(ctx, apartmentID, skipped)
	return balances, nil
}

// GetSimplifiedBalances returns the minimal net transfer set for the apartment.
func (s *balanceService) GetSimplifiedBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error) {
	balances, err := s.GetBalances(ctx, apartmentID, userID)
	if err != nil {
		return nil, err
	}
	return ledger.Simplify(balances), nil
}

// loadFeed authorizes the caller and reads the complete expense feed,
// settlement artifacts included.
func (s *balanceService) loadFeed(ctx context.Context, apartmentID string, userID string) ([]domain.ExpenseRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, userID, apartmentID); err != nil {
		logger.Warn("Authorization failed for balance read", slog.String("error", err.Error()))
		return nil, err
	}

	expenses, err := s.expenseRepo.FindAllExpensesForBalances(ctx, apartmentID)
	if err != nil {
		logger.Error("Failed to load expense feed for balances", slog.String("error", err.Error()), slog.String("apartment_id", apartmentID))
		return nil, fmt.Errorf("failed to load expense feed: %w", err)
	}
	return expenses, nil
}

// logSkipped surfaces fold skips in the logs. A corrupt record never blocks
// balance visibility, but it must be observable for debugging.
func (s *balanceService) logSkipped(ctx context.Context, apartmentID string, skipped []ledger.SkippedExpense) {
	if len(skipped) == 0 {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, skip := range skipped {
		logger.Warn("Skipped malformed expense record during balance fold",
			slog.String("apartment_id", apartmentID),
			slog.String("expense_id", skip.ExpenseID),
			slog.String("reason", skip.Reason),
		)
	}
}
