package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/middleware"
)

type settlementService struct {
	debtRepo     portsrepo.DebtRepositoryFacade
	apartmentSvc portssvc.ApartmentSvcFacade
	maxRetries   int
	retryBackoff time.Duration
}

// NewSettlementService creates a new SettlementService. maxRetries bounds the
// transparent retry loop for transient store conflicts; retryBackoff is the
// initial wait, doubled per attempt.
func NewSettlementService(debtRepo portsrepo.DebtRepositoryFacade, apartmentSvc portssvc.ApartmentSvcFacade, maxRetries int, retryBackoff time.Duration) portssvc.SettlementSvcFacade {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryBackoff <= 0 {
		retryBackoff = 50 * time.Millisecond
	}
	return &settlementService{
		debtRepo:     debtRepo,
		apartmentSvc: apartmentSvc,
		maxRetries:   maxRetries,
		retryBackoff: retryBackoff,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// CloseDebt settles a debt atomically. The artifact and audit ids plus the
// closure timestamp are generated once before the first attempt so every
// retry of the transaction writes identical rows.
func (s *settlementService) CloseDebt(ctx context.Context, apartmentID string, debtID string, actorID string) (*domain.SettlementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, actorID, apartmentID); err != nil {
		logger.Warn("Authorization failed for debt closure", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, err
	}
	if debtID == "" {
		return nil, apperrors.NewAppError(400, "debt id is required", apperrors.ErrValidation)
	}

	params := portsrepo.SettleDebtParams{
		DebtID:               debtID,
		ApartmentID:          apartmentID,
		ActorID:              actorID,
		SettlementArtifactID: uuid.NewString(),
		AuditID:              uuid.NewString(),
		Now:                  time.Now(),
	}

	result, err := s.settleWithRetry(ctx, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyClosed) {
			// Idempotent success: the caller gets the original closure.
			logger.Info("Debt already closed, returning prior settlement",
				slog.String("debt_id", debtID),
				slog.String("settlement_artifact_id", result.SettlementArtifactID),
			)
			return result, nil
		}
		logger.Error("Debt closure failed", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, err
	}

	logger.Info("Debt closed",
		slog.String("debt_id", debtID),
		slog.String("settlement_artifact_id", result.SettlementArtifactID),
		slog.String("closed_by", actorID),
	)
	return result, nil
}

// settleWithRetry runs the settlement transaction, retrying only on
// ErrTransientConflict. Validation failures and closed debts are terminal on
// the first attempt.
func (s *settlementService) settleWithRetry(ctx context.Context, params portsrepo.SettleDebtParams) (*domain.SettlementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	backoff := s.retryBackoff

	var result *domain.SettlementResult
	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying settlement after transient conflict",
				slog.String("debt_id", params.DebtID),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("settlement aborted: %w", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		result, err = s.debtRepo.SettleDebt(ctx, params)
		if err == nil || !errors.Is(err, apperrors.ErrTransientConflict) {
			return result, err
		}
	}
	return nil, fmt.Errorf("settlement of debt %s did not commit after %d attempts: %w", params.DebtID, s.maxRetries+1, err)
}

// ListSettlementAudits retrieves the apartment's settlement history.
func (s *settlementService) ListSettlementAudits(ctx context.Context, apartmentID string, userID string) ([]domain.SettlementAuditRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, userID, apartmentID); err != nil {
		logger.Warn("Authorization failed for settlement audit read", slog.String("error", err.Error()))
		return nil, err
	}

	audits, err := s.debtRepo.ListSettlementAuditsByApartment(ctx, apartmentID)
	if err != nil {
		logger.Error("Failed to list settlement audits", slog.String("error", err.Error()), slog.String("apartment_id", apartmentID))
		return nil, fmt.Errorf("failed to list settlement audits: %w", err)
	}
	return audits, nil
}
