package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/dto"
	"github.com/flatledger/flatledger/internal/middleware"
)

// debtService provides explicit debt entry and reads.
type debtService struct {
	debtRepo     portsrepo.DebtRepositoryFacade
	apartmentSvc portssvc.ApartmentSvcFacade
}

// NewDebtService creates a new DebtService.
func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, apartmentSvc portssvc.ApartmentSvcFacade) portssvc.DebtSvcFacade {
	return &debtService{
		debtRepo:     debtRepo,
		apartmentSvc: apartmentSvc,
	}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// CreateDebt records an explicit obligation between two apartment members.
func (s *debtService) CreateDebt(ctx context.Context, apartmentID string, req dto.CreateDebtRequest, creatorUserID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, creatorUserID, apartmentID); err != nil {
		logger.Warn("Authorization failed for CreateDebt", slog.String("error", err.Error()))
		return nil, err
	}

	if req.FromUserID == req.ToUserID {
		return nil, fmt.Errorf("%w: debtor and creditor must differ", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: debt amount must be positive", apperrors.ErrValidation)
	}

	// Both parties must belong to the apartment.
	for _, partyID := range []string{req.FromUserID, req.ToUserID} {
		if err := s.apartmentSvc.AuthorizeMember(ctx, partyID, apartmentID); err != nil {
			if errors.Is(err, apperrors.ErrForbidden) {
				return nil, fmt.Errorf("%w: user %s is not a member of the apartment", apperrors.ErrValidation, partyID)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	debt := domain.Debt{
		DebtID:      uuid.NewString(),
		ApartmentID: apartmentID,
		FromUserID:  req.FromUserID,
		ToUserID:    req.ToUserID,
		Amount:      req.Amount.Round(2),
		Status:      domain.DebtOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		logger.Error("Failed to save debt", slog.String("error", err.Error()), slog.String("apartment_id", apartmentID))
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	logger.Info("Debt created successfully", slog.String("debt_id", debt.DebtID), slog.String("apartment_id", apartmentID))
	return &debt, nil
}

// GetDebtByID retrieves a specific debt.
func (s *debtService) GetDebtByID(ctx context.Context, apartmentID string, debtID string, requestingUserID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, requestingUserID, apartmentID); err != nil {
		logger.Warn("Authorization failed for GetDebtByID", slog.String("error", err.Error()))
		return nil, err
	}

	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find debt by ID", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		}
		return nil, err
	}

	// Ensure the found debt actually belongs to the requested apartment.
	if debt.ApartmentID != apartmentID {
		logger.Warn("Debt found but belongs to different apartment",
			slog.String("debt_id", debtID), slog.String("debt_apartment", debt.ApartmentID), slog.String("requested_apartment", apartmentID))
		return nil, apperrors.ErrNotFound // Obscure existence
	}

	return debt, nil
}

// ListDebts retrieves the debts of an apartment, optionally filtered by status.
func (s *debtService) ListDebts(ctx context.Context, apartmentID string, userID string, params dto.ListDebtsParams) ([]domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, userID, apartmentID); err != nil {
		logger.Warn("Authorization failed for ListDebts", slog.String("error", err.Error()))
		return nil, err
	}

	var status *domain.DebtStatus
	if params.Status != nil {
		parsed := domain.DebtStatus(*params.Status)
		if parsed != domain.DebtOpen && parsed != domain.DebtClosed {
			return nil, fmt.Errorf("%w: unknown debt status %q", apperrors.ErrValidation, *params.Status)
		}
		status = &parsed
	}

	debts, err := s.debtRepo.ListDebtsByApartment(ctx, apartmentID, status)
	if err != nil {
		logger.Error("Failed to list debts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve debts: %w", err)
	}

	logger.Info("Debts listed successfully", slog.Int("count", len(debts)))
	return debts, nil
}
