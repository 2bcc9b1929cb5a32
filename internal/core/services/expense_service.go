package services

import (
	"context"
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

const defaultExpensePageLimit = 20

// expenseService provides the expense entry flow and the paginated listing.
type expenseService struct {
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	apartmentSvc portssvc.ApartmentSvcFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, apartmentSvc portssvc.ApartmentSvcFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:  expenseRepo,
		apartmentSvc: apartmentSvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records a new shared expense after validation.
func (s *expenseService) CreateExpense(ctx context.Context, apartmentID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.ExpenseRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, creatorUserID, apartmentID); err != nil {
		logger.Warn("Authorization failed for CreateExpense",
			slog.String("user_id", creatorUserID), slog.String("apartment_id", apartmentID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if req.PayerID == "" {
		return nil, fmt.Errorf("%w: payer id is required", apperrors.ErrValidation)
	}

	participantIDs := uniqueStrings(req.ParticipantIDs)
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", apperrors.ErrValidation)
	}
	for _, id := range participantIDs {
		if id == "" {
			return nil, fmt.Errorf("%w: participant ids must not be empty", apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	expense := domain.ExpenseRecord{
		ExpenseID:            uuid.NewString(),
		ApartmentID:          apartmentID,
		Amount:               req.Amount.Round(2),
		PayerID:              req.PayerID,
		ParticipantIDs:       participantIDs,
		Description:          req.Description,
		IsSettlementArtifact: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()), slog.String("apartment_id", apartmentID))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	logger.Info("Expense created successfully", slog.String("expense_id", expense.ExpenseID), slog.String("apartment_id", apartmentID))
	return &expense, nil
}

// ListExpenses retrieves a paginated page of the apartment's expenses.
// Settlement artifacts are excluded from user-facing listings unless
// explicitly requested; they always remain part of the balance feed.
func (s *expenseService) ListExpenses(ctx context.Context, apartmentID string, userID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.apartmentSvc.AuthorizeMember(ctx, userID, apartmentID); err != nil {
		logger.Warn("Authorization failed for ListExpenses", slog.String("error", err.Error()))
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultExpensePageLimit
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByApartment(ctx, apartmentID, params.IncludeSettlementArtifacts, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list expenses from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	resp := &dto.ListExpensesResponse{
		Expenses:  dto.ToExpenseResponses(expenses),
		NextToken: nextToken,
	}

	logger.Info("Expenses listed successfully", slog.Int("count", len(expenses)))
	return resp, nil
}

// uniqueStrings returns a slice containing only the unique strings from the
// input, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
