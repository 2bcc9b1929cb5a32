package pgsql

import (
	"context"
	"fmt"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	"github.com/flatledger/flatledger/internal/models"
	"github.com/flatledger/flatledger/internal/utils/mapping"
	"github.com/flatledger/flatledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, apartment_id, amount, payer_id, participant_ids, description, is_settlement_artifact, created_at, created_by, last_updated_at, last_updated_by`

// SaveExpense persists a new expense record.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.ExpenseRecord) error {
	modelExpense := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelExpense.ExpenseID,
		modelExpense.ApartmentID,
		modelExpense.Amount,
		modelExpense.PayerID,
		modelExpense.ParticipantIDs,
		modelExpense.Description,
		modelExpense.IsSettlementArtifact,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense "+modelExpense.ExpenseID, mapConflictError(err))
	}
	return nil
}

// ListExpensesByApartment retrieves a page of expenses for an apartment,
// newest first, keyed on the stable (created_at, expense_id) cursor.
func (r *PgxExpenseRepository) ListExpensesByApartment(ctx context.Context, apartmentID string, includeSettlementArtifacts bool, limit int, nextToken *string) ([]domain.ExpenseRecord, *string, error) {
	args := []interface{}{apartmentID}
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE apartment_id = $1
	`
	if !includeSettlementArtifacts {
		query += ` AND is_settlement_artifact = FALSE`
	}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, cursorTime, cursorID)
		query += fmt.Sprintf(` AND (created_at, expense_id) < ($%d, $%d)`, len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC, expense_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query expenses for apartment "+apartmentID, err)
	}
	defer rows.Close()

	modelExpenses, err := scanExpenseRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(modelExpenses) > limit {
		modelExpenses = modelExpenses[:limit]
		last := modelExpenses[len(modelExpenses)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExpenseID)
		newNextToken = &token
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), newNextToken, nil
}

// FindAllExpensesForBalances retrieves the complete expense feed of an
// apartment, settlement artifacts included. The balance fold is commutative
// so no ordering is imposed beyond a stable one for reproducible logs.
func (r *PgxExpenseRepository) FindAllExpensesForBalances(ctx context.Context, apartmentID string) ([]domain.ExpenseRecord, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE apartment_id = $1
		ORDER BY created_at, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, apartmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense feed for apartment "+apartmentID, err)
	}
	defer rows.Close()

	modelExpenses, err := scanExpenseRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

func scanExpenseRows(rows pgx.Rows) ([]models.ExpenseRecord, error) {
	expenses := []models.ExpenseRecord{}
	for rows.Next() {
		var e models.ExpenseRecord
		err := rows.Scan(
			&e.ExpenseID,
			&e.ApartmentID,
			&e.Amount,
			&e.PayerID,
			&e.ParticipantIDs,
			&e.Description,
			&e.IsSettlementArtifact,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}
	return expenses, nil
}
