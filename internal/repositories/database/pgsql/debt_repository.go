package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	"github.com/flatledger/flatledger/internal/models"
	"github.com/flatledger/flatledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt and settlement data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDebtRepository implements portsrepo.DebtRepositoryFacade
var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, apartment_id, from_user_id, to_user_id, amount, status, closed_at, closed_by, settlement_artifact_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveDebt persists a new debt record.
func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	modelDebt := mapping.ToModelDebt(debt)
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelDebt.DebtID,
		modelDebt.ApartmentID,
		modelDebt.FromUserID,
		modelDebt.ToUserID,
		modelDebt.Amount,
		modelDebt.Status,
		modelDebt.ClosedAt,
		modelDebt.ClosedBy,
		modelDebt.SettlementArtifactID,
		modelDebt.CreatedAt,
		modelDebt.CreatedBy,
		modelDebt.LastUpdatedAt,
		modelDebt.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert debt "+modelDebt.DebtID, mapConflictError(err))
	}
	return nil
}

// FindDebtByID retrieves a debt by its ID.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE debt_id = $1;
	`
	modelDebt, err := scanDebtRow(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt by ID "+debtID, err)
	}

	domainDebt := mapping.ToDomainDebt(*modelDebt)
	return &domainDebt, nil
}

// ListDebtsByApartment retrieves the debts of an apartment, optionally
// filtered by status, newest first.
func (r *PgxDebtRepository) ListDebtsByApartment(ctx context.Context, apartmentID string, status *domain.DebtStatus) ([]domain.Debt, error) {
	args := []interface{}{apartmentID}
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE apartment_id = $1
	`
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, debt_id DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts for apartment "+apartmentID, err)
	}
	defer rows.Close()

	debts := []models.Debt{}
	for rows.Next() {
		modelDebt, err := scanDebtRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt row", err)
		}
		debts = append(debts, *modelDebt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating debt rows", err)
	}

	return mapping.ToDomainDebtSlice(debts), nil
}

// SettleDebt closes a debt in a single database transaction. The debt row is
// locked and validated, then four writes happen together: the debt is marked
// closed, the compensating settlement-artifact expense is inserted at twice
// the debt amount, the balance projections of both parties are adjusted, and
// the audit record is appended.
func (r *PgxDebtRepository) SettleDebt(ctx context.Context, params portsrepo.SettleDebtParams) (*domain.SettlementResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Lock the debt row for the duration of the transaction.
	lockQuery := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE debt_id = $1
		FOR UPDATE;
	`
	modelDebt, err := scanDebtRow(tx.QueryRow(ctx, lockQuery, params.DebtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock debt "+params.DebtID, mapConflictError(err))
	}

	// A debt id from another apartment is reported as not found so callers
	// cannot probe for existence across apartments.
	if modelDebt.ApartmentID != params.ApartmentID {
		return nil, apperrors.ErrNotFound
	}

	// 2. An already-closed debt short-circuits with the prior result. The
	// closure metadata must be intact or the record is unusable.
	if modelDebt.Status == models.DebtClosed {
		if modelDebt.ClosedAt == nil || modelDebt.SettlementArtifactID == nil {
			return nil, apperrors.NewAppError(500, "closed debt "+params.DebtID+" is missing closure metadata", apperrors.ErrMalformed)
		}
		return &domain.SettlementResult{
			DebtID:               modelDebt.DebtID,
			SettlementArtifactID: *modelDebt.SettlementArtifactID,
			ClosedAt:             *modelDebt.ClosedAt,
			AlreadyClosed:        true,
		}, apperrors.ErrAlreadyClosed
	}
	if err := validateOpenDebt(modelDebt); err != nil {
		return nil, err
	}

	debtorID := modelDebt.FromUserID
	creditorID := modelDebt.ToUserID

	// 3. Mark the debt closed.
	closeQuery := `
		UPDATE debts
		SET status = $1, closed_at = $2, closed_by = $3, settlement_artifact_id = $4,
		    last_updated_at = $2, last_updated_by = $3
		WHERE debt_id = $5;
	`
	if _, err := tx.Exec(ctx, closeQuery, models.DebtClosed, params.Now, params.ActorID, params.SettlementArtifactID, params.DebtID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to close debt "+params.DebtID, mapConflictError(err))
	}

	// 4. Insert the compensating expense: the debtor pays twice the debt
	// amount split across both parties, which cancels the original debt in
	// the balance fold.
	artifact := mapping.ToModelExpense(domain.NewSettlementArtifact(
		mapping.ToDomainDebt(*modelDebt), params.SettlementArtifactID, params.ActorID, params.Now))
	artifactQuery := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	if _, err := tx.Exec(ctx, artifactQuery,
		artifact.ExpenseID,
		artifact.ApartmentID,
		artifact.Amount,
		artifact.PayerID,
		artifact.ParticipantIDs,
		artifact.Description,
		artifact.IsSettlementArtifact,
		artifact.CreatedAt,
		artifact.CreatedBy,
		artifact.LastUpdatedAt,
		artifact.LastUpdatedBy,
	); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert settlement artifact for debt "+params.DebtID, mapConflictError(err))
	}

	// 5. Adjust the balance projections by the same deltas the artifact
	// produces in the balance fold, so the cached projection and a fresh
	// re-derivation from the expense feed agree: the debtor is credited,
	// the creditor's claim is consumed.
	if err := r.adjustProjectionInTx(ctx, tx, params, debtorID, modelDebt.Amount); err != nil {
		return nil, err
	}
	if err := r.adjustProjectionInTx(ctx, tx, params, creditorID, modelDebt.Amount.Neg()); err != nil {
		return nil, err
	}

	// 6. Append the audit record.
	auditQuery := `
		INSERT INTO settlement_audits (audit_id, apartment_id, debt_id, settlement_artifact_id, actor_id, debtor_id, creditor_id, original_amount, settlement_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	if _, err := tx.Exec(ctx, auditQuery,
		params.AuditID,
		modelDebt.ApartmentID,
		params.DebtID,
		params.SettlementArtifactID,
		params.ActorID,
		debtorID,
		creditorID,
		modelDebt.Amount,
		artifact.Amount,
		params.Now,
	); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert settlement audit for debt "+params.DebtID, mapConflictError(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, mapConflictError(err)
	}

	return &domain.SettlementResult{
		DebtID:               params.DebtID,
		SettlementArtifactID: params.SettlementArtifactID,
		ClosedAt:             params.Now,
		AlreadyClosed:        false,
	}, nil
}

// validateOpenDebt checks the integrity of a debt row about to be settled.
// Violations are fatal and never repaired in place.
func validateOpenDebt(d *models.Debt) error {
	switch {
	case d.Status != models.DebtOpen:
		return apperrors.NewAppError(500, "debt "+d.DebtID+" has unknown status "+string(d.Status), apperrors.ErrMalformed)
	case !d.Amount.IsPositive():
		return apperrors.NewAppError(500, "debt "+d.DebtID+" has non-positive amount", apperrors.ErrMalformed)
	case d.FromUserID == "" || d.ToUserID == "":
		return apperrors.NewAppError(500, "debt "+d.DebtID+" has an empty party id", apperrors.ErrMalformed)
	}
	return nil
}

// adjustProjectionInTx applies a signed delta to one user's balance
// projection row, creating it on first touch.
func (r *PgxDebtRepository) adjustProjectionInTx(ctx context.Context, tx pgx.Tx, params portsrepo.SettleDebtParams, userID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO balance_projections (apartment_id, user_id, net_balance, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (apartment_id, user_id)
		DO UPDATE SET net_balance = balance_projections.net_balance + EXCLUDED.net_balance,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	if _, err := tx.Exec(ctx, query, params.ApartmentID, userID, delta, params.Now, params.ActorID); err != nil {
		return apperrors.NewAppError(500, "failed to adjust balance projection for user "+userID, mapConflictError(err))
	}
	return nil
}

// ListSettlementAuditsByApartment retrieves the audit trail of an apartment,
// newest first.
func (r *PgxDebtRepository) ListSettlementAuditsByApartment(ctx context.Context, apartmentID string) ([]domain.SettlementAuditRecord, error) {
	query := `
		SELECT audit_id, apartment_id, debt_id, settlement_artifact_id, actor_id, debtor_id, creditor_id, original_amount, settlement_amount, created_at
		FROM settlement_audits
		WHERE apartment_id = $1
		ORDER BY created_at DESC, audit_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, apartmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query settlement audits for apartment "+apartmentID, err)
	}
	defer rows.Close()

	audits := []domain.SettlementAuditRecord{}
	for rows.Next() {
		var m models.SettlementAuditRecord
		err := rows.Scan(
			&m.AuditID,
			&m.ApartmentID,
			&m.DebtID,
			&m.SettlementArtifactID,
			&m.ActorID,
			&m.DebtorID,
			&m.CreditorID,
			&m.OriginalAmount,
			&m.SettlementAmount,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan settlement audit row", err)
		}
		audits = append(audits, mapping.ToDomainSettlementAudit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating settlement audit rows", err)
	}

	return audits, nil
}

// scanDebtRow scans one debt row from either a QueryRow or a Rows cursor.
func scanDebtRow(row pgx.Row) (*models.Debt, error) {
	var d models.Debt
	err := row.Scan(
		&d.DebtID,
		&d.ApartmentID,
		&d.FromUserID,
		&d.ToUserID,
		&d.Amount,
		&d.Status,
		&d.ClosedAt,
		&d.ClosedBy,
		&d.SettlementArtifactID,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
