package pgsql

import (
	"context"
	"errors"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	"github.com/flatledger/flatledger/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApartmentRepository struct {
	BaseRepository
}

// newPgxApartmentRepository creates a new repository for apartment membership data.
func newPgxApartmentRepository(pool *pgxpool.Pool) portsrepo.ApartmentRepositoryFacade {
	return &PgxApartmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxApartmentRepository implements portsrepo.ApartmentRepositoryFacade
var _ portsrepo.ApartmentRepositoryFacade = (*PgxApartmentRepository)(nil)

// FindMemberRole retrieves the role of a user within an apartment.
func (r *PgxApartmentRepository) FindMemberRole(ctx context.Context, apartmentID, userID string) (*domain.ApartmentRole, error) {
	query := `
		SELECT apartment_id, user_id, role
		FROM apartment_members
		WHERE apartment_id = $1 AND user_id = $2;
	`
	var member models.ApartmentMember
	err := r.Pool.QueryRow(ctx, query, apartmentID, userID).Scan(&member.ApartmentID, &member.UserID, &member.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find member role for user "+userID, err)
	}
	role := domain.ApartmentRole(member.Role)
	return &role, nil
}
