package repositories

import (
	"context"

	"github.com/flatledger/flatledger/internal/core/domain"
)

// ApartmentMemberReader defines read operations for apartment membership.
// Membership is written by the surrounding application; this service only
// reads it for authorization.
type ApartmentMemberReader interface {
	// FindMemberRole retrieves the role of a user within an apartment.
	// Returns apperrors.ErrNotFound when the user is not a member.
	FindMemberRole(ctx context.Context, apartmentID, userID string) (*domain.ApartmentRole, error)
}

// ApartmentRepositoryFacade combines all apartment-related repository interfaces
type ApartmentRepositoryFacade interface {
	ApartmentMemberReader
}
