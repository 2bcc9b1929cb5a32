package services

import "context"

// ApartmentSvcFacade performs membership authorization checks.
type ApartmentSvcFacade interface {
	// AuthorizeMember checks that the user is a member of the apartment.
	// Returns apperrors.ErrForbidden when they are not; apartment existence
	// is not revealed to non-members.
	AuthorizeMember(ctx context.Context, userID string, apartmentID string) error
}
