package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flatledger/flatledger/internal/apperrors"
	portsrepo "github.com/flatledger/flatledger/internal/core/ports/repositories"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/middleware"
)

// apartmentService performs membership authorization against the apartment
// membership store.
type apartmentService struct {
	apartmentRepo portsrepo.ApartmentRepositoryFacade
}

// NewApartmentService creates a new ApartmentService.
func NewApartmentService(apartmentRepo portsrepo.ApartmentRepositoryFacade) portssvc.ApartmentSvcFacade {
	return &apartmentService{apartmentRepo: apartmentRepo}
}

var _ portssvc.ApartmentSvcFacade = (*apartmentService)(nil)

// AuthorizeMember checks that the user is a member of the apartment.
// Returns apperrors.ErrForbidden when the user is not a member; apartment
// existence is not revealed to non-members.
func (s *apartmentService) AuthorizeMember(ctx context.Context, userID, apartmentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := s.apartmentRepo.FindMemberRole(ctx, apartmentID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user is not a member of apartment",
				slog.String("user_id", userID), slog.String("apartment_id", apartmentID))
			return apperrors.ErrForbidden
		}
		logger.Error("Failed to check apartment membership in repository",
			slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("apartment_id", apartmentID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	return nil
}
