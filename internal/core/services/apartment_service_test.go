package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	"github.com/flatledger/flatledger/internal/core/services"
)

// --- Mock ApartmentRepository ---
type MockApartmentRepository struct {
	mock.Mock
}

func (m *MockApartmentRepository) FindMemberRole(ctx context.Context, apartmentID, userID string) (*domain.ApartmentRole, error) {
	args := m.Called(ctx, apartmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApartmentRole), args.Error(1)
}

func TestAuthorizeMember_AllowsMember(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := services.NewApartmentService(mockRepo)

	role := domain.RoleMember
	mockRepo.On("FindMemberRole", mock.Anything, "apt-1", "user-a").Return(&role, nil).Once()

	err := service.AuthorizeMember(context.Background(), "user-a", "apt-1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthorizeMember_NonMemberIsForbidden(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := services.NewApartmentService(mockRepo)

	mockRepo.On("FindMemberRole", mock.Anything, "apt-1", "stranger").Return(nil, apperrors.ErrNotFound).Once()

	err := service.AuthorizeMember(context.Background(), "stranger", "apt-1")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthorizeMember_RepositoryFailurePassesThrough(t *testing.T) {
	mockRepo := new(MockApartmentRepository)
	service := services.NewApartmentService(mockRepo)

	repoErr := errors.New("connection refused")
	mockRepo.On("FindMemberRole", mock.Anything, "apt-1", "user-a").Return(nil, repoErr).Once()

	err := service.AuthorizeMember(context.Background(), "user-a", "apt-1")

	assert.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
}
