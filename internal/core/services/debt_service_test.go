package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/core/services"
	"github.com/flatledger/flatledger/internal/dto"
)

type DebtServiceTestSuite struct {
	suite.Suite
	mockDebtRepo     *MockDebtRepository
	mockApartmentSvc *MockApartmentService
	service          portssvc.DebtSvcFacade
	apartmentID      string
	userID           string
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockApartmentSvc = new(MockApartmentService)
	suite.service = services.NewDebtService(suite.mockDebtRepo, suite.mockApartmentSvc)

	suite.apartmentID = "apt-1"
	suite.userID = "user-a"
}

func (suite *DebtServiceTestSuite) TestCreateDebt_Success() {
	// Creator and both parties must be members.
	suite.mockApartmentSvc.On("AuthorizeMember", mock.Anything, mock.Anything, suite.apartmentID).Return(nil)

	var saved domain.Debt
	suite.mockDebtRepo.On("SaveDebt", mock.Anything, mock.AnythingOfType("domain.Debt")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Debt)
		}).Return(nil).Once()

	req := dto.CreateDebtRequest{FromUserID: "user-b", ToUserID: "user-c", Amount: decimal.NewFromInt(25)}
	debt, err := suite.service.CreateDebt(context.Background(), suite.apartmentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(debt)
	suite.Equal(domain.DebtOpen, saved.Status)
	suite.Equal("user-b", saved.FromUserID)
	suite.Equal("user-c", saved.ToUserID)
	suite.Nil(saved.ClosedAt)
	suite.Nil(saved.SettlementArtifactID)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_RejectsSelfDebt() {
	suite.mockApartmentSvc.On("AuthorizeMember", mock.Anything, suite.userID, suite.apartmentID).Return(nil).Once()

	req := dto.CreateDebtRequest{FromUserID: "user-b", ToUserID: "user-b", Amount: decimal.NewFromInt(25)}
	_, err := suite.service.CreateDebt(context.Background(), suite.apartmentID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "SaveDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_RejectsNonMemberParty() {
	suite.mockApartmentSvc.On("AuthorizeMember", mock.Anything, suite.userID, suite.apartmentID).Return(nil).Once()
	suite.mockApartmentSvc.On("AuthorizeMember", mock.Anything, "user-b", suite.apartmentID).Return(nil).Once()
	suite.mockApartmentSvc.On("AuthorizeMember", mock.Anything, "stranger", suite.apartmentID).Return(apperrors.ErrForbidden).Once()

	req := dto.CreateDebtRequest{FromUserID: "user-b", ToUserID: "stranger", Amount: decimal.NewFromInt(25)}
	_, err := suite.service.CreateDebt(context.Background(), suite.apartmentID, req, suite.userID)

	// A non-member counterparty is the caller's input error, not an
	// authorization failure of the caller.
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "SaveDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestGetDebtByID_ObscuresOtherApartments() {
	suite.mockApartmentSvc.On("AuthorizeMember", mock.Anything, suite.userID, suite.apartmentID).Return(nil).Once()
	suite.mockDebtRepo.On("FindDebtByID", mock.Anything, "debt-1").
		Return(&domain.Debt{DebtID: "debt-1", ApartmentID: "other-apartment"}, nil).Once()

	debt, err := suite.service.GetDebtByID(context.Background(), suite.apartmentID, "debt-1", suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound, "a debt of another apartment must look nonexistent")
	suite.Nil(debt)
}

func (suite *DebtServiceTestSuite) TestListDebts_StatusFilter() {
	suite.mockApartmentSvc.On("AuthorizeMember", mock.Anything, suite.userID, suite.apartmentID).Return(nil).Once()

	open := domain.DebtOpen
	suite.mockDebtRepo.On("ListDebtsByApartment", mock.Anything, suite.apartmentID, &open).
		Return([]domain.Debt{{DebtID: "debt-1", Status: domain.DebtOpen}}, nil).Once()

	status := string(domain.DebtOpen)
	debts, err := suite.service.ListDebts(context.Background(), suite.apartmentID, suite.userID, dto.ListDebtsParams{Status: &status})

	suite.Require().NoError(err)
	suite.Len(debts, 1)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
