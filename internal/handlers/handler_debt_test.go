package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/flatledger/flatledger/internal/apperrors"
	"github.com/flatledger/flatledger/internal/core/domain"
	portssvc "github.com/flatledger/flatledger/internal/core/ports/services"
	"github.com/flatledger/flatledger/internal/dto"
	"github.com/flatledger/flatledger/internal/handlers"
	"github.com/flatledger/flatledger/internal/platform/config"
)

const (
	testJWTSecret = "test-secret"
	testJWTIssuer = "flatledger-test"
)

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

func (m *MockDebtService) CreateDebt(ctx context.Context, apartmentID string, req dto.CreateDebtRequest, creatorUserID string) (*domain.Debt, error) {
	args := m.Called(ctx, apartmentID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) GetDebtByID(ctx context.Context, apartmentID string, debtID string, requestingUserID string) (*domain.Debt, error) {
	args := m.Called(ctx, apartmentID, debtID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtService) ListDebts(ctx context.Context, apartmentID string, userID string, params dto.ListDebtsParams) ([]domain.Debt, error) {
	args := m.Called(ctx, apartmentID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

func (m *MockSettlementService) CloseDebt(ctx context.Context, apartmentID string, debtID string, actorID string) (*domain.SettlementResult, error) {
	args := m.Called(ctx, apartmentID, debtID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

func (m *MockSettlementService) ListSettlementAudits(ctx context.Context, apartmentID string, userID string) ([]domain.SettlementAuditRecord, error) {
	args := m.Called(ctx, apartmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementAuditRecord), args.Error(1)
}

// --- Mock ExpenseService / BalanceService (route registration needs them) ---
type MockExpenseService struct {
	mock.Mock
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

func (m *MockExpenseService) CreateExpense(ctx context.Context, apartmentID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.ExpenseRecord, error) {
	args := m.Called(ctx, apartmentID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseRecord), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, apartmentID string, userID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	args := m.Called(ctx, apartmentID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExpensesResponse), args.Error(1)
}

type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) GetBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error) {
	args := m.Called(ctx, apartmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BalanceEntry), args.Error(1)
}

func (m *MockBalanceService) GetRawBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error) {
	args := m.Called(ctx, apartmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BalanceEntry), args.Error(1)
}

func (m *MockBalanceService) GetSimplifiedBalances(ctx context.Context, apartmentID string, userID string) (map[string]domain.BalanceEntry, error) {
	args := m.Called(ctx, apartmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BalanceEntry), args.Error(1)
}

type MockApartmentSvc struct {
	mock.Mock
}

var _ portssvc.ApartmentSvcFacade = (*MockApartmentSvc)(nil)

func (m *MockApartmentSvc) AuthorizeMember(ctx context.Context, userID string, apartmentID string) error {
	args := m.Called(ctx, userID, apartmentID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type DebtHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockDebtService       *MockDebtService
	mockSettlementService *MockSettlementService
}

func (suite *DebtHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockDebtService = new(MockDebtService)
	suite.mockSettlementService = new(MockSettlementService)

	cfg := &config.Config{
		JWTSecret:    testJWTSecret,
		JWTIssuer:    testJWTIssuer,
		IsProduction: true,
		RateLimit:    "1000-S",
	}
	services := &portssvc.ServiceContainer{
		Apartment:  new(MockApartmentSvc),
		Expense:    new(MockExpenseService),
		Debt:       suite.mockDebtService,
		Balance:    new(MockBalanceService),
		Settlement: suite.mockSettlementService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *DebtHandlerTestSuite) generateTestToken(userID string) string {
	return suite.generateTokenWithIssuer(userID, testJWTIssuer)
}

func (suite *DebtHandlerTestSuite) generateTokenWithIssuer(userID, issuer string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return signed
}

// --- Test Cases ---

func (suite *DebtHandlerTestSuite) TestCloseDebt_Success() {
	apartmentID := uuid.NewString()
	debtID := uuid.NewString()
	actorID := uuid.NewString()
	artifactID := uuid.NewString()

	suite.mockSettlementService.On("CloseDebt", mock.Anything, apartmentID, debtID, actorID).
		Return(&domain.SettlementResult{
			DebtID:               debtID,
			SettlementArtifactID: artifactID,
			ClosedAt:             time.Now(),
		}, nil).Once()

	url := fmt.Sprintf("/api/v1/apartments/%s/debts/%s/close", apartmentID, debtID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.CloseDebtResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(debtID, body.DebtID)
	suite.Equal(artifactID, body.SettlementArtifactID)
	suite.False(body.AlreadyClosed)
	suite.mockSettlementService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestCloseDebt_AlreadyClosedStillOK() {
	apartmentID := uuid.NewString()
	debtID := uuid.NewString()
	actorID := uuid.NewString()

	suite.mockSettlementService.On("CloseDebt", mock.Anything, apartmentID, debtID, actorID).
		Return(&domain.SettlementResult{
			DebtID:               debtID,
			SettlementArtifactID: uuid.NewString(),
			ClosedAt:             time.Now().Add(-time.Hour),
			AlreadyClosed:        true,
		}, nil).Once()

	url := fmt.Sprintf("/api/v1/apartments/%s/debts/%s/close", apartmentID, debtID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.CloseDebtResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.AlreadyClosed)
}

func (suite *DebtHandlerTestSuite) TestCloseDebt_ErrorStatusCodes() {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"transient conflict", apperrors.ErrTransientConflict, http.StatusConflict},
		{"malformed", apperrors.ErrMalformed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			apartmentID := uuid.NewString()
			debtID := uuid.NewString()
			actorID := uuid.NewString()

			suite.mockSettlementService.On("CloseDebt", mock.Anything, apartmentID, debtID, actorID).
				Return(nil, tc.serviceErr).Once()

			url := fmt.Sprintf("/api/v1/apartments/%s/debts/%s/close", apartmentID, debtID)
			req, _ := http.NewRequest(http.MethodPost, url, nil)
			req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(actorID))

			w := httptest.NewRecorder()
			suite.router.ServeHTTP(w, req)

			suite.Equal(tc.wantStatus, w.Code)
		})
	}
}

func (suite *DebtHandlerTestSuite) TestCloseDebt_RejectsWrongIssuer() {
	url := fmt.Sprintf("/api/v1/apartments/%s/debts/%s/close", uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTokenWithIssuer(uuid.NewString(), "someone-else"))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSettlementService.AssertNotCalled(suite.T(), "CloseDebt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtHandlerTestSuite) TestCloseDebt_RequiresAuth() {
	url := fmt.Sprintf("/api/v1/apartments/%s/debts/%s/close", uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodPost, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSettlementService.AssertNotCalled(suite.T(), "CloseDebt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDebtHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DebtHandlerTestSuite))
}
