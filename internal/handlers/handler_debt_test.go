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

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
	"github.com/sgaviria/finanzapp/internal/handlers"
	"github.com/sgaviria/finanzapp/internal/middleware"
)

// --- Mock DebtService ---
type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) ListDebts(ctx context.Context, userID string) ([]domain.Debt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}
func (m *MockDebtService) CreateDebt(ctx context.Context, userID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}
func (m *MockDebtService) UpdateDebt(ctx context.Context, userID, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	args := m.Called(ctx, userID, debtID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}
func (m *MockDebtService) DeleteDebt(ctx context.Context, userID, debtID string) error {
	args := m.Called(ctx, userID, debtID)
	return args.Error(0)
}
func (m *MockDebtService) GetDebtSummary(ctx context.Context, userID, debtID string) (*dto.DebtSummaryResponse, error) {
	args := m.Called(ctx, userID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DebtSummaryResponse), args.Error(1)
}
func (m *MockDebtService) ListDebtSummaries(ctx context.Context, userID string) ([]dto.DebtSummaryResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DebtSummaryResponse), args.Error(1)
}
func (m *MockDebtService) ListStatements(ctx context.Context, userID, debtID string) ([]dto.StatementResponse, error) {
	args := m.Called(ctx, userID, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.StatementResponse), args.Error(1)
}
func (m *MockDebtService) ProjectInstallments(ctx context.Context, userID, debtID string, months int, start string) ([]dto.InstallmentProjection, error) {
	args := m.Called(ctx, userID, debtID, months, start)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.InstallmentProjection), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.DebtSvcFacade = (*MockDebtService)(nil)

// --- Mock AccrualService ---
type MockAccrualService struct {
	mock.Mock
}

func (m *MockAccrualService) Accrue(ctx context.Context, userID, debtID string, req dto.AccrueRequest) (*dto.AccrualResult, error) {
	args := m.Called(ctx, userID, debtID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccrualResult), args.Error(1)
}
func (m *MockAccrualService) AccrueForTenant(ctx context.Context, repos *portsrepo.TenantRepos, debtID string, req dto.AccrueRequest) (*dto.AccrualResult, error) {
	args := m.Called(ctx, repos, debtID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccrualResult), args.Error(1)
}
func (m *MockAccrualService) Preview(ctx context.Context, userID, debtID string, req dto.AccrueRequest) (*dto.StatementPreview, error) {
	args := m.Called(ctx, userID, debtID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatementPreview), args.Error(1)
}

var _ portssvc.AccrualSvcFacade = (*MockAccrualService)(nil)

// --- Test Suite ---
type DebtHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockDebtService    *MockDebtService
	mockAccrualService *MockAccrualService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *DebtHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finanzapp-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *DebtHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockDebtService = new(MockDebtService)
	suite.mockAccrualService = new(MockAccrualService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterDebtRoutes(v1, suite.mockDebtService, suite.mockAccrualService)
}

func (suite *DebtHandlerTestSuite) doRequest(method, url, userID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *DebtHandlerTestSuite) TestAccrue_Success() {
	userID := uuid.NewString()
	debtID := uuid.NewString()

	expected := &dto.AccrualResult{
		Key:           debtID + "|2025-02-15",
		StatementDate: "2025-02-15",
		NewBalance:    "928.50",
	}
	suite.mockAccrualService.On("Accrue",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		debtID,
		dto.AccrueRequest{Period: "2025-02", Recompute: true},
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/debts/%s/accrue?period=2025-02&recompute=true", debtID)
	w := suite.doRequest(http.MethodPost, url, userID)

	suite.Equal(http.StatusOK, w.Code)

	var envelope struct {
		Success bool              `json:"success"`
		Data    dto.AccrualResult `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.Equal(expected.Key, envelope.Data.Key)
	suite.Equal(expected.NewBalance, envelope.Data.NewBalance)

	suite.mockAccrualService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestAccrue_DebtNotFound() {
	userID := uuid.NewString()
	debtID := uuid.NewString()

	suite.mockAccrualService.On("Accrue",
		mock.AnythingOfType("*context.valueCtx"),
		userID, debtID, dto.AccrueRequest{},
	).Return(nil, apperrors.NewNotFoundError("Debt not found")).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/debts/%s/accrue", debtID), userID)

	suite.Equal(http.StatusNotFound, w.Code)

	var envelope dto.Envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.False(envelope.Success)
	suite.Equal("Debt not found", envelope.Error)
}

func (suite *DebtHandlerTestSuite) TestAccrue_Unauthorized_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/debts/abc/accrue", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccrualService.AssertNotCalled(suite.T(), "Accrue",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtHandlerTestSuite) TestListDebts_Success() {
	userID := uuid.NewString()
	debts := []domain.Debt{
		{DebtID: uuid.NewString(), Name: "Visa", Active: true},
		{DebtID: uuid.NewString(), Name: "Mastercard", Active: true},
	}
	suite.mockDebtService.On("ListDebts",
		mock.AnythingOfType("*context.valueCtx"), userID,
	).Return(debts, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/debts", userID)

	suite.Equal(http.StatusOK, w.Code)

	var envelope struct {
		Success bool               `json:"success"`
		Data    []dto.DebtResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.Require().Len(envelope.Data, 2)
	suite.Equal("Visa", envelope.Data[0].Name)

	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestProjectInstallments_DefaultMonths() {
	userID := uuid.NewString()
	debtID := uuid.NewString()

	suite.mockDebtService.On("ProjectInstallments",
		mock.AnythingOfType("*context.valueCtx"),
		userID, debtID, 12, "",
	).Return([]dto.InstallmentProjection{}, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/debts/%s/installments", debtID), userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDebtService.AssertExpectations(suite.T())
}

func (suite *DebtHandlerTestSuite) TestProjectInstallments_InvalidMonths() {
	userID := uuid.NewString()
	debtID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/debts/%s/installments?months=abc", debtID)
	w := suite.doRequest(http.MethodGet, url, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDebtService.AssertNotCalled(suite.T(), "ProjectInstallments",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DebtHandlerTestSuite) TestStatementPreview_Success() {
	userID := uuid.NewString()
	debtID := uuid.NewString()

	preview := &dto.StatementPreview{
		Key:           debtID + "|2025-02-15",
		StatementDate: "2025-02-15",
	}
	suite.mockAccrualService.On("Preview",
		mock.AnythingOfType("*context.valueCtx"),
		userID, debtID, dto.AccrueRequest{Period: "2025-02"},
	).Return(preview, nil).Once()

	url := fmt.Sprintf("/api/v1/debts/%s/statement-preview?period=2025-02", debtID)
	w := suite.doRequest(http.MethodGet, url, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccrualService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestDebtHandler(t *testing.T) {
	suite.Run(t, new(DebtHandlerTestSuite))
}
