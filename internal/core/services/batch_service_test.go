package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/core/services"
	"github.com/sgaviria/finanzapp/internal/dto"
)

type BatchServiceTestSuite struct {
	suite.Suite
	mockUsers   *MockUserRepository
	mockFactory *MockTenantFactory
	mockOAuth   *MockGoogleOAuthService
	mockAccrual *MockAccrualService
	mockDebts   *MockDebtRepository
	repos       *portsrepo.TenantRepos
	service     portssvc.BatchSvcFacade
}

var batchNow = time.Date(2025, time.February, 15, 2, 0, 0, 0, time.UTC)

func (suite *BatchServiceTestSuite) SetupTest() {
	suite.mockUsers = new(MockUserRepository)
	suite.mockFactory = new(MockTenantFactory)
	suite.mockOAuth = new(MockGoogleOAuthService)
	suite.mockAccrual = new(MockAccrualService)
	suite.mockDebts = new(MockDebtRepository)
	suite.repos = &portsrepo.TenantRepos{Debts: suite.mockDebts}
	suite.service = services.NewBatchService(suite.mockUsers, suite.mockFactory, suite.mockOAuth, suite.mockAccrual)
}

func (suite *BatchServiceTestSuite) TestRunDailyAccrual_MixedTenants() {
	ctx := context.Background()
	validExpiry := batchNow.Add(time.Hour)

	unlinked := domain.User{UserID: "u1", Email: "a@example.com"}
	staleCreds := domain.User{
		UserID: "u2", Email: "b@example.com",
		SpreadsheetID: "sheet-2", GoogleRefreshToken: "rt-2",
	}
	healthy := domain.User{
		UserID: "u3", Email: "c@example.com",
		SpreadsheetID: "sheet-3", GoogleRefreshToken: "rt-3",
		GoogleAccessToken: "at-3", GoogleTokenExpiry: &validExpiry,
	}

	suite.mockUsers.On("ListUsers", ctx).
		Return([]domain.User{unlinked, staleCreds, healthy}, nil).Once()
	suite.mockOAuth.On("RefreshAccessToken", ctx, "rt-2").
		Return(nil, errors.New("invalid_grant")).Once()
	suite.mockFactory.On("ForUser", ctx, healthy).Return(suite.repos, nil).Once()

	// Only the debt whose cutoff lands on today's date is accrued.
	suite.mockDebts.On("ListDebts", ctx).Return([]domain.Debt{
		{DebtID: "d1", CutOffDay: 15, Active: true},
		{DebtID: "d2", CutOffDay: 10, Active: true},
		{DebtID: "d3", CutOffDay: 15, Active: false},
		{DebtID: "d4", Active: true},
	}, nil).Once()
	suite.mockAccrual.On("AccrueForTenant", ctx, suite.repos, "d1", dto.AccrueRequest{}).
		Return(&dto.AccrualResult{Key: "d1|2025-02-15"}, nil).Once()

	summary := suite.service.RunDailyAccrual(ctx, batchNow)

	suite.Equal(dto.BatchSummary{
		UsersTotal:   3,
		UsersSkipped: 2,
		Processed:    1,
		Skipped:      0,
		Errored:      1,
	}, summary)

	suite.mockAccrual.AssertNumberOfCalls(suite.T(), "AccrueForTenant", 1)
	suite.mockUsers.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockOAuth.AssertExpectations(suite.T())
	suite.mockFactory.AssertExpectations(suite.T())
	suite.mockDebts.AssertExpectations(suite.T())
	suite.mockAccrual.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestRunDailyAccrual_RefreshesExpiredCredential() {
	ctx := context.Background()
	expired := batchNow.Add(-time.Hour)
	user := domain.User{
		UserID: "u1", SpreadsheetID: "sheet-1",
		GoogleRefreshToken: "rt-old", GoogleAccessToken: "at-old",
		GoogleTokenExpiry: &expired,
	}
	freshExpiry := batchNow.Add(time.Hour)
	refreshed := &oauth2.Token{AccessToken: "at-new", RefreshToken: "rt-new", Expiry: freshExpiry}

	suite.mockUsers.On("ListUsers", ctx).Return([]domain.User{user}, nil).Once()
	suite.mockOAuth.On("RefreshAccessToken", ctx, "rt-old").Return(refreshed, nil).Once()
	suite.mockUsers.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == "u1" &&
			u.GoogleAccessToken == "at-new" &&
			u.GoogleRefreshToken == "rt-new" &&
			u.GoogleTokenExpiry != nil && u.GoogleTokenExpiry.Equal(freshExpiry)
	})).Return(nil).Once()
	suite.mockFactory.On("ForUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.GoogleAccessToken == "at-new"
	})).Return(suite.repos, nil).Once()
	suite.mockDebts.On("ListDebts", ctx).Return([]domain.Debt{
		{DebtID: "d1", CutOffDay: 15, Active: true},
	}, nil).Once()
	suite.mockAccrual.On("AccrueForTenant", ctx, suite.repos, "d1", dto.AccrueRequest{}).
		Return(&dto.AccrualResult{Skipped: true, Reason: "Statement already exists"}, nil).Once()

	summary := suite.service.RunDailyAccrual(ctx, batchNow)

	suite.Equal(1, summary.UsersTotal)
	suite.Equal(0, summary.UsersSkipped)
	suite.Equal(0, summary.Processed)
	suite.Equal(1, summary.Skipped)
	suite.Equal(0, summary.Errored)
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockOAuth.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestRunDailyAccrual_DebtFailureDoesNotStopRun() {
	ctx := context.Background()
	validExpiry := batchNow.Add(time.Hour)
	user := domain.User{
		UserID: "u1", SpreadsheetID: "sheet-1",
		GoogleRefreshToken: "rt", GoogleAccessToken: "at",
		GoogleTokenExpiry: &validExpiry,
	}

	suite.mockUsers.On("ListUsers", ctx).Return([]domain.User{user}, nil).Once()
	suite.mockFactory.On("ForUser", ctx, user).Return(suite.repos, nil).Once()
	suite.mockDebts.On("ListDebts", ctx).Return([]domain.Debt{
		{DebtID: "d1", CutOffDay: 15, Active: true},
		{DebtID: "d2", CutOffDay: 15, Active: true},
	}, nil).Once()
	suite.mockAccrual.On("AccrueForTenant", ctx, suite.repos, "d1", dto.AccrueRequest{}).
		Return(nil, errors.New("quota exceeded")).Once()
	suite.mockAccrual.On("AccrueForTenant", ctx, suite.repos, "d2", dto.AccrueRequest{}).
		Return(&dto.AccrualResult{Key: "d2|2025-02-15"}, nil).Once()

	summary := suite.service.RunDailyAccrual(ctx, batchNow)

	suite.Equal(1, summary.Errored)
	suite.Equal(1, summary.Processed)
	suite.mockAccrual.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestRunDailyAccrual_ListUsersFailureAborts() {
	ctx := context.Background()
	suite.mockUsers.On("ListUsers", ctx).Return(nil, errors.New("spreadsheet unavailable")).Once()

	summary := suite.service.RunDailyAccrual(ctx, batchNow)

	suite.Equal(dto.BatchSummary{Errored: 1}, summary)
	suite.mockAccrual.AssertNotCalled(suite.T(), "AccrueForTenant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Month-end clamp: a cutoff day past the month's length fires on the last
// day of that month.
func (suite *BatchServiceTestSuite) TestRunDailyAccrual_CutOffClampedToMonthEnd() {
	ctx := context.Background()
	now := time.Date(2025, time.February, 28, 2, 0, 0, 0, time.UTC)
	validExpiry := now.Add(time.Hour)
	user := domain.User{
		UserID: "u1", SpreadsheetID: "sheet-1",
		GoogleRefreshToken: "rt", GoogleAccessToken: "at",
		GoogleTokenExpiry: &validExpiry,
	}

	suite.mockUsers.On("ListUsers", ctx).Return([]domain.User{user}, nil).Once()
	suite.mockFactory.On("ForUser", ctx, user).Return(suite.repos, nil).Once()
	suite.mockDebts.On("ListDebts", ctx).Return([]domain.Debt{
		{DebtID: "d1", CutOffDay: 31, Active: true},
	}, nil).Once()
	suite.mockAccrual.On("AccrueForTenant", ctx, suite.repos, "d1", dto.AccrueRequest{}).
		Return(&dto.AccrualResult{Key: "d1|2025-02-28"}, nil).Once()

	summary := suite.service.RunDailyAccrual(ctx, now)

	suite.Equal(1, summary.Processed)
	suite.mockAccrual.AssertExpectations(suite.T())
}

func TestBatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BatchServiceTestSuite))
}
