package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sgaviria/finanzapp/internal/apperrors"
	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/core/services"
	"github.com/sgaviria/finanzapp/internal/dto"
)

type DebtServiceTestSuite struct {
	suite.Suite
	mockUsers      *MockUserRepository
	mockFactory    *MockTenantFactory
	mockDebts      *MockDebtRepository
	mockStatements *MockStatementRepository
	repos          *portsrepo.TenantRepos
	service        portssvc.DebtSvcFacade
	user           *domain.User
}

var debtNow = time.Date(2025, time.February, 10, 9, 0, 0, 0, time.UTC)

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockUsers = new(MockUserRepository)
	suite.mockFactory = new(MockTenantFactory)
	suite.mockDebts = new(MockDebtRepository)
	suite.mockStatements = new(MockStatementRepository)
	suite.repos = &portsrepo.TenantRepos{
		Debts:      suite.mockDebts,
		Statements: suite.mockStatements,
	}
	suite.user = &domain.User{UserID: "u1", SpreadsheetID: "sheet-1", GoogleRefreshToken: "rt"}
	suite.service = services.NewDebtService(suite.mockUsers, suite.mockFactory,
		services.WithDebtClock(func() time.Time { return debtNow }))
}

func (suite *DebtServiceTestSuite) expectTenant() {
	ctx := context.Background()
	suite.mockUsers.On("FindUserByID", ctx, "u1").Return(suite.user, nil).Once()
	suite.mockFactory.On("ForUser", ctx, *suite.user).Return(suite.repos, nil).Once()
}

func (suite *DebtServiceTestSuite) TestCreateDebt() {
	ctx := context.Background()
	suite.expectTenant()

	var appended domain.Debt
	suite.mockDebts.On("AppendDebt", ctx, mock.AnythingOfType("domain.Debt")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(domain.Debt)
		}).Return(nil).Once()

	debt, err := suite.service.CreateDebt(ctx, "u1", dto.CreateDebtRequest{
		Name:                "Visa",
		Issuer:              "Bancolombia",
		CreditLimit:         dec("5000"),
		Balance:             dec("1000"),
		CutOffDay:           15,
		DueDay:              25,
		AnnualEffectiveRate: dec("0.36"),
	})

	suite.Require().NoError(err)
	suite.NotEmpty(debt.DebtID)
	suite.True(debt.Active)
	suite.Equal(debt.DebtID, appended.DebtID)
	suite.Equal("Visa", appended.Name)
	suite.Equal("u1", appended.CreatedBy)
	suite.Equal(debtNow, appended.CreatedAt)
	suite.mockDebts.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestCreateDebt_NoSpreadsheetLinked() {
	ctx := context.Background()
	suite.mockUsers.On("FindUserByID", ctx, "u1").
		Return(&domain.User{UserID: "u1"}, nil).Once()

	_, err := suite.service.CreateDebt(ctx, "u1", dto.CreateDebtRequest{Name: "Visa"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFactory.AssertNotCalled(suite.T(), "ForUser", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestUpdateDebt_PartialFieldsOnly() {
	ctx := context.Background()
	suite.expectTenant()
	existing := &domain.Debt{
		DebtID:              "d1",
		Name:                "Visa",
		Issuer:              "Bancolombia",
		Balance:             dec("1000"),
		CutOffDay:           15,
		DueDay:              25,
		Active:              true,
		AnnualEffectiveRate: dec("0.36"),
	}
	suite.mockDebts.On("FindDebtByID", ctx, "d1").Return(existing, nil).Once()

	newName := "Visa Gold"
	inactive := false
	suite.mockDebts.On("UpdateDebt", ctx, mock.MatchedBy(func(d domain.Debt) bool {
		return d.Name == "Visa Gold" &&
			!d.Active &&
			d.Issuer == "Bancolombia" &&
			d.CutOffDay == 15 &&
			d.Balance.Equal(dec("1000")) &&
			d.LastUpdatedBy == "u1"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateDebt(ctx, "u1", "d1", dto.UpdateDebtRequest{
		Name:   &newName,
		Active: &inactive,
	})

	suite.Require().NoError(err)
	suite.Equal("Visa Gold", updated.Name)
	suite.False(updated.Active)
	suite.mockDebts.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestDeleteDebt_NotFound() {
	ctx := context.Background()
	suite.expectTenant()
	suite.mockDebts.On("FindDebtByID", ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteDebt(ctx, "u1", "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDebts.AssertNotCalled(suite.T(), "DeleteDebt", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummary() {
	ctx := context.Background()
	suite.expectTenant()
	debt := &domain.Debt{
		DebtID:      "d1",
		Name:        "Visa",
		Balance:     dec("1250"),
		CreditLimit: dec("5000"),
		CutOffDay:   15,
		DueDay:      25,
		Active:      true,
	}
	last := &domain.Statement{
		DebtID:           "d1",
		StatementDate:    date(2025, time.January, 15),
		DueDate:          date(2025, time.January, 25),
		StatementBalance: dec("1250"),
	}

	suite.mockDebts.On("FindDebtByID", ctx, "d1").Return(debt, nil).Once()
	suite.mockStatements.On("FindLatestBefore", ctx, "d1", date(2025, time.February, 11)).
		Return(last, nil).Once()

	summary, err := suite.service.GetDebtSummary(ctx, "u1", "d1")

	suite.Require().NoError(err)
	suite.Equal("1250.00", summary.Balance)
	suite.Equal("0.25", summary.Utilization)
	suite.Equal("3750.00", summary.Available)
	suite.Equal("2025-02-15", summary.NextCutOffDate)
	suite.Equal("2025-02-25", summary.NextDueDate)
	suite.Require().NotNil(summary.LastStatement)
	suite.Equal("2025-01-15", summary.LastStatement.StatementDate)
}

func (suite *DebtServiceTestSuite) TestGetDebtSummary_NoStatementsYet() {
	ctx := context.Background()
	suite.expectTenant()
	debt := &domain.Debt{DebtID: "d1", Name: "Visa", Balance: dec("100")}

	suite.mockDebts.On("FindDebtByID", ctx, "d1").Return(debt, nil).Once()
	suite.mockStatements.On("FindLatestBefore", ctx, "d1", date(2025, time.February, 11)).
		Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.GetDebtSummary(ctx, "u1", "d1")

	suite.Require().NoError(err)
	suite.Nil(summary.LastStatement)
	suite.Empty(summary.Utilization)
	suite.Empty(summary.NextCutOffDate)
}

func (suite *DebtServiceTestSuite) TestListStatements_GatesOnDebt() {
	ctx := context.Background()
	suite.expectTenant()
	suite.mockDebts.On("FindDebtByID", ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListStatements(ctx, "u1", "missing")

	suite.Require().Error(err)
	suite.mockStatements.AssertNotCalled(suite.T(), "ListStatements", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestProjectInstallments() {
	ctx := context.Background()
	suite.expectTenant()
	debt := &domain.Debt{
		DebtID:              "d1",
		Balance:             dec("1000"),
		CutOffDay:           15,
		Active:              true,
		AnnualEffectiveRate: dec("0.36"),
	}
	suite.mockDebts.On("FindDebtByID", ctx, "d1").Return(debt, nil).Once()

	projections, err := suite.service.ProjectInstallments(ctx, "u1", "d1", 2, "2025-03")

	suite.Require().NoError(err)
	suite.Require().Len(projections, 2)
	suite.Equal("2025-03", projections[0].Period)
	suite.Equal("2025-03-15", projections[0].StatementDate)
	suite.Equal("1000.00", projections[0].OpeningBalance)
	suite.Equal("30.00", projections[0].Interest)
	suite.Equal("1030.00", projections[0].ProjectedBalance)
	suite.Equal("2025-04", projections[1].Period)
	suite.Equal("1030.00", projections[1].OpeningBalance)
	suite.Equal("1060.90", projections[1].ProjectedBalance)
}

func (suite *DebtServiceTestSuite) TestProjectInstallments_MonthsOutOfRange() {
	ctx := context.Background()

	_, err := suite.service.ProjectInstallments(ctx, "u1", "d1", 0, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUsers.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
