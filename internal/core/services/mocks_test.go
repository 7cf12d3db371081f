package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/sgaviria/finanzapp/internal/core/domain"
	portsrepo "github.com/sgaviria/finanzapp/internal/core/ports/repositories"
	portssvc "github.com/sgaviria/finanzapp/internal/core/ports/services"
	"github.com/sgaviria/finanzapp/internal/dto"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AppendUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock TenantRepositoryFactory ---

type MockTenantFactory struct {
	mock.Mock
}

var _ portsrepo.TenantRepositoryFactory = (*MockTenantFactory)(nil)

func (m *MockTenantFactory) ForUser(ctx context.Context, user domain.User) (*portsrepo.TenantRepos, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.TenantRepos), args.Error(1)
}

// --- Mock DebtRepository ---

type MockDebtRepository struct {
	mock.Mock
}

var _ portsrepo.DebtRepositoryFacade = (*MockDebtRepository)(nil)

func (m *MockDebtRepository) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) AppendDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	args := m.Called(ctx, debtID)
	return args.Error(0)
}

func (m *MockDebtRepository) UpdateDebtBalance(ctx context.Context, debtID string, balance decimal.Decimal) error {
	args := m.Called(ctx, debtID, balance)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByDebt(ctx context.Context, debtID string, from, to time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, debtID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumPaymentsForDebt(ctx context.Context, debtID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, debtID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) AppendExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	args := m.Called(ctx, expenseID)
	return args.Error(0)
}

// --- Mock StatementRepository ---

type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepositoryFacade = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) ListStatements(ctx context.Context, debtID string) ([]domain.Statement, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) FindByDebtAndDate(ctx context.Context, debtID string, statementDate time.Time) (*domain.Statement, portsrepo.RowRef, error) {
	args := m.Called(ctx, debtID, statementDate)
	if args.Get(0) == nil {
		return nil, args.Get(1).(portsrepo.RowRef), args.Error(2)
	}
	return args.Get(0).(*domain.Statement), args.Get(1).(portsrepo.RowRef), args.Error(2)
}

func (m *MockStatementRepository) FindLatestBefore(ctx context.Context, debtID string, before time.Time) (*domain.Statement, error) {
	args := m.Called(ctx, debtID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) AppendStatement(ctx context.Context, statement domain.Statement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockStatementRepository) UpdateStatementAt(ctx context.Context, row portsrepo.RowRef, statement domain.Statement) error {
	args := m.Called(ctx, row, statement)
	return args.Error(0)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) AppendCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock GoogleOAuthService ---

type MockGoogleOAuthService struct {
	mock.Mock
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

func (m *MockGoogleOAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

// --- Mock AccrualService ---

type MockAccrualService struct {
	mock.Mock
}

var _ portssvc.AccrualSvcFacade = (*MockAccrualService)(nil)

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
